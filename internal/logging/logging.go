package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. LOG_FORMAT=json switches to plain JSON
// output for log collectors; anything else gets the console writer.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		out = os.Stderr
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Default returns an info-level logger for code paths that have no
// configured logger handy (tests, helpers).
func Default() zerolog.Logger {
	return New("info")
}
