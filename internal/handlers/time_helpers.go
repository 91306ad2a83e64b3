package handlers

import (
	"time"

	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
)

// resolve the official timezone of the provider
func locationFromProvider(provider *models.Provider) *time.Location {
	if provider != nil {
		return timezone.Location(provider.Timezone)
	}
	return timezone.Location("")
}

func parseDateInProvider(provider *models.Provider, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromProvider(provider),
	)
}
