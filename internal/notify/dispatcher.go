package notify

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/models"
)

const (
	TypeAppointmentCreated   = "appointment_created"
	TypeAppointmentConfirmed = "appointment_confirmed"
	TypeAppointmentCancelled = "appointment_cancelled"
)

type Event struct {
	UserID        *uint
	ProviderID    *uint
	Type          string
	Title         string
	Body          string
	AppointmentID *uint
}

// Dispatcher persists notifications off the request path. Best effort:
// a full queue drops the event rather than blocking or failing the
// booking that produced it.
type Dispatcher struct {
	db    *gorm.DB
	queue chan Event
	log   zerolog.Logger
}

func NewDispatcher(db *gorm.DB, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		queue: make(chan Event, 100),
		log:   logger,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		n := models.Notification{
			UserID:        ev.UserID,
			ProviderID:    ev.ProviderID,
			Type:          ev.Type,
			Title:         ev.Title,
			Body:          ev.Body,
			AppointmentID: ev.AppointmentID,
		}
		if err := d.db.Create(&n).Error; err != nil {
			d.log.Error().Err(err).Str("type", ev.Type).Msg("notification write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("type", ev.Type).Msg("notification queue full, dropping event")
	}
}
