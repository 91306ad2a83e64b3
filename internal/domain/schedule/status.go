package schedule

import (
	"time"

	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func InitialStatus() Status {
	return StatusPending
}

// CanTransition validates the appointment state machine:
// pending -> confirmed | cancelled; confirmed -> completed | cancelled |
// no_show. completed, cancelled and no_show are terminal.
func CanTransition(from, to Status) error {
	switch from {
	case StatusPending:
		if to == StatusConfirmed || to == StatusCancelled {
			return nil
		}
	case StatusConfirmed:
		if to == StatusCompleted || to == StatusCancelled || to == StatusNoShow {
			return nil
		}
	}
	return httperr.InvalidTransitionError{From: string(from), To: string(to)}
}

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Complete(ap *models.Appointment, now time.Time, activityNotes string) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.ActivityNotes = activityNotes
	return nil
}

func Cancel(ap *models.Appointment, now time.Time, reason, cancelledBy string) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancellationReason = reason
	ap.CancelledBy = cancelledBy
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}
