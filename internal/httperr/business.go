package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain error taxonomy. Every business failure crossing a use case
// boundary is one of these; handlers translate them to HTTP.

type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + "_not_found"
}

type AuthorizationError struct {
	Resource string
}

func (e AuthorizationError) Error() string {
	return "not_allowed_to_modify_" + e.Resource
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// SlotUnavailableError carries the user-facing reason the requested slot
// failed re-validation ("Already booked", "Break time", "Past time",
// "Not operating").
type SlotUnavailableError struct {
	Reason string
}

func (e SlotUnavailableError) Error() string {
	return "slot_unavailable: " + e.Reason
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition_from_%s_to_%s", e.From, e.To)
}

// --------- predicates ---------

func IsNotFound(err error) bool {
	var e NotFoundError
	return errors.As(err, &e)
}

func IsAuthorization(err error) bool {
	var e AuthorizationError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e ValidationError
	return errors.As(err, &e)
}

func AsSlotUnavailable(err error) (SlotUnavailableError, bool) {
	var e SlotUnavailableError
	ok := errors.As(err, &e)
	return e, ok
}

func IsInvalidTransition(err error) bool {
	var e InvalidTransitionError
	return errors.As(err, &e)
}

// IsExclusionConflict reports whether err is a Postgres overlap rejection:
// 23P01 from the appointments exclusion constraint, 23505 from a unique
// index racing on the same slot.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
