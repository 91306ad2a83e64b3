package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a domain error to its HTTP shape. Unknown errors become a
// generic 500 without leaking internals.
func Respond(c *gin.Context, err error) {
	switch {
	case IsNotFound(err):
		NotFound(c, err.Error(), "Resource not found.")
	case IsAuthorization(err):
		Forbidden(c, "not_owner", "You do not own this resource.")
	case IsValidation(err):
		BadRequest(c, "validation_failed", err.Error())
	case IsInvalidTransition(err):
		BadRequest(c, "invalid_transition", "Appointment status cannot change this way.")
	default:
		if su, ok := AsSlotUnavailable(err); ok {
			Conflict(c, "slot_unavailable", su.Reason)
			return
		}
		Internal(c, "internal_error", "Something went wrong.")
	}
}
