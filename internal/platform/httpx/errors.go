// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

// StatusOf returns the HTTP status RespondError would use for err.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidState),
		errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrIdempotencyConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	var verr *shared.ValidationError
	switch {
	case errors.As(err, &verr):
		JSON(w, status, ProblemDetail{
			Title:  "Validation Failed",
			Status: status,
			Detail: err.Error(),
			Errors: verr.Fields,
		})
	case status == http.StatusBadRequest:
		Problem(w, status, "Validation Failed", err.Error())
	case status == http.StatusNotFound:
		Problem(w, status, "Not Found", err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		Problem(w, status, "Invalid State", err.Error())
	case status == http.StatusConflict:
		Problem(w, status, "Conflict", err.Error())
	default:
		Problem(w, status, "Internal Error", shared.UserSafeMessage(err))
	}
}
