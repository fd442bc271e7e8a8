package rest

import (
	"errors"
	"net/http"

	"viralWallet/domain"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusForError maps domain error kinds to HTTP statuses. Anything
// unrecognized is treated as a persistence/internal failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
