package server

import (
	"errors"
	"net/http"

	"github.com/jialekhooo/interviewbot/internal/fetch"
	"github.com/jialekhooo/interviewbot/internal/ingestion"
	"github.com/jialekhooo/interviewbot/internal/interview"
)

// Sentinel errors for auth and user flows. Handlers map these to HTTP
// status codes through HTTPStatus.
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
)

// HTTPStatus returns the status code a handler should respond with for err.
func HTTPStatus(err error) int {
	var vErr *interview.ValidationError
	var extErr *ingestion.ExtractionError
	var typeErr *ingestion.UnsupportedTypeError
	var fetchErr *fetch.Error

	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &vErr),
		errors.As(err, &extErr),
		errors.As(err, &typeErr),
		errors.As(err, &fetchErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
