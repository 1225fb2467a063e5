package api

import (
	"errors"
	"net/http"

	"github.com/ohgiri-live/ohgiri-api/internal/service"
	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Keeping
// the mapping in one place prevents handlers from leaking internal error
// types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, service.ErrAnswerNotFound),
		errors.Is(err, store.ErrTopicNotFound),
		errors.Is(err, store.ErrAnswerNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal detail stays in the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, store.ErrTopicNotFound):
		return "Topic not found"

	case errors.Is(err, service.ErrAnswerNotFound),
		errors.Is(err, store.ErrAnswerNotFound):
		return "Answer not found"

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
