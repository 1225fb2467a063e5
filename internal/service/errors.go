package service

import (
	"errors"
	"fmt"

	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

// Sentinel errors returned by the services. API handlers map these to HTTP
// status codes.
var (
	// ErrTopicNotFound indicates that the topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrAnswerNotFound indicates that the answer does not exist.
	ErrAnswerNotFound = errors.New("answer not found")

	// ErrInvalidInput indicates that the caller supplied invalid data.
	ErrInvalidInput = errors.New("invalid input")
)

// ServiceError wraps errors from a service operation with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_topic").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError wraps err with operation context. Store-level not-found
// errors pass through as the matching service sentinels so callers can
// branch on them without knowing the store.
func newServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrTopicNotFound) {
		return ErrTopicNotFound
	}
	if errors.Is(err, store.ErrAnswerNotFound) {
		return ErrAnswerNotFound
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
