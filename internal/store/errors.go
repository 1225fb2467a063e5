package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (ErrTopicNotFound, ErrAnswerNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or when a write violates a database constraint. Check the
	// wrapped error for specific details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrTopicNotFound indicates that the requested topic does not exist.
	ErrTopicNotFound = fmt.Errorf("%w: topic", ErrNotFound)

	// ErrAnswerNotFound indicates that the requested answer does not exist.
	ErrAnswerNotFound = fmt.Errorf("%w: answer", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
