package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyPrompt is returned when a topic prompt is empty.
	ErrEmptyPrompt = errors.New("topic prompt cannot be empty")

	// ErrEmptyAnswerText is returned when an answer's text is empty.
	ErrEmptyAnswerText = errors.New("answer text cannot be empty")

	// ErrEmptyTopicID is returned when an answer does not reference a topic.
	ErrEmptyTopicID = errors.New("answer topic ID cannot be empty")

	// ErrInvalidCommentaryStatus is returned when a commentary status is not
	// one of pending, ready, or failed.
	ErrInvalidCommentaryStatus = errors.New("invalid commentary status")

	// ErrCommentaryNotTerminal is returned when a non-terminal commentary is
	// applied where a terminal one is required.
	ErrCommentaryNotTerminal = errors.New("commentary is not in a terminal state")

	// ErrCommentaryAlreadyResolved is returned when an answer's commentary has
	// already reached a terminal state and a second transition is attempted.
	ErrCommentaryAlreadyResolved = errors.New("commentary already resolved")

	// ErrCommentaryTooLong is returned when ready commentary text exceeds the
	// display limit.
	ErrCommentaryTooLong = errors.New("commentary text exceeds display limit")

	// ErrUnknownApology is returned when failed commentary carries text other
	// than one of the fixed apology messages.
	ErrUnknownApology = errors.New("failed commentary must use a fixed apology message")
)
