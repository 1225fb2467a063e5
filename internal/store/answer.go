package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
)

// AnswerStore defines the interface for answer data persistence.
type AnswerStore interface {
	// Create saves a new answer to the store.
	// Returns ErrInvalidEntity if the referenced topic does not exist.
	Create(ctx context.Context, answer *domain.Answer) error

	// FindByTopic retrieves all answers for the given topic ordered by vote
	// count, highest first. Returns an empty slice when the topic has none.
	FindByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Answer, error)

	// CountByTopic returns the number of answers submitted for the topic.
	CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error)

	// IncrementVote atomically increments the answer's vote count and returns
	// the new value. Returns ErrAnswerNotFound if the answer does not exist.
	// Concurrent callers never lose updates; the increment happens in SQL.
	IncrementVote(ctx context.Context, id uuid.UUID) (int, error)

	// UpdateCommentary writes the terminal commentary for the answer in a
	// single atomic update. The write only applies to rows still in the
	// pending state, which makes terminal commentary write-once. The
	// returned bool reports whether a row transitioned; a missing or
	// already-resolved answer is a no-op, not an error.
	UpdateCommentary(ctx context.Context, id uuid.UUID, commentary domain.Commentary) (bool, error)
}
