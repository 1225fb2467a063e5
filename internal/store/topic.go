package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
)

// TopicStore defines the interface for topic data persistence.
type TopicStore interface {
	// Create saves a new topic to the store.
	// Returns validation errors from the domain Topic if data is invalid.
	Create(ctx context.Context, topic *domain.Topic) error

	// GetByID retrieves a topic by its unique ID.
	// Returns ErrTopicNotFound if the topic does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)

	// List retrieves all topics ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.Topic, error)
}
