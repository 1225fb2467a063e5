package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTopicLifetime is how long a newly created topic accepts answers.
// The deadline is informational for display; expiry is not enforced here.
const DefaultTopicLifetime = 12 * time.Hour

// Topic represents a prompt that answers are submitted against.
// Topics are immutable after creation.
type Topic struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
	Deadline  time.Time `json:"deadline"`
}

// NewTopic creates a new Topic with the given prompt. It generates a new UUID,
// sets the creation timestamp, and sets the deadline DefaultTopicLifetime out.
// Returns an error if validation fails.
func NewTopic(prompt string) (*Topic, error) {
	now := time.Now().UTC()
	topic := &Topic{
		ID:        uuid.New(),
		Prompt:    prompt,
		CreatedAt: now,
		Deadline:  now.Add(DefaultTopicLifetime),
	}

	if err := topic.Validate(); err != nil {
		return nil, err
	}

	return topic, nil
}

// Validate checks if the Topic has valid data.
func (t *Topic) Validate() error {
	if t.ID == uuid.Nil {
		return ErrValidation
	}
	if t.Prompt == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// RemainingTime returns the seconds until the topic's deadline as of now,
// clamped at zero once the deadline has passed.
func (t *Topic) RemainingTime(now time.Time) float64 {
	remaining := t.Deadline.Sub(now).Seconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}
