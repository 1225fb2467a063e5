package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer represents a submitted response to a Topic. The answer text is
// immutable once created; the commentary field transitions pending -> terminal
// exactly once, and the vote count only grows.
type Answer struct {
	ID         uuid.UUID  `json:"id"`
	TopicID    uuid.UUID  `json:"topic_id"`
	Text       string     `json:"answer_text"`
	Commentary Commentary `json:"commentary"`
	VoteCount  int        `json:"vote_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewAnswer creates a new Answer for the given topic with commentary in the
// pending state. Returns an error if validation fails.
func NewAnswer(topicID uuid.UUID, text string) (*Answer, error) {
	answer := &Answer{
		ID:         uuid.New(),
		TopicID:    topicID,
		Text:       text,
		Commentary: PendingCommentary(),
		VoteCount:  0,
		CreatedAt:  time.Now().UTC(),
	}

	if err := answer.Validate(); err != nil {
		return nil, err
	}

	return answer, nil
}

// Validate checks if the Answer has valid data.
func (a *Answer) Validate() error {
	if a.ID == uuid.Nil {
		return ErrValidation
	}
	if a.TopicID == uuid.Nil {
		return ErrEmptyTopicID
	}
	if a.Text == "" {
		return ErrEmptyAnswerText
	}
	if a.VoteCount < 0 {
		return ErrValidation
	}
	return a.Commentary.Validate()
}

// ResolveCommentary transitions the answer's commentary from pending to the
// given terminal state. It enforces the write-once invariant: a second
// transition returns ErrCommentaryAlreadyResolved.
func (a *Answer) ResolveCommentary(c Commentary) error {
	if !c.Terminal() {
		return ErrCommentaryNotTerminal
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if a.Commentary.Terminal() {
		return ErrCommentaryAlreadyResolved
	}
	a.Commentary = c
	return nil
}
