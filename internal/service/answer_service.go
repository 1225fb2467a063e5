package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/events"
	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

// AnswerService provides answer-related operations.
type AnswerService interface {
	// SubmitAnswer saves a new answer in the pending commentary state and
	// requests background commentary generation. The answer is returned
	// immediately; its commentary resolves asynchronously.
	// Returns ErrTopicNotFound if the topic does not exist.
	SubmitAnswer(ctx context.Context, topicID uuid.UUID, text string) (*domain.Answer, error)

	// Vote increments the answer's vote count and returns the new value.
	// Returns ErrAnswerNotFound if the answer does not exist.
	Vote(ctx context.Context, answerID uuid.UUID) (int, error)
}

type answerServiceImpl struct {
	topics       TopicRepository
	answers      AnswerRepository
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(
	topics TopicRepository,
	answers AnswerRepository,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (AnswerService, error) {
	if topics == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "topic repository cannot be nil"}
	}
	if answers == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "answer repository cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "event emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &answerServiceImpl{
		topics:       topics,
		answers:      answers,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "answer_service"),
	}, nil
}

// SubmitAnswer saves the answer with a pending commentary and emits the
// generation event. The event fires after the insert so the background task
// can never observe an answer that is not yet visible.
func (s *answerServiceImpl) SubmitAnswer(
	ctx context.Context,
	topicID uuid.UUID,
	text string,
) (*domain.Answer, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, store.ErrTopicNotFound) {
			return nil, ErrTopicNotFound
		}
		s.logger.Error("failed to load topic for submission",
			"error", err,
			"topic_id", topicID)
		return nil, newServiceError("submit_answer", "failed to load topic", err)
	}

	answer, err := domain.NewAnswer(topicID, text)
	if err != nil {
		s.logger.Warn("rejected answer submission", "error", err, "topic_id", topicID)
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrEmptyAnswerText) {
			return nil, ErrInvalidInput
		}
		return nil, newServiceError("submit_answer", "failed to build answer", err)
	}

	if err := s.answers.Create(ctx, answer); err != nil {
		// The topic vanished between the read and the insert.
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, ErrTopicNotFound
		}
		s.logger.Error("failed to save answer",
			"error", err,
			"topic_id", topicID,
			"answer_id", answer.ID)
		return nil, newServiceError("submit_answer", "failed to save answer", err)
	}

	s.logger.Info("answer submitted with pending commentary",
		"answer_id", answer.ID,
		"topic_id", topicID)

	payload := struct {
		AnswerID    uuid.UUID `json:"answer_id"`
		TopicPrompt string    `json:"topic_prompt"`
		AnswerText  string    `json:"answer_text"`
	}{
		AnswerID:    answer.ID,
		TopicPrompt: topic.Prompt,
		AnswerText:  answer.Text,
	}

	event, err := events.NewTaskRequestEvent(events.EventTypeCommentaryGeneration, payload)
	if err != nil {
		s.logger.Error("failed to create commentary generation event",
			"error", err,
			"answer_id", answer.ID)
		return nil, newServiceError("submit_answer", "failed to create event", err)
	}

	// A failed emit leaves the answer pending with its placeholder. The
	// submission itself already succeeded, so report the answer anyway.
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit commentary generation event",
			"error", err,
			"answer_id", answer.ID,
			"event_id", event.ID)
		return answer, nil
	}

	s.logger.Info("commentary generation event emitted",
		"answer_id", answer.ID,
		"event_id", event.ID)
	return answer, nil
}

// Vote increments the answer's vote count and returns the new value.
func (s *answerServiceImpl) Vote(ctx context.Context, answerID uuid.UUID) (int, error) {
	count, err := s.answers.IncrementVote(ctx, answerID)
	if err != nil {
		if errors.Is(err, store.ErrAnswerNotFound) {
			return 0, ErrAnswerNotFound
		}
		s.logger.Error("failed to count vote", "error", err, "answer_id", answerID)
		return 0, newServiceError("vote", "failed to count vote", err)
	}

	return count, nil
}
