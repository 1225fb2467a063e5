package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

// TopicRepository is the slice of the topic store the services need. Every
// operation here is a single atomic statement, so no transaction plumbing
// crosses this boundary.
type TopicRepository interface {
	// Create saves a new topic to the store.
	Create(ctx context.Context, topic *domain.Topic) error

	// GetByID retrieves a topic by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)

	// List retrieves all topics, newest first.
	List(ctx context.Context) ([]*domain.Topic, error)
}

// AnswerRepository is the slice of the answer store the services need.
type AnswerRepository interface {
	// Create saves a new answer to the store.
	Create(ctx context.Context, answer *domain.Answer) error

	// FindByTopic retrieves all answers for the topic, ranked by votes.
	FindByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Answer, error)

	// CountByTopic returns the number of answers submitted for the topic.
	CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error)

	// IncrementVote atomically increments the vote count and returns the
	// new value.
	IncrementVote(ctx context.Context, id uuid.UUID) (int, error)
}

// TopicSummary is a topic together with the aggregate values the listing
// surfaces.
type TopicSummary struct {
	Topic        *domain.Topic
	AnswersCount int
}

// TopicDetail is a topic together with its answers, ordered by vote count.
type TopicDetail struct {
	Topic   *domain.Topic
	Answers []*domain.Answer
}

// TopicService provides topic-related operations.
type TopicService interface {
	// CreateTopic creates a new topic from the given prompt.
	CreateTopic(ctx context.Context, prompt string) (*domain.Topic, error)

	// ListTopics returns all topics, newest first, with answer counts.
	ListTopics(ctx context.Context) ([]TopicSummary, error)

	// GetTopicDetail returns a topic and its answers ranked by votes.
	// Returns ErrTopicNotFound if the topic does not exist.
	GetTopicDetail(ctx context.Context, topicID uuid.UUID) (*TopicDetail, error)
}

type topicServiceImpl struct {
	topics  TopicRepository
	answers AnswerRepository
	logger  *slog.Logger
}

// NewTopicService creates a new TopicService.
func NewTopicService(
	topics TopicRepository,
	answers AnswerRepository,
	logger *slog.Logger,
) (TopicService, error) {
	if topics == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "topic repository cannot be nil"}
	}
	if answers == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "answer repository cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &topicServiceImpl{
		topics:  topics,
		answers: answers,
		logger:  logger.With("component", "topic_service"),
	}, nil
}

// CreateTopic creates a new topic from the given prompt.
func (s *topicServiceImpl) CreateTopic(ctx context.Context, prompt string) (*domain.Topic, error) {
	topic, err := domain.NewTopic(prompt)
	if err != nil {
		s.logger.Warn("rejected topic creation", "error", err)
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrEmptyPrompt) {
			return nil, ErrInvalidInput
		}
		return nil, newServiceError("create_topic", "failed to build topic", err)
	}

	if err := s.topics.Create(ctx, topic); err != nil {
		s.logger.Error("failed to save topic", "error", err, "topic_id", topic.ID)
		return nil, newServiceError("create_topic", "failed to save topic", err)
	}

	s.logger.Info("topic created", "topic_id", topic.ID)
	return topic, nil
}

// ListTopics returns all topics, newest first, with answer counts.
func (s *topicServiceImpl) ListTopics(ctx context.Context) ([]TopicSummary, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		s.logger.Error("failed to list topics", "error", err)
		return nil, newServiceError("list_topics", "failed to list topics", err)
	}

	summaries := make([]TopicSummary, 0, len(topics))
	for _, topic := range topics {
		count, err := s.answers.CountByTopic(ctx, topic.ID)
		if err != nil {
			s.logger.Error("failed to count answers",
				"error", err,
				"topic_id", topic.ID)
			return nil, newServiceError("list_topics", "failed to count answers", err)
		}
		summaries = append(summaries, TopicSummary{Topic: topic, AnswersCount: count})
	}

	return summaries, nil
}

// GetTopicDetail returns a topic and its answers ranked by votes.
func (s *topicServiceImpl) GetTopicDetail(ctx context.Context, topicID uuid.UUID) (*TopicDetail, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, store.ErrTopicNotFound) {
			return nil, ErrTopicNotFound
		}
		s.logger.Error("failed to get topic", "error", err, "topic_id", topicID)
		return nil, newServiceError("get_topic", "failed to get topic", err)
	}

	answers, err := s.answers.FindByTopic(ctx, topicID)
	if err != nil {
		s.logger.Error("failed to load answers", "error", err, "topic_id", topicID)
		return nil, newServiceError("get_topic", "failed to load answers", err)
	}

	return &TopicDetail{Topic: topic, Answers: answers}, nil
}
