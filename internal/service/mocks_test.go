package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/events"
)

// MockTopicRepository is a mock implementation of TopicRepository.
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) Create(ctx context.Context, topic *domain.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockTopicRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	args := m.Called(ctx, id)
	topic, _ := args.Get(0).(*domain.Topic)
	return topic, args.Error(1)
}

func (m *MockTopicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	args := m.Called(ctx)
	topics, _ := args.Get(0).([]*domain.Topic)
	return topics, args.Error(1)
}

// MockAnswerRepository is a mock implementation of AnswerRepository.
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) FindByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Answer, error) {
	args := m.Called(ctx, topicID)
	answers, _ := args.Get(0).([]*domain.Answer)
	return answers, args.Error(1)
}

func (m *MockAnswerRepository) CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	args := m.Called(ctx, topicID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) IncrementVote(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// MockEventEmitter is a mock implementation of events.EventEmitter.
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTopic(t *testing.T, prompt string) *domain.Topic {
	t.Helper()
	topic, err := domain.NewTopic(prompt)
	require.NoError(t, err)
	return topic
}
