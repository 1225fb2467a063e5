package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/events"
	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

func newAnswerService(t *testing.T) (AnswerService, *MockTopicRepository, *MockAnswerRepository, *MockEventEmitter) {
	t.Helper()

	topics := &MockTopicRepository{}
	answers := &MockAnswerRepository{}
	emitter := &MockEventEmitter{}
	svc, err := NewAnswerService(topics, answers, emitter, testLogger())
	require.NoError(t, err)
	return svc, topics, answers, emitter
}

func TestAnswerService_SubmitAnswer(t *testing.T) {
	t.Run("saves pending answer and emits event", func(t *testing.T) {
		svc, topics, answers, emitter := newAnswerService(t)

		topic := newTestTopic(t, "こんな医者は嫌だ")
		topics.On("GetByID", mock.Anything, topic.ID).Return(topic, nil)
		answers.On("Create", mock.Anything, mock.AnythingOfType("*domain.Answer")).Return(nil)

		var emitted *events.TaskRequestEvent
		emitter.On("EmitEvent", mock.Anything, mock.AnythingOfType("*events.TaskRequestEvent")).
			Run(func(args mock.Arguments) {
				emitted = args.Get(1).(*events.TaskRequestEvent)
			}).
			Return(nil)

		answer, err := svc.SubmitAnswer(context.Background(), topic.ID, "聴診器が冷たいどころか凍っている")

		require.NoError(t, err)
		assert.Equal(t, domain.CommentaryStatusPending, answer.Commentary.Status)
		assert.Equal(t, 0, answer.VoteCount)

		require.NotNil(t, emitted)
		assert.Equal(t, events.EventTypeCommentaryGeneration, emitted.Type)

		var payload struct {
			AnswerID    uuid.UUID `json:"answer_id"`
			TopicPrompt string    `json:"topic_prompt"`
			AnswerText  string    `json:"answer_text"`
		}
		require.NoError(t, emitted.UnmarshalPayload(&payload))
		assert.Equal(t, answer.ID, payload.AnswerID)
		assert.Equal(t, topic.Prompt, payload.TopicPrompt)
		assert.Equal(t, answer.Text, payload.AnswerText)
	})

	t.Run("unknown topic maps to sentinel", func(t *testing.T) {
		svc, topics, answers, _ := newAnswerService(t)
		topics.On("GetByID", mock.Anything, mock.Anything).Return(nil, store.ErrTopicNotFound)

		_, err := svc.SubmitAnswer(context.Background(), uuid.New(), "回答")

		assert.ErrorIs(t, err, ErrTopicNotFound)
		answers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty text is invalid input", func(t *testing.T) {
		svc, topics, answers, _ := newAnswerService(t)
		topic := newTestTopic(t, "お題")
		topics.On("GetByID", mock.Anything, topic.ID).Return(topic, nil)

		_, err := svc.SubmitAnswer(context.Background(), topic.ID, "   ")

		assert.ErrorIs(t, err, ErrInvalidInput)
		answers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("topic deleted between read and insert", func(t *testing.T) {
		svc, topics, answers, _ := newAnswerService(t)
		topic := newTestTopic(t, "お題")
		topics.On("GetByID", mock.Anything, topic.ID).Return(topic, nil)
		answers.On("Create", mock.Anything, mock.Anything).Return(store.ErrInvalidEntity)

		_, err := svc.SubmitAnswer(context.Background(), topic.ID, "回答")

		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("emit failure still returns the answer", func(t *testing.T) {
		svc, topics, answers, emitter := newAnswerService(t)
		topic := newTestTopic(t, "お題")
		topics.On("GetByID", mock.Anything, topic.ID).Return(topic, nil)
		answers.On("Create", mock.Anything, mock.Anything).Return(nil)
		emitter.On("EmitEvent", mock.Anything, mock.Anything).Return(errors.New("queue full"))

		answer, err := svc.SubmitAnswer(context.Background(), topic.ID, "回答")

		require.NoError(t, err)
		assert.NotNil(t, answer)
		assert.Equal(t, domain.CommentaryStatusPending, answer.Commentary.Status)
	})
}

func TestAnswerService_Vote(t *testing.T) {
	t.Run("returns incremented count", func(t *testing.T) {
		svc, _, answers, _ := newAnswerService(t)
		answerID := uuid.New()
		answers.On("IncrementVote", mock.Anything, answerID).Return(4, nil)

		count, err := svc.Vote(context.Background(), answerID)

		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("missing answer maps to sentinel", func(t *testing.T) {
		svc, _, answers, _ := newAnswerService(t)
		answers.On("IncrementVote", mock.Anything, mock.Anything).Return(0, store.ErrAnswerNotFound)

		_, err := svc.Vote(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrAnswerNotFound)
	})
}
