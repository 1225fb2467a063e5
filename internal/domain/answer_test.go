package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnswer(t *testing.T) {
	t.Parallel()

	t.Run("creates answer in pending state", func(t *testing.T) {
		topicID := uuid.New()

		answer, err := NewAnswer(topicID, "宇宙旅行")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, answer.ID)
		assert.Equal(t, topicID, answer.TopicID)
		assert.Equal(t, "宇宙旅行", answer.Text)
		assert.Equal(t, CommentaryStatusPending, answer.Commentary.Status)
		assert.Equal(t, 0, answer.VoteCount)
		assert.False(t, answer.CreatedAt.IsZero())
	})

	t.Run("fails with empty text", func(t *testing.T) {
		answer, err := NewAnswer(uuid.New(), "")

		assert.ErrorIs(t, err, ErrEmptyAnswerText)
		assert.Nil(t, answer)
	})

	t.Run("fails with nil topic ID", func(t *testing.T) {
		answer, err := NewAnswer(uuid.Nil, "宇宙旅行")

		assert.ErrorIs(t, err, ErrEmptyTopicID)
		assert.Nil(t, answer)
	})
}

func TestAnswerResolveCommentary(t *testing.T) {
	t.Parallel()

	newPendingAnswer := func(t *testing.T) *Answer {
		t.Helper()
		answer, err := NewAnswer(uuid.New(), "月でラーメン屋を開く")
		require.NoError(t, err)
		return answer
	}

	t.Run("pending to ready", func(t *testing.T) {
		answer := newPendingAnswer(t)
		ready, err := NewReadyCommentary("スケールの大きい夢に脱帽です。")
		require.NoError(t, err)

		err = answer.ResolveCommentary(ready)

		require.NoError(t, err)
		assert.Equal(t, CommentaryStatusReady, answer.Commentary.Status)
		assert.Equal(t, "スケールの大きい夢に脱帽です。", answer.Commentary.Text)
	})

	t.Run("pending to failed", func(t *testing.T) {
		answer := newPendingAnswer(t)
		failed, err := NewFailedCommentary(CommentaryFailedApology)
		require.NoError(t, err)

		err = answer.ResolveCommentary(failed)

		require.NoError(t, err)
		assert.Equal(t, CommentaryStatusFailed, answer.Commentary.Status)
	})

	t.Run("second transition is rejected", func(t *testing.T) {
		answer := newPendingAnswer(t)
		ready, err := NewReadyCommentary("一本取られました。")
		require.NoError(t, err)
		require.NoError(t, answer.ResolveCommentary(ready))

		failed, err := NewFailedCommentary(CommentaryFailedApology)
		require.NoError(t, err)

		err = answer.ResolveCommentary(failed)

		assert.ErrorIs(t, err, ErrCommentaryAlreadyResolved)
		// The first terminal state is untouched.
		assert.Equal(t, CommentaryStatusReady, answer.Commentary.Status)
	})

	t.Run("non-terminal commentary is rejected", func(t *testing.T) {
		answer := newPendingAnswer(t)

		err := answer.ResolveCommentary(PendingCommentary())

		assert.ErrorIs(t, err, ErrCommentaryNotTerminal)
	})
}

func TestAnswerValidate(t *testing.T) {
	t.Parallel()

	answer, err := NewAnswer(uuid.New(), "回答")
	require.NoError(t, err)

	answer.VoteCount = -1
	assert.ErrorIs(t, answer.Validate(), ErrValidation)
}
