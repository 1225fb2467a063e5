package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopic(t *testing.T) {
	t.Parallel()

	t.Run("creates topic with deadline 12 hours out", func(t *testing.T) {
		topic, err := NewTopic("子供の頃の夢は？")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, topic.ID)
		assert.Equal(t, "子供の頃の夢は？", topic.Prompt)
		assert.Equal(t, DefaultTopicLifetime, topic.Deadline.Sub(topic.CreatedAt))
	})

	t.Run("fails with empty prompt", func(t *testing.T) {
		topic, err := NewTopic("")

		assert.ErrorIs(t, err, ErrEmptyPrompt)
		assert.Nil(t, topic)
	})
}

func TestTopicRemainingTime(t *testing.T) {
	t.Parallel()

	topic, err := NewTopic("お題")
	require.NoError(t, err)

	t.Run("positive before the deadline", func(t *testing.T) {
		remaining := topic.RemainingTime(topic.Deadline.Add(-time.Hour))
		assert.InDelta(t, time.Hour.Seconds(), remaining, 0.001)
	})

	t.Run("clamped to zero after the deadline", func(t *testing.T) {
		remaining := topic.RemainingTime(topic.Deadline.Add(time.Minute))
		assert.Zero(t, remaining)
	})
}
