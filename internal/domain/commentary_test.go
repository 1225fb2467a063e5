package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingCommentary(t *testing.T) {
	t.Parallel()

	c := PendingCommentary()

	assert.Equal(t, CommentaryStatusPending, c.Status)
	assert.False(t, c.Terminal())
	assert.Equal(t, CommentaryPlaceholder, c.Display())
	assert.NoError(t, c.Validate())
}

func TestNewReadyCommentary(t *testing.T) {
	t.Parallel()

	t.Run("accepts text within the display limit", func(t *testing.T) {
		c, err := NewReadyCommentary("座布団一枚。")

		require.NoError(t, err)
		assert.Equal(t, CommentaryStatusReady, c.Status)
		assert.True(t, c.Terminal())
		assert.Equal(t, "座布団一枚。", c.Display())
	})

	t.Run("accepts text at exactly the limit", func(t *testing.T) {
		text := strings.Repeat("あ", CommentaryMaxRunes)

		c, err := NewReadyCommentary(text)

		require.NoError(t, err)
		assert.Equal(t, text, c.Text)
	})

	t.Run("rejects text over the limit counted in runes", func(t *testing.T) {
		text := strings.Repeat("あ", CommentaryMaxRunes+1)

		_, err := NewReadyCommentary(text)

		assert.ErrorIs(t, err, ErrCommentaryTooLong)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := NewReadyCommentary("")

		assert.ErrorIs(t, err, ErrEmptyAnswerText)
	})
}

func TestNewFailedCommentary(t *testing.T) {
	t.Parallel()

	t.Run("accepts the failure apology", func(t *testing.T) {
		c, err := NewFailedCommentary(CommentaryFailedApology)

		require.NoError(t, err)
		assert.Equal(t, CommentaryStatusFailed, c.Status)
		assert.True(t, c.Terminal())
		assert.Equal(t, CommentaryFailedApology, c.Display())
	})

	t.Run("accepts the error apology", func(t *testing.T) {
		c, err := NewFailedCommentary(CommentaryErrorApology)

		require.NoError(t, err)
		assert.Equal(t, CommentaryErrorApology, c.Text)
	})

	t.Run("rejects arbitrary text", func(t *testing.T) {
		_, err := NewFailedCommentary("何かがうまくいきませんでした")

		assert.ErrorIs(t, err, ErrUnknownApology)
	})
}

func TestCommentaryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		commentary Commentary
		wantErr    error
	}{
		{
			name:       "pending with no text is valid",
			commentary: Commentary{Status: CommentaryStatusPending},
			wantErr:    nil,
		},
		{
			name:       "ready with empty text is invalid",
			commentary: Commentary{Status: CommentaryStatusReady},
			wantErr:    ErrEmptyAnswerText,
		},
		{
			name:       "failed with arbitrary text is invalid",
			commentary: Commentary{Status: CommentaryStatusFailed, Text: "oops"},
			wantErr:    ErrUnknownApology,
		},
		{
			name:       "unknown status is invalid",
			commentary: Commentary{Status: CommentaryStatus("done")},
			wantErr:    ErrInvalidCommentaryStatus,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.commentary.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
