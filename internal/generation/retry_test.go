package generation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetryConfig keeps backoff negligible in tests.
var fastRetryConfig = RetryExecutorConfig{
	MaxAttempts: 3,
	BaseDelay:   time.Millisecond,
}

func newTestExecutor(t *testing.T, generator Generator) *RetryExecutor {
	t.Helper()
	executor, err := NewRetryExecutor(generator, fastRetryConfig, nil)
	require.NoError(t, err)
	return executor
}

func TestNewRetryExecutor(t *testing.T) {
	t.Parallel()

	t.Run("fails with nil generator", func(t *testing.T) {
		executor, err := NewRetryExecutor(nil, RetryExecutorConfig{}, nil)

		assert.ErrorIs(t, err, ErrNilGenerator)
		assert.Nil(t, executor)
	})

	t.Run("applies defaults for zero config", func(t *testing.T) {
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			return "ok", nil
		})

		executor, err := NewRetryExecutor(generator, RetryExecutorConfig{}, nil)

		require.NoError(t, err)
		assert.Equal(t, DefaultMaxAttempts, executor.config.MaxAttempts)
		assert.Equal(t, DefaultBaseDelay, executor.config.BaseDelay)
	})
}

func TestRetryExecutorRun(t *testing.T) {
	t.Parallel()

	t.Run("first attempt success short-circuits", func(t *testing.T) {
		calls := 0
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			calls++
			return "天才的な回答ですね。", nil
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusReady, commentary.Status)
		assert.Equal(t, "天才的な回答ですね。", commentary.Text)
		assert.Equal(t, 1, calls)
	})

	t.Run("over-long output is stored truncated to 75 runes", func(t *testing.T) {
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			return strings.Repeat("あ", 80), nil
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusReady, commentary.Status)
		assert.Equal(t, 75, utf8.RuneCountInString(commentary.Text))
		assert.Equal(t, strings.Repeat("あ", 72)+"...", commentary.Text)
	})

	t.Run("empty output on all attempts yields the failure apology", func(t *testing.T) {
		calls := 0
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			calls++
			return "", nil
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusFailed, commentary.Status)
		assert.Equal(t, domain.CommentaryFailedApology, commentary.Text)
		assert.Equal(t, 3, calls)
	})

	t.Run("hard failure then success consumes two attempts", func(t *testing.T) {
		calls := 0
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			calls++
			if calls == 1 {
				return "", fmt.Errorf("%w: request timed out", ErrTransientFailure)
			}
			return "切り返しが見事です。", nil
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusReady, commentary.Status)
		assert.Equal(t, "切り返しが見事です。", commentary.Text)
		assert.Equal(t, 2, calls)
	})

	t.Run("hard failure on all attempts yields the error apology", func(t *testing.T) {
		calls := 0
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			calls++
			return "", ErrGenerationFailed
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusFailed, commentary.Status)
		assert.Equal(t, domain.CommentaryErrorApology, commentary.Text)
		assert.Equal(t, 3, calls)
	})

	t.Run("soft failure on the last attempt yields the failure apology", func(t *testing.T) {
		calls := 0
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", ErrTransientFailure
			}
			return "   ", nil
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusFailed, commentary.Status)
		assert.Equal(t, domain.CommentaryFailedApology, commentary.Text)
	})

	t.Run("never consumes more than the attempt budget", func(t *testing.T) {
		calls := 0
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			calls++
			return "", ErrTransientFailure
		})

		commentary := newTestExecutor(t, generator).Run(context.Background(), "お題", "回答")

		assert.True(t, commentary.Terminal())
		assert.LessOrEqual(t, calls, fastRetryConfig.MaxAttempts)
	})

	t.Run("cancelled context resolves to a terminal state", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		generator := GeneratorFunc(func(ctx context.Context, _, _ string) (string, error) {
			cancel()
			return "", ErrTransientFailure
		})
		executor, err := NewRetryExecutor(generator, RetryExecutorConfig{
			MaxAttempts: 3,
			BaseDelay:   time.Minute, // never actually waited: the context is done
		}, nil)
		require.NoError(t, err)

		commentary := executor.Run(ctx, "お題", "回答")

		assert.Equal(t, domain.CommentaryStatusFailed, commentary.Status)
		assert.Equal(t, domain.CommentaryErrorApology, commentary.Text)
	})
}
