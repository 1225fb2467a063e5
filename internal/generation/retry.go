package generation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/ohgiri-live/ohgiri-api/internal/domain"
)

// Default retry policy values.
const (
	// DefaultMaxAttempts is the total number of generator invocations allowed
	// per answer before giving up.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the backoff base delay between attempts.
	DefaultBaseDelay = 500 * time.Millisecond
)

// RetryExecutorConfig holds the retry policy settings.
type RetryExecutorConfig struct {
	// MaxAttempts is the total attempt budget. Zero or negative values fall
	// back to DefaultMaxAttempts.
	MaxAttempts int

	// BaseDelay is the backoff base delay; the wait before attempt n is
	// BaseDelay * 2^(n-1) with jitter. Zero or negative values fall back to
	// DefaultBaseDelay.
	BaseDelay time.Duration
}

// RetryExecutor wraps a Generator with a bounded-attempt retry loop and
// failure classification. It never returns an error: every run resolves to a
// terminal Commentary, either Ready with generated text or Failed with one of
// the fixed apology messages.
type RetryExecutor struct {
	generator Generator
	config    RetryExecutorConfig
	logger    *slog.Logger
}

// ErrNilGenerator is returned when a RetryExecutor is constructed without a
// generator.
var ErrNilGenerator = errors.New("generator cannot be nil")

// NewRetryExecutor creates a RetryExecutor around the given generator.
func NewRetryExecutor(
	generator Generator,
	config RetryExecutorConfig,
	logger *slog.Logger,
) (*RetryExecutor, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = DefaultBaseDelay
	}

	return &RetryExecutor{
		generator: generator,
		config:    config,
		logger:    logger.With("component", "retry_executor"),
	}, nil
}

// Run invokes the generator up to MaxAttempts times and classifies each
// outcome. A non-empty result short-circuits remaining attempts and resolves
// Ready. An empty result (soft failure) or a generator error (hard failure)
// consumes one attempt. When the budget is exhausted, Run resolves Failed
// with the error apology if the last consumed attempt was a hard failure,
// and the failure apology otherwise.
func (e *RetryExecutor) Run(ctx context.Context, topicPrompt, answerText string) domain.Commentary {
	lastHard := false

	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		raw, err := e.generator.Generate(ctx, topicPrompt, answerText)
		if err != nil {
			lastHard = true
			e.logger.Warn("generation attempt failed",
				"attempt", attempt,
				"max_attempts", e.config.MaxAttempts,
				"error", err)
		} else {
			text := PostProcess(raw)
			if text == "" {
				lastHard = false
				e.logger.Warn("generation attempt produced empty commentary",
					"attempt", attempt,
					"max_attempts", e.config.MaxAttempts)
			} else {
				commentary, cerr := domain.NewReadyCommentary(text)
				if cerr == nil {
					e.logger.Info("commentary generated",
						"attempt", attempt,
						"length", len([]rune(text)))
					return commentary
				}
				// PostProcess bounds the text, so this only trips if the
				// display limit shrinks underneath us. Count it as soft.
				lastHard = false
				e.logger.Warn("generated commentary failed validation",
					"attempt", attempt,
					"error", cerr)
			}
		}

		if attempt < e.config.MaxAttempts {
			if err := e.wait(ctx, attempt); err != nil {
				// Context expired while backing off; stop consuming attempts
				// and resolve like a hard failure.
				lastHard = true
				e.logger.Warn("retry backoff interrupted", "error", err)
				break
			}
		}
	}

	apology := domain.CommentaryFailedApology
	if lastHard {
		apology = domain.CommentaryErrorApology
	}

	commentary, err := domain.NewFailedCommentary(apology)
	if err != nil {
		// Unreachable: both apology constants are accepted.
		commentary = domain.Commentary{Status: domain.CommentaryStatusFailed, Text: apology}
	}

	e.logger.Info("generation attempts exhausted",
		"max_attempts", e.config.MaxAttempts,
		"last_failure_hard", lastHard)
	return commentary
}

// wait sleeps for the backoff delay before the next attempt, or returns early
// with the context error if the context is done first.
// delay = BaseDelay * 2^(attempt-1) * (0.5 + rand(0, 0.5))
func (e *RetryExecutor) wait(ctx context.Context, attempt int) error {
	// rand's top-level functions are safe for use by concurrent workers.
	backoff := float64(e.config.BaseDelay) * math.Pow(2, float64(attempt-1))
	jitter := 0.5 + rand.Float64()*0.5
	delay := time.Duration(backoff * jitter)

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
