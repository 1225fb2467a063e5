package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ohgiri-live/ohgiri-api/internal/generation"
)

// promptTemplate is the instruction sent to the model for each answer. The
// placeholders are filled with the topic prompt and the submitted answer.
const promptTemplate = `以下の大喜利のお題と回答に対して、75文字以内で簡潔でユーモアのある総評をしてください。

お題: %s
回答: %s

総評:`

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 30 * time.Second

// Config holds the settings required to talk to the Gemini API.
type Config struct {
	// APIKey authenticates requests against the Gemini API. Required.
	APIKey string

	// Model is the Gemini model name. Defaults to DefaultModel.
	Model string

	// Timeout bounds a single GenerateContent call. Defaults to
	// DefaultTimeout.
	Timeout time.Duration
}

// Generator produces answer commentary through the Gemini API.
type Generator struct {
	logger  *slog.Logger
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Compile-time check that Generator satisfies the generation contract.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed commentary generator.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg Config) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:  logger.With("component", "gemini_generator"),
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Generate sends the topic prompt and answer text to the Gemini API and
// returns the raw commentary text. API errors and candidate-less responses
// are reported as transient failures; a response whose candidates carry no
// text yields an empty string, which the caller treats as a soft failure.
func (g *Generator) Generate(ctx context.Context, topicPrompt, answerText string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, topicPrompt, answerText)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(
		callCtx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			MaxOutputTokens: 200,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: Gemini response contained no candidates",
			generation.ErrTransientFailure)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.logger.WarnContext(ctx, "Gemini response contained no text parts")
	}
	return text, nil
}
