// Package lmstudio implements the generation.Generator interface against an
// OpenAI-compatible endpoint such as LM Studio, used as the local commentary
// backend.
package lmstudio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ohgiri-live/ohgiri-api/internal/generation"
)

// systemPrompt frames the model as a witty ohgiri judge.
const systemPrompt = "あなたは大喜利の回答に総評をする司会者です。簡潔でユーモアのある総評をしてください。"

// userPromptTemplate carries the topic and answer to the model.
const userPromptTemplate = `お題: %s
回答: %s

この回答に対して75文字以内で総評をしてください。`

// Defaults applied when the corresponding Config field is unset.
const (
	DefaultModel   = "local-model"
	DefaultAPIKey  = "lm-studio"
	DefaultTimeout = 30 * time.Second
)

// Config holds the settings for an OpenAI-compatible endpoint.
type Config struct {
	// BaseURL is the endpoint root, e.g. "http://localhost:1234/v1". Required.
	BaseURL string

	// APIKey is sent as the bearer token. LM Studio ignores it, so it
	// defaults to DefaultAPIKey.
	APIKey string

	// Model is the identifier of the loaded model. Defaults to DefaultModel.
	Model string

	// Timeout bounds a single chat completion request. Defaults to
	// DefaultTimeout.
	Timeout time.Duration
}

// Generator produces answer commentary through an OpenAI-compatible chat
// completions endpoint.
type Generator struct {
	logger *slog.Logger
	client openai.Client
	model  string
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates an LM Studio backed commentary generator.
func NewGenerator(logger *slog.Logger, cfg Config) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	// Retries are owned by the caller's retry loop, not the SDK.
	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	)

	return &Generator{
		logger: logger.With("component", "lmstudio_generator"),
		client: client,
		model:  cfg.Model,
	}, nil
}

// Generate sends the topic prompt and answer text to the chat completions
// endpoint and returns the raw commentary text. Request errors and malformed
// responses are reported as transient failures.
func (g *Generator) Generate(ctx context.Context, topicPrompt, answerText string) (string, error) {
	userPrompt := fmt.Sprintf(userPromptTemplate, topicPrompt, answerText)

	g.logger.DebugContext(ctx, "calling chat completions endpoint",
		"model", g.model,
		"prompt_length", len(userPrompt))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxCompletionTokens: openai.Int(200),
		Temperature:         openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion response contained no choices",
			generation.ErrTransientFailure)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
