package generation

import "context"

// Generator defines the interface for producing commentary text for a
// (topic prompt, answer text) pair. This interface is the boundary between
// the pipeline and external AI services; the two backing implementations
// (Gemini API, OpenAI-compatible local server) are interchangeable behind it.
//
// Implementations return the post-processed text and nil on success. An empty
// string with a nil error is a soft failure: the upstream produced output but
// it was empty or whitespace-only after normalization. A non-nil error is a
// hard failure (timeout, transport error, malformed response) and wraps one
// of the sentinel errors in errors.go.
//
// Implementations must be safe for concurrent use; calls share no mutable
// state.
type Generator interface {
	Generate(ctx context.Context, topicPrompt, answerText string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, topicPrompt, answerText string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, topicPrompt, answerText string) (string, error) {
	return f(ctx, topicPrompt, answerText)
}
