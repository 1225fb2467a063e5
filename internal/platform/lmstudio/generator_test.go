package lmstudio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohgiri-live/ohgiri-api/internal/generation"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty base URL", func(t *testing.T) {
		t.Parallel()

		gen, err := NewGenerator(nil, Config{})

		assert.Nil(t, gen)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		gen, err := NewGenerator(nil, Config{BaseURL: "http://localhost:1234/v1"})

		require.NoError(t, err)
		require.NotNil(t, gen)
		assert.Equal(t, DefaultModel, gen.model)
	})
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	newTestGenerator := func(t *testing.T, handler http.HandlerFunc) *Generator {
		t.Helper()

		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)

		gen, err := NewGenerator(nil, Config{
			BaseURL: srv.URL,
			Model:   "test-model",
			Timeout: 2 * time.Second,
		})
		require.NoError(t, err)
		return gen
	}

	t.Run("returns completion text", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"choices": [{
					"index": 0,
					"message": {"role": "assistant", "content": "  発想の勝利です。  "},
					"finish_reason": "stop"
				}]
			}`))
		})

		text, err := gen.Generate(context.Background(), "こんな選手は嫌だ", "試合中に帰る")

		require.NoError(t, err)
		assert.Equal(t, "発想の勝利です。", text)
	})

	t.Run("response without choices is transient", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
		})

		text, err := gen.Generate(context.Background(), "お題", "回答")

		assert.Empty(t, text)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
	})

	t.Run("server error is transient", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		})

		text, err := gen.Generate(context.Background(), "お題", "回答")

		assert.Empty(t, text)
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
	})
}
