package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prodlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateEnvelope(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		contents := req["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		assert.Equal(t, "summarize this", parts[0].(map[string]any)["text"])

		cfg := req["generationConfig"].(map[string]any)
		assert.Equal(t, float64(200), cfg["maxOutputTokens"])
		assert.Equal(t, 0.2, cfg["temperature"])
		assert.Equal(t, 0.8, cfg["topP"])

		json.NewEncoder(w).Encode(candidateEnvelope("  a summary  "))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-2.0-flash", 600)
	text, err := client.Complete(context.Background(), "summarize this", domain.CompletionOptions{
		MaxOutputTokens: 200,
		Temperature:     0.2,
		TopP:            0.8,
	})

	require.NoError(t, err)
	assert.Equal(t, "a summary", text, "candidate text must be trimmed")
}

func TestComplete_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-2.0-flash", 600)
	_, err := client.Complete(context.Background(), "prompt", domain.CompletionOptions{})

	assert.ErrorIs(t, err, domain.ErrEmptyCandidates)
}

func TestComplete_APIErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid"},
		})
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL, "gemini-2.0-flash", 600)
	_, err := client.Complete(context.Background(), "prompt", domain.CompletionOptions{})

	assert.ErrorIs(t, err, domain.ErrEmptyCandidates)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestComplete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection failure

	client := NewClient("test-key", server.URL, "gemini-2.0-flash", 600)
	_, err := client.Complete(context.Background(), "prompt", domain.CompletionOptions{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmptyCandidates, "transport failures are not service-level failures")
}

func TestComplete_OmitsZeroTokenCeiling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		cfg := req["generationConfig"].(map[string]any)
		_, present := cfg["maxOutputTokens"]
		assert.False(t, present, "zero ceiling must be omitted from generationConfig")

		json.NewEncoder(w).Encode(candidateEnvelope("ok"))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gemini-2.0-flash", 600)
	_, err := client.Complete(context.Background(), "prompt", domain.CompletionOptions{Temperature: 0.7, TopP: 0.8})

	require.NoError(t, err)
}
