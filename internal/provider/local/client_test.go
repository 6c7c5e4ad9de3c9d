// Package local_test tests the OpenAI-compatible text client against a mock
// chat-completion server.
package local_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/book-expert/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redredchen01/velvet-whisper/internal/core"
	"github.com/redredchen01/velvet-whisper/internal/provider/local"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New(t.TempDir(), "local_test.log")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = log.Close()
	})

	return log
}

// newChatServer serves a fixed chat-completion payload with the given message
// content.
func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req map[string]any

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["messages"])

		w.Header().Set("Content-Type", "application/json")

		payload := map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))

	t.Cleanup(server.Close)

	return server
}

func TestGenerateStoryText_ParsesJSONPayload(t *testing.T) {
	t.Parallel()

	server := newChatServer(t, `{"title": "The Quiet Hour", "story": "It began with rain."}`)
	client := local.NewClient(server.URL, "test-model", newTestLogger(t))

	result, err := client.GenerateStoryText(context.Background(), "a prompt")
	require.NoError(t, err)

	assert.Equal(t, "The Quiet Hour", result.Title)
	assert.Equal(t, "It began with rain.", result.Story)
}

func TestGenerateStoryText_WrapsRawTextUnderPlaceholderTitle(t *testing.T) {
	t.Parallel()

	raw := "Once upon a time, without any JSON at all."
	server := newChatServer(t, raw)
	client := local.NewClient(server.URL, "test-model", newTestLogger(t))

	result, err := client.GenerateStoryText(context.Background(), "a prompt")
	require.NoError(t, err)

	assert.Equal(t, local.PlaceholderTitle, result.Title)
	assert.Equal(t, raw, result.Story)
}

func TestGenerateStoryText_BackfillsMissingTitle(t *testing.T) {
	t.Parallel()

	server := newChatServer(t, `{"story": "A story with no title."}`)
	client := local.NewClient(server.URL, "test-model", newTestLogger(t))

	result, err := client.GenerateStoryText(context.Background(), "a prompt")
	require.NoError(t, err)

	assert.Equal(t, local.PlaceholderTitle, result.Title)
	assert.Equal(t, "A story with no title.", result.Story)
}

func TestGenerateStoryText_EmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	t.Cleanup(server.Close)

	client := local.NewClient(server.URL, "test-model", newTestLogger(t))

	_, err := client.GenerateStoryText(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedResponse)
}

func TestGenerateStoryText_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := local.NewClient(server.URL, "test-model", newTestLogger(t))

	_, err := client.GenerateStoryText(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTransport)
}

func TestGenerateStoryText_UnreachableEndpoint(t *testing.T) {
	t.Parallel()

	client := local.NewClient("http://127.0.0.1:1/v1", "test-model", newTestLogger(t))

	_, err := client.GenerateStoryText(context.Background(), "a prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTransport)
}
