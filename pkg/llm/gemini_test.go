package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewGeminiClient(GeminiConfig{BaseURL: srv.URL + "/v1beta", Model: "gemini-test", APIKey: "k"})
	require.NoError(t, err)
	return c
}

func TestGeminiGenerate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"))

		var req gmReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"parts": [{"text": "part one, "}, {"text": "part two"}]}}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 5}
		}`)
	})

	resp, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "part one, part two", resp.Text)
	assert.Equal(t, Usage{PromptTokens: 12, OutputTokens: 5}, resp.Usage)
	assert.Equal(t, "gemini/gemini-test", c.Name())
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantMsg   string
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, "slow down", errors.MsgRateLimited, true},
		{"server error", http.StatusServiceUnavailable, "overloaded", errors.MsgUpstream, true},
		{"bad request", http.StatusBadRequest, `{"error":"bad"}`, "request rejected", false},
		{"no candidates", http.StatusOK, `{"candidates": []}`, "response has no candidates", false},
		{"blocked", http.StatusOK, `{"promptFeedback": {"blockReason": "SAFETY"}}`, "prompt blocked: SAFETY", false},
		{"empty text", http.StatusOK, `{"candidates": [{"content": {"parts": []}, "finishReason": "MAX_TOKENS"}]}`, "response has no text", false},
		{"not json", http.StatusOK, `<html>`, "decode response", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrModel))
			assert.Equal(t, tt.retryable, errors.IsRetryable(err))

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantMsg, e.Message)
		})
	}
}

func TestGeminiErrorBodyIsTruncated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, strings.Repeat("x", 10*errorBodyLimit))
	})
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 2*errorBodyLimit)
}

func TestGeminiCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, "p")
	require.Error(t, err)
	assert.Equal(t, errors.ExitCancelled, errors.ExitCode(err))
}

func TestGeminiTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := NewGeminiClient(GeminiConfig{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "p")
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, MsgTransport, e.Message)
	assert.Equal(t, errors.ExitModel, errors.ExitCode(err))
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(GeminiConfig{})
	assert.True(t, errors.IsType(err, errors.ErrConfig))
}

func TestNewGeminiClientDefaults(t *testing.T) {
	c, err := NewGeminiClient(GeminiConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent", c.url)
	assert.Equal(t, defaultGeminiTimeout, c.hc.Timeout)
}
