package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messageJSON = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-opus-4-5-20250514",
  "content": [
    {"type": "text", "text": "LGTM"},
    {"type": "text", "text": "ignored second block"}
  ],
  "stop_reason": "end_turn",
  "stop_sequence": null,
  "usage": {"input_tokens": 100, "output_tokens": 10}
}`

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *Anthropic {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	a, err := NewAnthropic("claude-opus-4-5-20250514", option.WithBaseURL(server.URL))
	require.NoError(t, err)
	return a
}

func TestAnthropic_Review(t *testing.T) {
	var calls atomic.Int32
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content []struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "claude-opus-4-5-20250514", req.Model)
		assert.Equal(t, 8192, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		require.Len(t, req.Messages[0].Content, 1)
		assert.Equal(t, "review this diff", req.Messages[0].Content[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(messageJSON))
	})

	resp, err := a.Review(context.Background(), ReviewRequest{Prompt: "review this diff", MaxTokens: 8192})
	require.NoError(t, err)
	assert.Equal(t, "LGTM", resp.Content, "only the first block is used")
	assert.Equal(t, int64(100), resp.InputTokens)
	assert.Equal(t, int64(10), resp.OutputTokens)
	assert.Equal(t, int32(1), calls.Load())
}

func errorHandler(status int, errType string, calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"` + errType + `","message":"boom"}}`))
	}
}

func TestAnthropic_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		errType string
		check   func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication_error", IsAuthError},
		{"forbidden", http.StatusForbidden, "permission_error", IsAuthError},
		{"rate limited", http.StatusTooManyRequests, "rate_limit_error", IsRateLimitError},
		{"server error", http.StatusInternalServerError, "api_error", IsAPIError},
		{"bad request", http.StatusBadRequest, "invalid_request_error", IsAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			a := newTestAnthropic(t, errorHandler(tt.status, tt.errType, &calls))

			_, err := a.Review(context.Background(), ReviewRequest{Prompt: "x"})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected classification: %T %v", err, err)
			assert.Equal(t, int32(1), calls.Load(), "no retries")
		})
	}
}

func TestAnthropic_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	a, err := NewAnthropic("m", option.WithBaseURL(url))
	require.NoError(t, err)

	_, err = a.Review(context.Background(), ReviewRequest{Prompt: "x"})
	require.Error(t, err)
	assert.True(t, IsTransportError(err), "got %T %v", err, err)
	assert.False(t, IsAPIError(err))
}

func TestAnthropic_Timeout(t *testing.T) {
	release := make(chan struct{})
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := a.Review(ctx, ReviewRequest{Prompt: "x"})
	require.Error(t, err)
	assert.True(t, IsTransportError(err), "got %T %v", err, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAnthropic_EmptyContent(t *testing.T) {
	a := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`))
	})

	_, err := a.Review(context.Background(), ReviewRequest{Prompt: "x"})
	require.Error(t, err)
	assert.True(t, IsAPIError(err))
	assert.Contains(t, err.Error(), "no content blocks")
}

func TestNewAnthropic_MissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewAnthropic("m")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("nope", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestClassify_NonSDKError(t *testing.T) {
	err := classify(errors.New("dial tcp: connection refused"))
	assert.True(t, IsTransportError(err))
	assert.Contains(t, err.Error(), "connection refused")
}
