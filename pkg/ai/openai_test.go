package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func newTestClient(url string, retries uint64) *OpenAIClient {
	return NewOpenAIClient(config.LLMConfig{
		APIKey:     "sk-test",
		BaseURL:    url,
		Timeout:    2 * time.Second,
		MaxRetries: retries,
	}, WithRetryInterval(time.Millisecond))
}

func TestChatCompletion_StringContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-5-mini", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		require.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-5-mini","choices":[{"message":{"role":"assistant","content":"{\"items\":[]}"}}],"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, 1).ChatCompletion(context.Background(), ChatRequest{
		Model:          "gpt-5-mini",
		Messages:       []Message{{Role: "system", Content: "s"}, {Role: "user", Content: "u"}},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, res.Content)
	assert.Equal(t, 42, res.TotalTokens)
	assert.Equal(t, 1, res.Attempts)
}

func TestChatCompletion_ObjectContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":{"items":[{"agenda":"x"}]}}}]}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, 0).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"agenda":"x"}]}`, res.Content)
}

func TestChatCompletion_RetriesServerErrorOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[]"}}]}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, 1).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "[]", res.Content)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestChatCompletion_GivesUpAfterRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestChatCompletion_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Contains(t, statusErr.Body, "bad key")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestChatCompletion_Disabled(t *testing.T) {
	client := NewOpenAIClient(config.LLMConfig{})
	assert.False(t, client.Enabled())

	_, err := client.ChatCompletion(context.Background(), ChatRequest{})
	assert.Error(t, err)
}
