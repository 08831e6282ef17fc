package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// OpenAIClient calls an OpenAI-compatible chat completion endpoint
type OpenAIClient struct {
	apiKey        string
	baseURL       string
	client        *http.Client
	maxRetries    uint64
	retryInterval time.Duration
}

// Option customizes an OpenAIClient
type Option func(*OpenAIClient)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OpenAIClient) { c.client = hc }
}

// WithRetryInterval sets the wait before the retry attempt
func WithRetryInterval(d time.Duration) Option {
	return func(c *OpenAIClient) { c.retryInterval = d }
}

// NewOpenAIClient creates a client from the LLM config
func NewOpenAIClient(cfg config.LLMConfig, opts ...Option) *OpenAIClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = config.DefaultLLMBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	c := &OpenAIClient{
		apiKey:        cfg.APIKey,
		baseURL:       base,
		client:        &http.Client{Timeout: timeout},
		maxRetries:    cfg.MaxRetries,
		retryInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether an API key is configured
func (c *OpenAIClient) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the model for a particular output encoding
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is the subset of the completion response we read
type ChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatResult is the first choice of a completion, with content always
// rendered as a string
type ChatResult struct {
	Model       string
	Content     string
	TotalTokens int
	Attempts    int
}

// StatusError is returned when the endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ChatCompletion sends req and returns the first choice. Network errors,
// 429 and 5xx responses are retried up to the configured retry count.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if !c.Enabled() {
		return nil, errors.New("completion client has no API key")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to encode request: %w", err))
	}

	var (
		result   *ChatResult
		attempts int
	)
	call := func() error {
		attempts++
		res, err := c.do(ctx, body)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Retryable() {
				return backoff.Permanent(err)
			}
			var netErr net.Error
			if !errors.As(err, &netErr) && !errors.As(err, &statusErr) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxInterval = 4 * c.retryInterval
	bo.MaxElapsedTime = 0

	if err := backoff.Retry(call, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx)); err != nil {
		return nil, err
	}
	result.Attempts = attempts
	return result, nil
}

func (c *OpenAIClient) do(ctx context.Context, body []byte) (*ChatResult, error) {
	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("empty response from completion endpoint")
	}

	content, err := contentString(cr.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return &ChatResult{
		Model:       cr.Model,
		Content:     content,
		TotalTokens: cr.Usage.TotalTokens,
	}, nil
}

// contentString accepts content either as a JSON string or, from some
// proxies, as an already-decoded JSON value which is re-serialized
func contentString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("failed to decode message content: %w", err)
		}
		return s, nil
	}
	return string(trimmed), nil
}
