package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Completer performs one synchronous text completion. Implementations make
// exactly one round-trip per call and never retry. Every failure is a
// *GenerationError.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatCompleter sends the prompt as a single user message to an Eino chat model.
type ChatCompleter struct {
	provider Provider
	model    model.BaseChatModel
}

// NewChatCompleter wraps a chat model. provider is only used to label errors.
func NewChatCompleter(provider Provider, m model.BaseChatModel) *ChatCompleter {
	return &ChatCompleter{provider: provider, model: m}
}

// Complete implements Completer.
func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", &GenerationError{Provider: c.provider, Err: err}
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", &GenerationError{Provider: c.provider, Err: ErrEmptyResponse}
	}
	return msg.Content, nil
}

// HTTPConfig holds configuration for the HTTP completer.
type HTTPConfig struct {
	// Endpoint receives POST {"prompt": "..."} and answers {"text": "..."}
	Endpoint string

	// Timeout for HTTP requests (default: DefaultHTTPTimeout)
	Timeout time.Duration

	// Header is added to every request (e.g. Authorization)
	Header http.Header
}

// HTTPCompleter talks to a bare text-completion endpoint.
type HTTPCompleter struct {
	endpoint string
	header   http.Header
	client   *http.Client
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

// Text is a pointer so a missing field can be told apart from an empty one.
type completionResponse struct {
	Text *string `json:"text"`
}

// NewHTTPCompleter creates a completer for cfg.Endpoint.
func NewHTTPCompleter(cfg HTTPConfig) (*HTTPCompleter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("completion endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultHTTPTimeout
	}

	return &HTTPCompleter{
		endpoint: cfg.Endpoint,
		header:   cfg.Header,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Complete implements Completer.
func (c *HTTPCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	text, status, err := c.post(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Provider: ProviderHTTP, StatusCode: status, Err: err}
	}
	return text, nil
}

func (c *HTTPCompleter) post(ctx context.Context, prompt string) (string, int, error) {
	body, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", resp.StatusCode, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	if out.Text == nil {
		return "", resp.StatusCode, ErrMissingText
	}
	return *out.Text, resp.StatusCode, nil
}
