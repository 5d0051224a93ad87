// Package llm provides the generation backends used by the wireframe pipeline.
// Chat providers are built on CloudWeGo Eino; a plain HTTP completer covers
// endpoints that speak {"prompt"} -> {"text"}.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Provider identifies the generation backend to use.
type Provider string

// Config holds configuration for creating a generation backend.
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string        // Required for openai, anthropic and gemini
	BaseURL     string        // Ollama server or OpenAI-compatible base URL
	Endpoint    string        // Required for http
	MaxTokens   int           // 0 means DefaultMaxTokens
	Temperature *float32      // nil leaves the provider default
	Timeout     time.Duration // http only; 0 means DefaultHTTPTimeout
}

// CloseableChatModel wraps an Eino chat model together with whatever client
// resources it holds.
type CloseableChatModel struct {
	model.BaseChatModel
	closer interface{ Close() error }
}

// Close releases the underlying client, if any. Safe to call more than once.
func (m *CloseableChatModel) Close() error {
	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}

// genaiClientCloser drops the reference to the Gemini client. The genai
// client has no explicit shutdown.
type genaiClientCloser struct {
	client *genai.Client
}

func (c *genaiClientCloser) Close() error {
	c.client = nil
	return nil
}

// NewChatModel creates a chat model for the configured provider.
// It returns a model that can be used for Generate() calls.
func NewChatModel(ctx context.Context, cfg Config) (*CloseableChatModel, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModelForProvider(cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:       modelName,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   &maxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return &CloseableChatModel{BaseChatModel: cm}, nil

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		cm, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   modelName,
		})
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return &CloseableChatModel{BaseChatModel: cm}, nil

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		cm, err := claude.NewChatModel(ctx, &claude.Config{
			APIKey:      cfg.APIKey,
			Model:       modelName,
			MaxTokens:   maxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return &CloseableChatModel{BaseChatModel: cm}, nil

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		cm, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       modelName,
			MaxTokens:   &maxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini model: %w", err)
		}
		return &CloseableChatModel{BaseChatModel: cm, closer: &genaiClientCloser{client: client}}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, ollama, anthropic, gemini)", cfg.Provider)
	}
}

// NewCompleter builds the Completer for cfg: an HTTPCompleter for the http
// provider, otherwise a ChatCompleter over NewChatModel. The returned close
// function releases provider resources.
func NewCompleter(ctx context.Context, cfg Config) (Completer, func() error, error) {
	if cfg.Provider == ProviderHTTP {
		c, err := NewHTTPCompleter(HTTPConfig{Endpoint: cfg.Endpoint, Timeout: cfg.Timeout})
		if err != nil {
			return nil, nil, err
		}
		return c, func() error { return nil }, nil
	}

	cm, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewChatCompleter(cfg.Provider, cm), cm.Close, nil
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderOpenAI, ProviderOllama, ProviderAnthropic, ProviderGemini, ProviderHTTP:
		return Provider(p), nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}
