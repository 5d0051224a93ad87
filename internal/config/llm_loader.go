package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
)

// LoadLLMConfig loads backend configuration from Viper and environment variables.
// It handles precedence: Explicit Viper Config > Environment Variables > Defaults.
// Missing API keys are reported by llm.NewChatModel, not here.
func LoadLLMConfig() (llm.Config, error) {
	// 1. Provider
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = string(llm.DefaultProvider)
	}

	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	// 2. Model
	model := viper.GetString("llm.model")
	if model == "" {
		model = llm.DefaultModelForProvider(llmProvider)
	}

	// 3. API Key
	apiKey := ResolveAPIKey(llmProvider)

	// 4. Base URL (Ollama or OpenAI-compatible gateway)
	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	// 5. Completion endpoint (http provider)
	endpoint := strings.TrimSpace(viper.GetString("llm.endpoint"))
	if llmProvider == llm.ProviderHTTP && endpoint == "" {
		return llm.Config{}, fmt.Errorf("llm.endpoint is required for the http provider")
	}

	cfg := llm.Config{
		Provider:  llmProvider,
		Model:     model,
		APIKey:    apiKey,
		BaseURL:   baseURL,
		Endpoint:  endpoint,
		MaxTokens: getIntWithDefault("llm.maxTokens", llm.DefaultMaxTokens),
		Timeout:   getDurationWithDefault("llm.timeout", DefaultLLMTimeout),
	}

	if viper.IsSet("llm.temperature") {
		temp := float32(viper.GetFloat64("llm.temperature"))
		if temp < 0 || temp > 2 {
			return llm.Config{}, fmt.Errorf("llm.temperature must be between 0 and 2, got %v", temp)
		}
		cfg.Temperature = &temp
	}

	return cfg, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, the shared llm.apiKey, then provider-specific env vars.
func ResolveAPIKey(provider llm.Provider) string {
	keyFromViper := func(path string) string {
		if viper.IsSet(path) {
			return strings.TrimSpace(viper.GetString(path))
		}
		return ""
	}

	// 1) Per-provider config key (llm.apiKeys.<provider>)
	if key := keyFromViper(fmt.Sprintf("llm.apiKeys.%s", provider)); key != "" {
		return key
	}

	// 2) Shared key
	if key := keyFromViper("llm.apiKey"); key != "" {
		return key
	}

	// 3) Provider-specific env vars
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}
