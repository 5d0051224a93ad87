package llm

import "time"

// Provider constants
const (
	// DefaultProvider is the default generation backend
	DefaultProvider = ProviderOpenAI

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI Provider = "openai"

	// ProviderOllama represents a local Ollama server
	ProviderOllama Provider = "ollama"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic Provider = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini Provider = "gemini"

	// ProviderHTTP is a plain text-completion endpoint that accepts
	// {"prompt": "..."} and answers {"text": "..."}.
	ProviderHTTP Provider = "http"
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultMaxTokens caps the reply length. A full wireframe document with
// several screens fits comfortably.
const DefaultMaxTokens = 4096

// DefaultHTTPTimeout applies to the HTTP completer when no timeout is configured.
const DefaultHTTPTimeout = 120 * time.Second

var defaultModels = map[Provider]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderOllama:    "llama3.1",
	ProviderAnthropic: "claude-3-5-sonnet-latest",
	ProviderGemini:    "gemini-2.0-flash",
}

// DefaultModelForProvider returns the default model ID for a provider, or ""
// when the provider picks its own model (http).
func DefaultModelForProvider(p Provider) string {
	return defaultModels[p]
}

// InferProvider attempts to determine the provider from a model name.
func InferProvider(model string) (Provider, bool) {
	switch {
	case hasPrefix(model, "gpt-"), hasPrefix(model, "o1-"), hasPrefix(model, "o3-"):
		return ProviderOpenAI, true
	case hasPrefix(model, "claude-"):
		return ProviderAnthropic, true
	case hasPrefix(model, "gemini-"):
		return ProviderGemini, true
	case hasPrefix(model, "llama"), hasPrefix(model, "mistral"), hasPrefix(model, "qwen"), hasPrefix(model, "phi"):
		return ProviderOllama, true
	}
	return "", false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
