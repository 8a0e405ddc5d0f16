package factory

import (
	"fmt"

	"triage-assist-be/pkg/llm"
	"triage-assist-be/pkg/llm/gemini"
	"triage-assist-be/pkg/llm/ollama"
	"triage-assist-be/pkg/llm/openai"
)

const (
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
	ProviderOllama      = "ollama"
	// HuggingFace's router speaks the OpenAI protocol.
	ProviderHuggingFace = "huggingface"
	ProviderNone        = "none"
)

const huggingFaceRouterURL = "https://router.huggingface.co/v1"

type ProviderConfig struct {
	Type    string
	Model   string
	BaseURL string
	APIKey  string
}

// NewLLMProvider returns (nil, nil) for an empty or "none" type so a link of the
// fallback chain can be switched off from configuration.
func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Type {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, nil
		}
		return gemini.NewGeminiProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, nil
		}
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderHuggingFace:
		if cfg.APIKey == "" {
			return nil, nil
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = huggingFaceRouterURL
		}
		return openai.NewOpenAIProvider(cfg.APIKey, baseURL, cfg.Model), nil
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
