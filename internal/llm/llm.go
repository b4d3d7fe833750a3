// Package llm wraps the supported language model backends behind a single
// prompt-in, text-out interface.
package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	DefaultModel       = "llama-3.1-8b-instant"
	DefaultTemperature = 0.7
	GroqBaseURL        = "https://api.groq.com/openai/v1"
	OllamaBaseURL      = "http://localhost:11434"
)

// ModelClient sends one prompt and returns the raw completion text.
// Implementations do not retry and impose no timeout of their own;
// callers bound calls through ctx.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Settings selects and configures a backend.
type Settings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}

// New builds the backend named by s.Provider.
func New(ctx context.Context, s Settings) (ModelClient, error) {
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}

	switch strings.ToLower(s.Provider) {
	case ProviderGroq, "":
		if s.BaseURL == "" {
			s.BaseURL = GroqBaseURL
		}
		return NewOpenAIClient(ProviderGroq, s)
	case ProviderOpenAI:
		return NewOpenAIClient(ProviderOpenAI, s)
	case ProviderOllama:
		if s.BaseURL == "" {
			s.BaseURL = OllamaBaseURL
		}
		return NewOllamaClient(s.BaseURL, s.Model, WithTemperature(s.Temperature))
	case ProviderGemini:
		return NewGeminiClient(ctx, s)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", s.Provider)
	}
}
