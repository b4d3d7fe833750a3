package llm

import (
	"context"
	"errors"
	"fmt"

	"autoblog/internal/apperr"

	"google.golang.org/genai"
)

// GeminiClient calls Google Gemini through the genai SDK.
type GeminiClient struct {
	model       string
	temperature float32
	gClient     *genai.Client
}

func NewGeminiClient(ctx context.Context, s Settings) (*GeminiClient, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or llm.api_key")
	}
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{model: s.Model, temperature: float32(s.Temperature), gClient: gClient}, nil
}

func (c *GeminiClient) Name() string { return ProviderGemini + "/" + c.model }

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", apperr.NewUpstream(ProviderGemini, err)
	}

	text := resp.Text()
	if text == "" {
		return "", apperr.NewUpstream(ProviderGemini, errors.New("empty response from model"))
	}
	return text, nil
}
