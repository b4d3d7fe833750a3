package llm

import (
	"context"
	"errors"
	"fmt"

	"autoblog/internal/apperr"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are an expert healthcare technology writer. Follow the output format instructions exactly."

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
// Groq is served through its compatible base URL.
type OpenAIClient struct {
	provider    string
	model       string
	temperature float64
	client      openai.Client
}

func NewOpenAIClient(provider string, s Settings) (*OpenAIClient, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("%s api key missing; set LLM_API_KEY or llm.api_key", provider)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAIClient{
		provider:    provider,
		model:       s.Model,
		temperature: s.Temperature,
		client:      openai.NewClient(opts...),
	}, nil
}

func (c *OpenAIClient) Name() string { return c.provider + "/" + c.model }

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", apperr.NewUpstream(c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.NewUpstream(c.provider, errors.New("empty choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
