package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"autoblog/internal/apperr"
)

type OllamaOption func(client *OllamaClient)

// OllamaClient calls a local Ollama server's generate endpoint.
type OllamaClient struct {
	base    url.URL
	model   string
	options map[string]any
	http    *http.Client
}

func NewOllamaClient(baseURL, model string, opts ...OllamaOption) (*OllamaClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL %q: %w", baseURL, err)
	}
	client := &OllamaClient{
		base:    *base,
		model:   model,
		options: map[string]any{},
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func WithHTTPClient(httpClient *http.Client) OllamaOption {
	return func(client *OllamaClient) {
		client.http = httpClient
	}
}

func WithTemperature(t float64) OllamaOption {
	return func(client *OllamaClient) {
		client.options["temperature"] = t
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *OllamaClient) Name() string { return ProviderOllama + "/" + c.model }

func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := ollamaGenerateRequest{Model: c.model, Prompt: prompt, Options: c.options}
	var resp ollamaGenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/generate", req, &resp); err != nil {
		return "", apperr.NewUpstream(ProviderOllama, err)
	}
	return resp.Response, nil
}

func (c *OllamaClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	body, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
