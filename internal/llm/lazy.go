package llm

import (
	"context"
	"strings"
	"sync"
)

// LazyClient defers building its backend until the first Complete call.
// A failed build is not cached; the next call tries again.
type LazyClient struct {
	settings Settings

	mu     sync.Mutex
	client ModelClient
}

func NewLazy(s Settings) *LazyClient {
	return &LazyClient{settings: s}
}

// Name reports provider/model without building the backend.
func (l *LazyClient) Name() string {
	provider := strings.ToLower(l.settings.Provider)
	if provider == "" {
		provider = ProviderGroq
	}
	model := l.settings.Model
	if model == "" {
		model = DefaultModel
	}
	return provider + "/" + model
}

func (l *LazyClient) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return client.Complete(ctx, prompt)
}

func (l *LazyClient) get(ctx context.Context) (ModelClient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client != nil {
		return l.client, nil
	}
	client, err := New(ctx, l.settings)
	if err != nil {
		return nil, err
	}
	l.client = client
	return client, nil
}
