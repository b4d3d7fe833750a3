package llm

import (
	"context"
	"sync"
)

// MockClient replays scripted replies. After the script runs out it keeps
// returning Default.
type MockClient struct {
	Replies []string
	Errors  []error
	Default string

	mu      sync.Mutex
	prompts []string
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if i < len(m.Errors) && m.Errors[i] != nil {
		return "", m.Errors[i]
	}
	if i < len(m.Replies) {
		return m.Replies[i], nil
	}
	return m.Default, nil
}

// Calls reports how many prompts were sent.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns every prompt received, in order.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
