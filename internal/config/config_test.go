package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autoblog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	Reset()
	defer Reset()

	cfg, err := Load(writeConfig(t, "app:\n  debug: false\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "groq" || cfg.LLM.Model != "llama-3.1-8b-instant" {
		t.Errorf("Unexpected LLM defaults: %+v", cfg.LLM)
	}
	if cfg.Scraper.Timeout != 10*time.Second {
		t.Errorf("Expected 10s scraper timeout, got %v", cfg.Scraper.Timeout)
	}
	if cfg.Marketing.WeeklySchedule != "0 9 * * 1" {
		t.Errorf("Unexpected weekly schedule %q", cfg.Marketing.WeeklySchedule)
	}
	if len(cfg.Topics.Sources) != 3 {
		t.Fatalf("Expected 3 default topic sources, got %d", len(cfg.Topics.Sources))
	}
	if cfg.Topics.Sources[0].Selector != "h2, h3" {
		t.Errorf("Unexpected selector %q", cfg.Topics.Sources[0].Selector)
	}
	if len(cfg.Blog.Topics) != 10 {
		t.Errorf("Expected 10 configured topics, got %d", len(cfg.Blog.Topics))
	}
	if cfg.Storage.BlogsDir != "blogs" {
		t.Errorf("Expected blogs dir, got %q", cfg.Storage.BlogsDir)
	}
}

func TestLoadEnvironmentAliases(t *testing.T) {
	Reset()
	defer Reset()

	t.Setenv("PORT", "8088")
	t.Setenv("LLM_PROVIDER", "Ollama")
	t.Setenv("MARKETING_TEAM_EMAILS", "a@example.com, b@example.com,,")
	t.Setenv("EMAIL_USER", "bot@example.com")

	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8088 {
		t.Errorf("Expected PORT alias, got %d", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("Expected normalized provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434" {
		t.Errorf("Expected ollama base URL default, got %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.RequiresAPIKey() {
		t.Error("ollama should not require an API key")
	}
	if strings.Join(cfg.Marketing.TeamEmails, ";") != "a@example.com;b@example.com" {
		t.Errorf("Unexpected recipients %v", cfg.Marketing.TeamEmails)
	}
	if cfg.Email.From != "bot@example.com" {
		t.Errorf("Expected From to default to username, got %q", cfg.Email.From)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected file value for logging level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"provider", "llm:\n  provider: cohere\n", "Unknown LLM provider"},
		{"cron", "marketing:\n  weekly_schedule: \"every tuesday\"\n", "Invalid cron expression"},
		{"batch", "generation:\n  batch_concurrency: 0\n", "batch_concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			defer Reset()

			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadCachesGlobal(t *testing.T) {
	Reset()
	defer Reset()

	first, err := Load(writeConfig(t, "server:\n  port: 4000\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if Get() != first {
		t.Error("Expected Get to return the cached config")
	}
	if GetServer().Port != 4000 {
		t.Errorf("Expected port 4000, got %d", GetServer().Port)
	}
}
