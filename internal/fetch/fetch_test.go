package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autoblog/internal/apperr"
)

func TestFetcherGet(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body><h2>HIPAA update</h2></body></html>"))
	}))
	defer server.Close()

	f := New(time.Second, "")
	body, err := f.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !strings.Contains(string(body), "HIPAA update") {
		t.Errorf("Unexpected body %q", body)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %q", gotUA)
	}
}

func TestFetcherGetStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := New(time.Second, "test-agent").Get(context.Background(), server.URL)
	var ue *apperr.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestFetcherTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	_, err := New(50*time.Millisecond, "").Get(context.Background(), server.URL)
	var ue *apperr.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError on timeout, got %v", err)
	}
}

func TestFetcherDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h3><a href="/blog/one/">One</a></h3></body></html>`))
	}))
	defer server.Close()

	doc, err := New(time.Second, "").Document(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if got := doc.Find("h3 a").Text(); got != "One" {
		t.Errorf("Expected anchor text 'One', got %q", got)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://technologyrivers.com", "/blog/post/", "https://technologyrivers.com/blog/post/"},
		{"https://technologyrivers.com/blog/", "page/2/", "https://technologyrivers.com/blog/page/2/"},
		{"https://technologyrivers.com", "https://other.com/x", "https://other.com/x"},
		{"https://technologyrivers.com", "  /resources/#hipaa  ", "https://technologyrivers.com/resources/#hipaa"},
	}
	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	if got := NormalizeURL(" HTTPS://TechnologyRivers.com/Blog/A/ "); got != "https://technologyrivers.com/Blog/A/" {
		t.Errorf("Unexpected normalized URL %q", got)
	}
}

func TestCollapseAndTruncate(t *testing.T) {
	if got := CollapseSpace("  AI \n\t in   healthcare "); got != "AI in healthcare" {
		t.Errorf("CollapseSpace = %q", got)
	}
	if got := Truncate("héllo world", 5); got != "héllo" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate changed short string: %q", got)
	}
}
