package topics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Source yields raw headlines for scoring.
type Source interface {
	Name() string
	Headlines(ctx context.Context) ([]string, error)
}

// DocumentFetcher loads and parses an HTML page.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// HTMLSource scrapes headline elements matching Selector from a page.
type HTMLSource struct {
	URL      string
	Selector string
	Docs     DocumentFetcher
}

func (s HTMLSource) Name() string { return s.URL }

func (s HTMLSource) Headlines(ctx context.Context) ([]string, error) {
	doc, err := s.Docs.Document(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	var headlines []string
	doc.Find(s.Selector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headlines = append(headlines, text)
		}
	})
	return headlines, nil
}

// FeedSource reads item titles from an RSS or Atom feed.
type FeedSource struct {
	URL    string
	parser *gofeed.Parser
}

// NewFeedSource builds a feed source with a bounded HTTP client.
func NewFeedSource(url string, timeout time.Duration, userAgent string) FeedSource {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: timeout}
	p.UserAgent = userAgent
	return FeedSource{URL: url, parser: p}
}

func (s FeedSource) Name() string { return s.URL }

func (s FeedSource) Headlines(ctx context.Context) ([]string, error) {
	p := s.parser
	if p == nil {
		p = gofeed.NewParser()
	}
	feed, err := p.ParseURLWithContext(s.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", s.URL, err)
	}
	headlines := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title != "" {
			headlines = append(headlines, item.Title)
		}
	}
	return headlines, nil
}

// StaticSource returns fixed headlines, or Err when set.
type StaticSource struct {
	Label string
	Items []string
	Err   error
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Headlines(context.Context) ([]string, error) {
	return s.Items, s.Err
}
