// Package catalog scrapes the site's resource and blog listings into a
// deduplicated link catalog, with built-in fallbacks when scraping fails.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/core"
	"autoblog/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// DocumentFetcher loads and parses an HTML page.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Source produces a link catalog.
type Source interface {
	Build(ctx context.Context) core.Catalog
	BlogPage(ctx context.Context, page int) ([]core.Link, error)
}

// Options configures a Builder.
type Options struct {
	SiteURL      string
	ResourcesURL string
	BlogURL      string
	PageDelay    time.Duration // pause between pages in Walk
}

// Builder scrapes the catalog from the live site.
type Builder struct {
	docs DocumentFetcher
	opts Options
	log  *slog.Logger
}

// NewBuilder creates a Builder. A nil log uses the default logger.
func NewBuilder(docs DocumentFetcher, opts Options, log *slog.Logger) *Builder {
	opts.SiteURL = strings.TrimRight(opts.SiteURL, "/")
	if opts.BlogURL != "" && !strings.HasSuffix(opts.BlogURL, "/") {
		opts.BlogURL += "/"
	}
	return &Builder{docs: docs, opts: opts, log: logger.OrDefault(log)}
}

// Build scrapes resources and the first blog page concurrently.
// It never fails: each half degrades to its fallback list.
func (b *Builder) Build(ctx context.Context) core.Catalog {
	var c core.Catalog
	var g errgroup.Group

	g.Go(func() error {
		c.Resources = b.Resources(ctx)
		return nil
	})
	g.Go(func() error {
		c.Blogs, _ = b.BlogPage(ctx, 1)
		return nil
	})
	_ = g.Wait()
	c.Blogs = without(c.Blogs, c.Resources)

	b.log.Info("Link catalog built", "resources", len(c.Resources), "blogs", len(c.Blogs))
	return c
}

// Resources scrapes the resources page, falling back to the built-in list.
func (b *Builder) Resources(ctx context.Context) []core.Link {
	doc, err := b.docs.Document(ctx, b.opts.ResourcesURL)
	if err != nil {
		b.log.Error("Failed to scrape resource links", "url", b.opts.ResourcesURL, "error", err)
		return FallbackResources()
	}

	resources := ExtractResources(doc, b.opts.SiteURL)
	if len(resources) == 0 {
		b.log.Warn("No download links found, using fallback resources", "url", b.opts.ResourcesURL)
		return FallbackResources()
	}
	return resources
}

// BlogPage scrapes one blog listing page. Page 1 falls back to the
// built-in list; later pages return nothing on failure.
func (b *Builder) BlogPage(ctx context.Context, page int) ([]core.Link, error) {
	if page < 1 {
		return nil, apperr.NewValidationError("page", fmt.Sprintf("page must be a positive integer, got %d", page))
	}

	url := b.PageURL(page)
	doc, err := b.docs.Document(ctx, url)
	if err != nil {
		b.log.Error("Failed to scrape blog page", "page", page, "url", url, "error", err)
		return pageFallback(page), nil
	}

	blogs := ExtractBlogLinks(doc, b.opts.SiteURL)
	b.log.Debug("Scraped blog page", "page", page, "links", len(blogs))
	if len(blogs) == 0 {
		return pageFallback(page), nil
	}
	return blogs, nil
}

// PageURL is the listing URL for page; page 1 is the blog root.
func (b *Builder) PageURL(page int) string {
	if page <= 1 {
		return b.opts.BlogURL
	}
	return fmt.Sprintf("%spage/%d/", b.opts.BlogURL, page)
}

func pageFallback(page int) []core.Link {
	if page == 1 {
		return FallbackBlogs()
	}
	return []core.Link{}
}

// Session pages through the blog listing, returning only links not seen
// earlier in the same session.
type Session struct {
	src   Source
	delay time.Duration
	log   *slog.Logger

	mu   sync.Mutex
	seen *seenSet
}

// NewSession starts a pagination session over b.
func (b *Builder) NewSession() *Session {
	return NewSession(b, b.opts.PageDelay, b.log)
}

// NewSession starts a pagination session over any catalog source.
func NewSession(src Source, delay time.Duration, log *slog.Logger) *Session {
	return &Session{src: src, delay: delay, log: logger.OrDefault(log), seen: newSeenSet()}
}

// Reset forgets every link returned so far and marks seed as seen.
func (s *Session) Reset(seed []core.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = newSeenSet()
	for _, l := range seed {
		s.seen.add(l)
	}
}

// LoadPage fetches page and filters out links already returned.
func (s *Session) LoadPage(ctx context.Context, page int) ([]core.Link, error) {
	links, err := s.src.BlogPage(ctx, page)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make([]core.Link, 0, len(links))
	for _, l := range links {
		if s.seen.add(l) {
			fresh = append(fresh, l)
		}
	}
	return fresh, nil
}

// Walk loads pages start..end in order, pausing between pages.
func (s *Session) Walk(ctx context.Context, start, end int) ([]core.Link, error) {
	if start < 1 || end < start {
		return nil, apperr.NewValidationError("page", fmt.Sprintf("invalid page range %d-%d", start, end))
	}

	var all []core.Link
	for page := start; page <= end; page++ {
		links, err := s.LoadPage(ctx, page)
		if err != nil {
			s.log.Warn("Skipping blog page", "page", page, "error", err)
		}
		all = append(all, links...)

		if page < end && s.delay > 0 {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	s.log.Info("Walked blog pages", "start", start, "end", end, "links", len(all))
	return all, nil
}

// Static is a fixed catalog, used when scraping is disabled and in tests.
type Static struct {
	Catalog core.Catalog
	Pages   map[int][]core.Link
}

func (s Static) Build(context.Context) core.Catalog { return s.Catalog }

func (s Static) BlogPage(_ context.Context, page int) ([]core.Link, error) {
	if page < 1 {
		return nil, apperr.NewValidationError("page", fmt.Sprintf("page must be a positive integer, got %d", page))
	}
	if links, ok := s.Pages[page]; ok {
		return links, nil
	}
	if page == 1 {
		return s.Catalog.Blogs, nil
	}
	return []core.Link{}, nil
}
