// Package topics discovers, scores and selects topics for new posts.
package topics

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"autoblog/internal/core"
	"autoblog/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Researcher gathers trending topics from every configured source.
type Researcher struct {
	sources []Source
	curated []core.Topic
	picker  *Picker
	log     *slog.Logger
}

// NewResearcher builds a Researcher. A nil picker draws from an unseeded source.
func NewResearcher(sources []Source, picker *Picker, log *slog.Logger) *Researcher {
	if picker == nil {
		picker = NewPicker(nil)
	}
	return &Researcher{sources: sources, picker: picker, log: logger.OrDefault(log)}
}

// WithCurated merges a fixed topic pack into every Trending result.
func (r *Researcher) WithCurated(topics []core.Topic) *Researcher {
	r.curated = append(r.curated, topics...)
	return r
}

// Trending fetches all sources concurrently and returns deduplicated topics
// ordered by relevance. A failing source is skipped; if all of them fail the
// built-in fallback topics are returned, unless a curated pack is set.
func (r *Researcher) Trending(ctx context.Context) []core.Topic {
	var (
		mu       sync.Mutex
		perSrc   = make([][]core.Topic, len(r.sources))
		failures int
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		g.Go(func() error {
			headlines, err := src.Headlines(gctx)
			if err != nil {
				r.log.Warn("Failed to scrape topic source", "source", src.Name(), "error", err)
				mu.Lock()
				failures++
				mu.Unlock()
				return nil
			}
			perSrc[i] = Score(src.Name(), headlines)
			return nil
		})
	}
	_ = g.Wait()

	if failures == len(r.sources) && len(r.curated) == 0 {
		r.log.Error("All topic sources failed, using fallback topics", "sources", len(r.sources))
		return FallbackTopics()
	}

	all := append([]core.Topic(nil), r.curated...)
	for _, ts := range perSrc {
		all = append(all, ts...)
	}
	unique := Dedup(all)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Relevance > unique[j].Relevance
	})

	r.log.Info("Trending topics collected", "topics", len(unique), "failed_sources", failures)
	return unique
}

// Random picks one trending topic weighted by relevance.
func (r *Researcher) Random(ctx context.Context) core.Topic {
	t := r.picker.Pick(r.Trending(ctx))
	r.log.Info("Selected trending topic", "title", t.Title, "relevance", t.Relevance)
	return t
}
