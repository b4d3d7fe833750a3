package blog

import (
	"context"
	"log/slog"
	"time"

	"autoblog/internal/core"
	"autoblog/internal/logger"
	"autoblog/internal/topics"
)

// Generator writes posts with a language model.
type Generator struct {
	model     topics.Completer
	suggester *topics.Suggester
	log       *slog.Logger
}

func NewGenerator(model topics.Completer, log *slog.Logger) *Generator {
	log = logger.OrDefault(log)
	return &Generator{
		model:     model,
		suggester: topics.NewSuggester(model, log),
		log:       log,
	}
}

// Generate validates req, prompts the model with links picked from catalog
// and parses the reply. An unparseable reply yields FallbackPost with a nil
// error; a failed model call is returned as is.
func (g *Generator) Generate(ctx context.Context, req core.GenerationRequest, catalog core.Catalog) (*core.GeneratedPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalize()

	links := SelectLinks(req, catalog.All())
	prompt := BuildPrompt(req, links)

	start := time.Now()
	g.log.Info("Generating blog post", "topic", req.Topic, "target_words", req.TargetWordCount, "links", len(links))

	raw, err := g.model.Complete(ctx, prompt)
	if err != nil {
		g.log.Error("Model call failed", "topic", req.Topic, "error", err)
		return nil, err
	}

	post, err := ParseOrFallback(raw, req, links)
	if err != nil {
		g.log.Warn("Failed to parse model response, using fallback post", "topic", req.Topic, "error", err)
		return post, nil
	}

	g.log.Info("Blog post generated",
		"title", post.Title,
		"words", post.WordCount,
		"duration", time.Since(start))
	return post, nil
}

// SuggestTopics asks the model for topic ideas. It never fails.
func (g *Generator) SuggestTopics(ctx context.Context) []core.Topic {
	return g.suggester.Suggest(ctx)
}
