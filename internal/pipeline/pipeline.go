// Package pipeline wires link scraping, topic research, generation,
// rendering, storage and email into the operations the CLI and HTTP
// server expose.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/blog"
	"autoblog/internal/catalog"
	"autoblog/internal/core"
	"autoblog/internal/logger"
	"autoblog/internal/render"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTrendingCount = 3
	MaxTrendingCount     = 10
)

// Researcher supplies trending topics.
type Researcher interface {
	Trending(ctx context.Context) []core.Topic
	Random(ctx context.Context) core.Topic
}

// Sender delivers posts to the marketing team.
type Sender interface {
	SendPost(ctx context.Context, post *core.GeneratedPost) error
	SendDigest(ctx context.Context, posts []*core.GeneratedPost) error
}

// Saver persists posts.
type Saver interface {
	Save(post *core.GeneratedPost) (string, error)
}

// Deps are the collaborators a Service composes. Mail and Store may be nil;
// operations that need them then report a failed result.
type Deps struct {
	Links     catalog.Source
	Research  Researcher
	Generator *blog.Generator
	Mail      Sender
	Store     Saver
}

// Options tunes a Service.
type Options struct {
	Topics           []string // Offered by AvailableTopics
	BatchConcurrency int
	WeeklyCount      int
	PageDelay        time.Duration // pause between listing pages in WalkBlogs
}

type Service struct {
	deps Deps
	opts Options
	log  *slog.Logger

	// more tracks links already shown by Links and LoadMoreBlogs
	more *catalog.Session
}

func New(deps Deps, opts Options, log *slog.Logger) *Service {
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = 1
	}
	if opts.WeeklyCount < 1 {
		opts.WeeklyCount = DefaultTrendingCount
	}
	log = logger.OrDefault(log)
	return &Service{
		deps: deps,
		opts: opts,
		log:  log,
		more: catalog.NewSession(deps.Links, opts.PageDelay, log),
	}
}

// Generate writes one post. Invalid requests are returned as a
// *apperr.ValidationError before anything is fetched; every other failure
// is reported in the result.
func (s *Service) Generate(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	s.log.Info("Generating blog post", "topic", req.Topic)

	links := s.deps.Links.Build(ctx)
	post, err := s.deps.Generator.Generate(ctx, req, links)
	elapsed := time.Since(start)
	if err != nil {
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		s.log.Error("Error generating blog post", "topic", req.Topic, "error", err)
		return core.Failed(err.Error(), elapsed), nil
	}

	s.log.Info("Blog post generated successfully", "title", post.Title, "duration_ms", elapsed.Milliseconds())
	return &core.GenerationResult{
		Success:        true,
		BlogPost:       post,
		GenerationTime: elapsed.Milliseconds(),
	}, nil
}

// GenerateWithArtifacts also renders the DOCX and HTML files.
func (s *Service) GenerateWithArtifacts(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error) {
	result, err := s.Generate(ctx, req)
	if err != nil || !result.Success {
		return result, err
	}

	if err := render.Ensure(result.BlogPost); err != nil {
		s.log.Error("Error creating documents", "error", err)
		result.Success = false
		result.Error = "Failed to create documents: " + err.Error()
	}
	return result, nil
}

// GenerateAndSave writes the post as JSON to the store.
func (s *Service) GenerateAndSave(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error) {
	result, err := s.Generate(ctx, req)
	if err != nil || !result.Success {
		return result, err
	}

	path, err := s.Save(result.BlogPost)
	if err != nil {
		s.log.Error("Error saving blog", "error", err)
		result.Success = false
		result.Error = "Failed to save blog: " + err.Error()
		return result, nil
	}
	result.SavedTo = path
	s.log.Info("Blog saved", "path", path)
	return result, nil
}

// Save persists an already generated post and returns where it went.
func (s *Service) Save(post *core.GeneratedPost) (string, error) {
	if s.deps.Store == nil {
		return "", errors.New("no store configured")
	}
	return s.deps.Store.Save(post)
}

// GenerateAndEmail renders the artifacts and mails them to the team.
func (s *Service) GenerateAndEmail(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error) {
	result, err := s.GenerateWithArtifacts(ctx, req)
	if err != nil || !result.Success {
		return result, err
	}

	if err := s.sendPost(ctx, result.BlogPost); err != nil {
		result.Success = false
		result.Error = "Blog generated but failed to send email: " + err.Error()
		return result, nil
	}
	s.log.Info("Blog generated and emailed successfully", "title", result.BlogPost.Title)
	return result, nil
}

// TrendingRequest is the request used for posts on trending topics.
func TrendingRequest(t core.Topic) core.GenerationRequest {
	return core.GenerationRequest{
		Topic:                 t.Title,
		Keywords:              t.Keywords,
		TargetWordCount:       core.DefaultTargetWordCount,
		Tone:                  core.ToneProfessional,
		IncludeRegulatoryInfo: true,
	}
}

// GenerateFromTrending writes a post on a randomly chosen trending topic.
func (s *Service) GenerateFromTrending(ctx context.Context) *core.GenerationResult {
	topic := s.deps.Research.Random(ctx)
	s.log.Info("Selected trending topic", "title", topic.Title)

	result, err := s.Generate(ctx, TrendingRequest(topic))
	if err != nil {
		return core.Failed(err.Error(), 0)
	}
	return result
}

// GenerateTrending writes count posts on trending topics, running at most
// BatchConcurrency generations at once. Failed posts are dropped; the rest
// keep their start order.
func (s *Service) GenerateTrending(ctx context.Context, count int) ([]*core.GeneratedPost, error) {
	if count < 1 || count > MaxTrendingCount {
		return nil, apperr.NewValidationError("count", fmt.Sprintf("must be between 1 and %d, got %d", MaxTrendingCount, count))
	}

	results := make([]*core.GeneratedPost, count)
	var g errgroup.Group
	g.SetLimit(s.opts.BatchConcurrency)
	for i := range count {
		g.Go(func() error {
			result := s.GenerateFromTrending(ctx)
			if result.Success && result.BlogPost != nil {
				results[i] = result.BlogPost
			} else {
				s.log.Warn("Trending post generation failed", "index", i, "error", result.Error)
			}
			return nil
		})
	}
	_ = g.Wait()

	posts := make([]*core.GeneratedPost, 0, count)
	for _, p := range results {
		if p != nil {
			posts = append(posts, p)
		}
	}
	s.log.Info("Trending batch generated", "requested", count, "generated", len(posts))
	return posts, nil
}

// Links returns the current link catalog and restarts load-more paging
// from it.
func (s *Service) Links(ctx context.Context) core.Catalog {
	c := s.deps.Links.Build(ctx)
	s.more.Reset(c.All())
	return c
}

// LoadMoreBlogs returns blog links from a later listing page, leaving out
// links already returned by Links or an earlier page.
func (s *Service) LoadMoreBlogs(ctx context.Context, page int) ([]core.Link, error) {
	return s.more.LoadPage(ctx, page)
}

// WalkBlogs collects the distinct blog links on pages start..end.
func (s *Service) WalkBlogs(ctx context.Context, start, end int) ([]core.Link, error) {
	return catalog.NewSession(s.deps.Links, s.opts.PageDelay, s.log).Walk(ctx, start, end)
}

func (s *Service) TrendingTopics(ctx context.Context) []core.Topic {
	return s.deps.Research.Trending(ctx)
}

func (s *Service) RandomTopic(ctx context.Context) core.Topic {
	return s.deps.Research.Random(ctx)
}

// SuggestedTopics asks the model for topic ideas.
func (s *Service) SuggestedTopics(ctx context.Context) []core.Topic {
	return s.deps.Generator.SuggestTopics(ctx)
}

// AvailableTopics is the configured editorial topic list.
func (s *Service) AvailableTopics() []string {
	return append([]string(nil), s.opts.Topics...)
}

// RunDaily generates one trending post and mails it.
func (s *Service) RunDaily(ctx context.Context) error {
	s.log.Info("Starting daily blog generation")

	result := s.GenerateFromTrending(ctx)
	if !result.Success || result.BlogPost == nil {
		s.log.Warn("Daily blog generation failed", "error", result.Error)
		return fmt.Errorf("daily generation failed: %s", result.Error)
	}
	if err := render.Ensure(result.BlogPost); err != nil {
		return fmt.Errorf("failed to create documents: %w", err)
	}
	if err := s.sendPost(ctx, result.BlogPost); err != nil {
		return fmt.Errorf("failed to send daily blog email: %w", err)
	}

	s.log.Info("Daily blog generation and email completed", "title", result.BlogPost.Title)
	return nil
}

// RunWeekly generates the weekly batch and mails it as one digest. It
// returns how many posts were sent.
func (s *Service) RunWeekly(ctx context.Context) (int, error) {
	s.log.Info("Starting weekly blog generation", "count", s.opts.WeeklyCount)

	posts, err := s.GenerateTrending(ctx, s.opts.WeeklyCount)
	if err != nil {
		return 0, err
	}
	if len(posts) == 0 {
		s.log.Warn("No blogs were generated for weekly digest")
		return 0, errors.New("no blogs were generated for weekly digest")
	}
	for _, p := range posts {
		if err := render.Ensure(p); err != nil {
			return 0, fmt.Errorf("failed to create documents for %q: %w", p.Title, err)
		}
	}

	if s.deps.Mail == nil {
		return 0, errors.New("failed to send weekly digest email: no mailer configured")
	}
	if err := s.deps.Mail.SendDigest(ctx, posts); err != nil {
		s.log.Error("Failed to send weekly digest email", "error", err)
		return 0, fmt.Errorf("failed to send weekly digest email: %w", err)
	}

	s.log.Info("Weekly blog generation completed", "posts", len(posts))
	return len(posts), nil
}

func (s *Service) sendPost(ctx context.Context, post *core.GeneratedPost) error {
	if s.deps.Mail == nil {
		s.log.Error("No mailer configured", "title", post.Title)
		return errors.New("no mailer configured")
	}
	return s.deps.Mail.SendPost(ctx, post)
}
