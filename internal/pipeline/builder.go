package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"autoblog/internal/blog"
	"autoblog/internal/catalog"
	"autoblog/internal/config"
	"autoblog/internal/email"
	"autoblog/internal/fetch"
	"autoblog/internal/llm"
	"autoblog/internal/logger"
	"autoblog/internal/store"
	"autoblog/internal/topics"
)

// Builder assembles a Service from configuration. Collaborators set with
// the With methods replace the ones built from config.
type Builder struct {
	cfg    *config.Config
	model  topics.Completer
	mailer email.Mailer
	links  catalog.Source
	topics []topics.Source
	picker *topics.Picker
	log    *slog.Logger
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// WithModel sets the language model client.
func (b *Builder) WithModel(m topics.Completer) *Builder {
	b.model = m
	return b
}

// WithMailer sets the mail transport.
func (b *Builder) WithMailer(m email.Mailer) *Builder {
	b.mailer = m
	return b
}

// WithLinks sets the link catalog source.
func (b *Builder) WithLinks(src catalog.Source) *Builder {
	b.links = src
	return b
}

// WithTopicSources sets the headline sources for trending research.
func (b *Builder) WithTopicSources(sources ...topics.Source) *Builder {
	b.topics = sources
	return b
}

// WithPicker sets the topic picker.
func (b *Builder) WithPicker(p *topics.Picker) *Builder {
	b.picker = p
	return b
}

func (b *Builder) WithLogger(log *slog.Logger) *Builder {
	b.log = log
	return b
}

// Build constructs the Service. The model client is created on its first
// call, so operations that never prompt the model work without credentials.
func (b *Builder) Build(ctx context.Context) (*Service, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	cfg := b.cfg
	log := logger.OrDefault(b.log)

	fetcher := fetch.New(cfg.Scraper.Timeout, cfg.Scraper.UserAgent)

	model := b.model
	if model == nil {
		lazy := llm.NewLazy(llm.Settings{
			Provider:    cfg.LLM.Provider,
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
		})
		log.Info("Configured LLM", "client", lazy.Name())
		model = lazy
	}

	links := b.links
	if links == nil {
		links = catalog.NewBuilder(fetcher, catalog.Options{
			SiteURL:      cfg.Scraper.SiteURL,
			ResourcesURL: cfg.Scraper.ResourcesURL,
			BlogURL:      cfg.Scraper.BlogURL,
			PageDelay:    cfg.Scraper.PageDelay,
		}, log)
	}

	sources := b.topics
	if sources == nil {
		for _, s := range cfg.Topics.Sources {
			sources = append(sources, topics.HTMLSource{URL: s.URL, Selector: s.Selector, Docs: fetcher})
		}
		for _, feed := range cfg.Topics.Feeds {
			sources = append(sources, topics.NewFeedSource(feed, cfg.Scraper.Timeout, cfg.Scraper.UserAgent))
		}
	}
	research := topics.NewResearcher(sources, b.picker, log)
	if cfg.Topics.CuratedFile != "" {
		curated, err := topics.LoadCurated(cfg.Topics.CuratedFile)
		if err != nil {
			return nil, err
		}
		research.WithCurated(curated)
		log.Info("Loaded curated topics", "file", cfg.Topics.CuratedFile, "topics", len(curated))
	}

	mailer := b.mailer
	if mailer == nil && cfg.Email.Host != "" {
		smtp, err := email.NewSMTPMailer(email.SMTPSettings{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Secure:   cfg.Email.Secure,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
		})
		if err != nil {
			return nil, err
		}
		mailer = smtp
	}

	deps := Deps{
		Links:     links,
		Research:  research,
		Generator: blog.NewGenerator(model, log),
		Store:     store.NewFileStore(cfg.Storage.BlogsDir),
	}
	if mailer != nil {
		deps.Mail = email.NewService(mailer, cfg.Email.From, cfg.Marketing.TeamEmails, log)
	}

	return New(deps, Options{
		Topics:           cfg.Blog.Topics,
		BatchConcurrency: cfg.Generation.BatchConcurrency,
		WeeklyCount:      cfg.Marketing.WeeklyCount,
		PageDelay:        cfg.Scraper.PageDelay,
	}, log), nil
}
