package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"autoblog/internal/config"
	"autoblog/internal/core"
	"autoblog/internal/logger"
	"autoblog/internal/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const defaultRequestTimeout = 10 * time.Minute

// BlogService is the generation surface the handlers call.
type BlogService interface {
	Generate(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error)
	GenerateWithArtifacts(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error)
	GenerateAndSave(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error)
	GenerateAndEmail(ctx context.Context, req core.GenerationRequest) (*core.GenerationResult, error)
	GenerateFromTrending(ctx context.Context) *core.GenerationResult
	GenerateTrending(ctx context.Context, count int) ([]*core.GeneratedPost, error)
	Links(ctx context.Context) core.Catalog
	LoadMoreBlogs(ctx context.Context, page int) ([]core.Link, error)
	TrendingTopics(ctx context.Context) []core.Topic
	RandomTopic(ctx context.Context) core.Topic
	SuggestedTopics(ctx context.Context) []core.Topic
	AvailableTopics() []string
}

// Scheduler is the trigger and status surface of the job scheduler.
type Scheduler interface {
	TriggerDaily(ctx context.Context) scheduler.TriggerResult
	TriggerWeekly(ctx context.Context) scheduler.TriggerResult
	Status() scheduler.Status
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	blogs      BlogService
	sched      Scheduler
	config     config.Server
	log        *slog.Logger
}

// New creates a new HTTP server instance. sched may be nil, in which case
// the scheduler routes answer 503.
func New(blogs BlogService, sched Scheduler, cfg config.Server, log *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		blogs:  blogs,
		sched:  sched,
		config: cfg,
		log:    logger.OrDefault(log),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	s.router.Use(middleware.Timeout(timeout))
	s.router.Use(securityHeaders)

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

func (s *Server) setupRoutes() {
	s.router.Route("/blog-generator", func(r chi.Router) {
		r.Post("/generate", s.generationHandler(s.blogs.Generate))
		r.Post("/generate-docx", s.handleGenerateDOCX)
		r.Post("/download-docx", s.handleDownloadDOCX)
		r.Post("/download-html", s.handleDownloadHTML)
		r.Post("/generate-and-save", s.generationHandler(s.blogs.GenerateAndSave))
		r.Post("/generate-and-email", s.generationHandler(s.blogs.GenerateAndEmail))
		r.Post("/generate-trending", s.handleGenerateTrending)
		r.Post("/generate-trending-weekly", s.handleGenerateTrendingBatch)

		r.Get("/topics", s.handleTopics)
		r.Get("/suggested-topics", s.handleSuggestedTopics)
		r.Get("/separated-links", s.handleSeparatedLinks)
		r.Get("/load-more-blogs/{page}", s.handleLoadMoreBlogs)
		r.With(noCache).Get("/health", s.handleHealth)
	})

	s.router.Route("/topic-research", func(r chi.Router) {
		r.Get("/trending", s.handleTrendingTopics)
		r.Get("/random", s.handleRandomTopic)
	})

	s.router.Route("/scheduler", func(r chi.Router) {
		r.Post("/trigger-weekly", s.handleTriggerWeekly)
		r.Post("/trigger-daily", s.handleTriggerDaily)
		r.With(noCache).Get("/status", s.handleSchedulerStatus)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
