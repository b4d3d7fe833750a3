package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"autoblog/internal/config"
	"autoblog/internal/logger"
	"autoblog/internal/pipeline"
	"autoblog/internal/scheduler"
	"autoblog/internal/server"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port   int
		host   string
		noCron bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the email scheduler",
		Long: `Start the autoblog web service.

The server provides:
  • Blog generation, export and email endpoints under /blog-generator
  • Trending topic research under /topic-research
  • Scheduler triggers and status under /scheduler

Unless --no-scheduler is set, the daily and weekly jobs run on the
marketing.daily_schedule and marketing.weekly_schedule cron expressions.

Examples:
  # Start server on the configured port (default 3000)
  autoblog serve

  # Start on a custom port without scheduled jobs
  autoblog serve --port 8080 --no-scheduler`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host, noCron)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 3000)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().BoolVar(&noCron, "no-scheduler", false, "do not run the daily and weekly jobs")

	return cmd
}

func runServe(ctx context.Context, port int, host string, noCron bool) error {
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	svc, err := pipeline.NewBuilder(cfg).WithLogger(log).Build(ctx)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(svc, cfg.Marketing.DailySchedule, cfg.Marketing.WeeklySchedule, log)
	if err != nil {
		return err
	}
	if !noCron {
		sched.Start()
	}

	srv := server.New(svc, sched, serverCfg, log)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s:%d", serverCfg.Host, serverCfg.Port))
		log.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		sched.Stop(context.Background())
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()

		sched.Stop(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed, forcing close", "error", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Info("Server stopped successfully")
	}

	return nil
}
