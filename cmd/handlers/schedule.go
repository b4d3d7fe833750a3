package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoblog/internal/config"
	"autoblog/internal/logger"
	"autoblog/internal/pipeline"
	"autoblog/internal/scheduler"

	"github.com/spf13/cobra"
)

// NewScheduleCmd creates the schedule command
func NewScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run or inspect the scheduled email jobs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "trigger [daily|weekly]",
		Short:     "Run a scheduled job now",
		Long:      "daily mails one trending post; weekly mails a digest of marketing.weekly_count posts.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"daily", "weekly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrigger(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the configured schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			for _, job := range []struct{ name, spec string }{
				{"daily", cfg.Marketing.DailySchedule},
				{"weekly", cfg.Marketing.WeeklySchedule},
			} {
				sched, err := scheduler.Parser.Parse(job.spec)
				if err != nil {
					return fmt.Errorf("invalid %s schedule %q: %w", job.name, job.spec, err)
				}
				fmt.Printf("%-7s %-14s next %s\n", job.name, job.spec, sched.Next(time.Now()).Format("Mon Jan 2 15:04"))
			}
			fmt.Println(mutedStyle.Render(fmt.Sprintf("recipients: %v", cfg.Marketing.TeamEmails)))
			return nil
		},
	})

	return cmd
}

func runTrigger(ctx context.Context, job string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	svc, err := pipeline.NewBuilder(cfg).WithLogger(logger.Get()).Build(ctx)
	if err != nil {
		return err
	}
	sched, err := scheduler.New(svc, cfg.Marketing.DailySchedule, cfg.Marketing.WeeklySchedule, logger.Get())
	if err != nil {
		return err
	}

	var result scheduler.TriggerResult
	switch job {
	case "daily":
		result = sched.TriggerDaily(ctx)
	case "weekly":
		result = sched.TriggerWeekly(ctx)
	default:
		return fmt.Errorf("unknown job %q (use daily or weekly)", job)
	}

	if !result.Success {
		fmt.Println(errStyle.Render("✗ " + result.Message))
		return errors.New(result.Message)
	}
	fmt.Println(okStyle.Render("✓ " + result.Message))
	return nil
}
