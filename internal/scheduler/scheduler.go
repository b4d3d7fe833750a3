// Package scheduler runs the daily and weekly generation jobs on cron
// schedules and exposes manual triggers for them.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"autoblog/internal/logger"

	"github.com/robfig/cron/v3"
)

const (
	DefaultDaily  = "0 9 * * *"
	DefaultWeekly = "0 9 * * 1"
)

// Parser accepts five-field expressions and descriptors such as @weekly.
var Parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Runner performs the scheduled work.
type Runner interface {
	RunDaily(ctx context.Context) error
	RunWeekly(ctx context.Context) (int, error)
}

// TriggerResult is returned from manual triggers.
type TriggerResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RunRecord describes the last execution of a job.
type RunRecord struct {
	StartedAt time.Time `json:"startedAt"`
	Duration  string    `json:"duration"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
}

// JobStatus is the state of one job.
type JobStatus struct {
	Schedule string     `json:"schedule"`
	Next     *time.Time `json:"next,omitempty"`
	Last     *RunRecord `json:"last,omitempty"`
}

// Status reports whether the scheduler is running and where each job stands.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Daily     JobStatus `json:"daily"`
	Weekly    JobStatus `json:"weekly"`
}

type Scheduler struct {
	runner Runner
	cron   *cron.Cron
	daily  string
	weekly string
	log    *slog.Logger

	mu       sync.Mutex
	running  bool
	dailyID  cron.EntryID
	weeklyID cron.EntryID
	last     map[string]*RunRecord
}

// New validates both schedules and registers the jobs. Call Start to run them.
func New(runner Runner, daily, weekly string, log *slog.Logger) (*Scheduler, error) {
	if daily == "" {
		daily = DefaultDaily
	}
	if weekly == "" {
		weekly = DefaultWeekly
	}
	log = logger.OrDefault(log)

	cl := cronLogger{log: log}
	s := &Scheduler{
		runner: runner,
		cron: cron.New(
			cron.WithParser(Parser),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		daily:  daily,
		weekly: weekly,
		log:    log,
		last:   map[string]*RunRecord{},
	}

	var err error
	if s.dailyID, err = s.cron.AddFunc(daily, func() { s.runDaily(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid daily schedule %q: %w", daily, err)
	}
	if s.weeklyID, err = s.cron.AddFunc(weekly, func() { s.runWeekly(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid weekly schedule %q: %w", weekly, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.log.Info("Scheduler started", "daily", s.daily, "weekly", s.weekly)
}

// Stop halts the cron loop and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.log.Info("Scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}
}

// TriggerDaily runs the daily job now and waits for it.
func (s *Scheduler) TriggerDaily(ctx context.Context) TriggerResult {
	s.log.Info("Manually triggering daily blog generation")
	if rec := s.runDaily(ctx); !rec.Success {
		return TriggerResult{Success: false, Message: "Daily generation failed: " + rec.Message}
	}
	return TriggerResult{Success: true, Message: "Daily blog generation completed successfully"}
}

// TriggerWeekly runs the weekly job now and waits for it.
func (s *Scheduler) TriggerWeekly(ctx context.Context) TriggerResult {
	s.log.Info("Manually triggering weekly blog generation")
	if rec := s.runWeekly(ctx); !rec.Success {
		return TriggerResult{Success: false, Message: "Weekly generation failed: " + rec.Message}
	}
	return TriggerResult{Success: true, Message: "Weekly blog generation completed successfully"}
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Status:    "stopped",
		Timestamp: time.Now().UTC(),
		Message:   "Scheduler is not running; manual triggers are available",
		Daily:     s.jobStatus(s.daily, s.dailyID, "daily"),
		Weekly:    s.jobStatus(s.weekly, s.weeklyID, "weekly"),
	}
	if s.running {
		st.Status = "active"
		st.Message = "Scheduler is running and monitoring for scheduled tasks"
	}
	return st
}

func (s *Scheduler) jobStatus(schedule string, id cron.EntryID, name string) JobStatus {
	js := JobStatus{Schedule: schedule}
	if s.running {
		if next := s.cron.Entry(id).Next; !next.IsZero() {
			js.Next = &next
		}
	}
	if rec, ok := s.last[name]; ok {
		copied := *rec
		js.Last = &copied
	}
	return js
}

func (s *Scheduler) runDaily(ctx context.Context) RunRecord {
	return s.record("daily", func() (string, error) {
		if err := s.runner.RunDaily(ctx); err != nil {
			return "", err
		}
		return "daily post sent", nil
	})
}

func (s *Scheduler) runWeekly(ctx context.Context) RunRecord {
	return s.record("weekly", func() (string, error) {
		n, err := s.runner.RunWeekly(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("weekly digest sent with %d posts", n), nil
	})
}

func (s *Scheduler) record(name string, job func() (string, error)) RunRecord {
	start := time.Now()
	msg, err := job()
	rec := RunRecord{StartedAt: start.UTC(), Duration: time.Since(start).Round(time.Millisecond).String(), Success: err == nil, Message: msg}
	if err != nil {
		rec.Message = err.Error()
		s.log.Error("Scheduled job failed", "job", name, "error", err)
	} else {
		s.log.Info("Scheduled job completed", "job", name, "message", msg, "duration", rec.Duration)
	}

	s.mu.Lock()
	s.last[name] = &rec
	s.mu.Unlock()
	return rec
}

// cronLogger adapts slog to cron's logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
