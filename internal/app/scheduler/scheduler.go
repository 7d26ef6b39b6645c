// Package scheduler runs jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job は1回分の処理です。
type Job func(ctx context.Context) error

// Scheduler manages cron jobs. Specs use six fields (with seconds).
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	timeout time.Duration
}

// New creates a Scheduler. Each run gets a context derived from ctx with the given timeout.
func New(ctx context.Context, loc *time.Location, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		// 前回の実行が終わっていなければ次回をスキップする
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:     ctx,
		timeout: timeout,
	}
}

// Register adds job under spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	slog.Info("job registered", "job", name, "spec", spec)
	return nil
}

// RunNow executes job synchronously, outside the schedule.
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	err := job(ctx)
	if err != nil {
		slog.Error("job failed", "job", name, "error", err, "elapsed", time.Since(start))
		return err
	}
	slog.Info("job finished", "job", name, "elapsed", time.Since(start))
	return nil
}

// Start starts the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop stops scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}
