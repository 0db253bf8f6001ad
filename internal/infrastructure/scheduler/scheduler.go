package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/pkg/jobcontext"
)

// Job is one unit of background work
type Job func(ctx context.Context) error

// Scheduler runs maintenance jobs on cron schedules. Each run gets its own
// job context with a timeout, panic recovery and bounded retries.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a stopped scheduler. Overlapping runs of the same job are
// skipped.
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Register schedules job under spec, a 5-field cron expression or a
// descriptor such as "@daily".
func (s *Scheduler) Register(name, spec string, timeout time.Duration, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(context.Background(), name, timeout, job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.logger.Info("⏰ Job scheduled", zap.String("job", name), zap.String("schedule", spec))
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(parent context.Context, name string, timeout time.Duration, job Job) error {
	ctx, cancel := jobcontext.JobBegin(parent, name, timeout)
	defer cancel()

	meta := jobcontext.GetJobMetadata(ctx)
	err := jobcontext.JobEnd(ctx, job)
	fields := []zap.Field{
		zap.String("job", name),
		zap.String("job_id", meta.JobID.String()),
		zap.Duration("duration", time.Since(meta.StartTime)),
	}
	if err != nil {
		s.logger.Error("❌ Job failed", append(fields, zap.Error(err))...)
		return err
	}
	s.logger.Info("✅ Job finished", fields...)
	return nil
}
