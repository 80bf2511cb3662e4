// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/retain-hq/retain/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2. A single
// scheduler instance carries the retention, validation and email workers
// so lifecycle handling lives in one place.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// All job timing is UTC; persisted timestamps are UTC throughout.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterRetentionJobs registers the short-interval maintenance jobs:
// - Resume paused subscriptions whose auto-resume date has passed
// - Expire pending save attempts older than the configured window
// - Drain the email outbox
func (m *SchedulerManager) RegisterRetentionJobs(
	autoResumeJob BatchJob,
	attemptExpiryJob BatchJob,
	emailDrainJob BatchJob,
	intervalMinutes int,
) error {
	if intervalMinutes <= 0 {
		intervalMinutes = 15
	}
	interval := time.Duration(intervalMinutes) * time.Minute

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.processRetentionTasks(ctx, autoResumeJob, attemptExpiryJob, emailDrainJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("retention", "auto-resume", "attempt-expiry", "email-drain"),
		gocron.WithName("retention-processor"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered retention jobs", "interval", interval)
	return nil
}

func (m *SchedulerManager) processRetentionTasks(
	ctx context.Context,
	autoResumeJob BatchJob,
	attemptExpiryJob BatchJob,
	emailDrainJob BatchJob,
) {
	m.logger.Debugw("processing retention tasks started")

	startTime := time.Now()

	// Step 1: Resume paused subscriptions that reached their auto-resume date
	resumedCount, err := autoResumeJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to process auto-resumes",
			"error", err,
			"duration", time.Since(startTime),
		)
	} else if resumedCount > 0 {
		m.logger.Infow("auto-resumed subscriptions processed",
			"count", resumedCount,
			"duration", time.Since(startTime),
		)
	}

	// Step 2: Expire stale pending save attempts
	expiredCount, err := attemptExpiryJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to expire pending save attempts",
			"error", err,
		)
	} else if expiredCount > 0 {
		m.logger.Infow("pending save attempts expired",
			"count", expiredCount,
		)
	}

	// Step 3: Drain queued emails
	if emailDrainJob != nil {
		sentCount, err := emailDrainJob.Execute(ctx)
		if err != nil {
			m.logger.Errorw("failed to drain email queue",
				"error", err,
			)
		} else if sentCount > 0 {
			m.logger.Infow("queued emails sent",
				"count", sentCount,
			)
		}
	}
}

// RegisterValidationJobs registers the periodic data-integrity sweep.
// The sweep walks every active tenant and runs the full check battery.
func (m *SchedulerManager) RegisterValidationJobs(
	validationSweepJob BatchJob,
	intervalHours int,
) error {
	if intervalHours <= 0 {
		intervalHours = 24
	}
	interval := time.Duration(intervalHours) * time.Hour

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			m.processValidationSweep(ctx, validationSweepJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("validation", "integrity-sweep"),
		gocron.WithName("validation-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered validation jobs", "interval", interval)
	return nil
}

func (m *SchedulerManager) processValidationSweep(ctx context.Context, sweepJob BatchJob) {
	m.logger.Debugw("validation sweep started")

	startTime := time.Now()

	tenantCount, err := sweepJob.Execute(ctx)
	if err != nil {
		// Context cancellation during shutdown is not worth alerting on
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("validation sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("validation sweep completed",
		"tenants", tenantCount,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
