package worker

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	notificationUC "github.com/retain-hq/retain/internal/application/notification/usecases"
	saveflowUC "github.com/retain-hq/retain/internal/application/saveflow/usecases"
	subscriptionUC "github.com/retain-hq/retain/internal/application/subscription/usecases"
	validationUC "github.com/retain-hq/retain/internal/application/validation/usecases"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/infrastructure/config"
	"github.com/retain-hq/retain/internal/infrastructure/database"
	"github.com/retain-hq/retain/internal/infrastructure/email"
	"github.com/retain-hq/retain/internal/infrastructure/repository"
	"github.com/retain-hq/retain/internal/infrastructure/scheduler"
	"github.com/retain-hq/retain/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Start the background maintenance worker",
		Long: `Start the scheduler that runs auto-resume, save-attempt expiry,
email delivery and the nightly validation sweep across all active tenants.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting maintenance worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		return err
	}
	defer database.Close()

	gormDB := database.Get()
	tenantRepo := repository.NewTenantRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	orderRepo := repository.NewOrderRepository(gormDB, log)
	activityRepo := repository.NewActivityRepository(gormDB, log)
	settingsRepo := repository.NewSettingsRepository(gormDB, log)
	attemptRepo := repository.NewSaveAttemptRepository(gormDB, log)
	runRepo := repository.NewValidationRunRepository(gormDB, log)
	issueRepo := repository.NewValidationIssueRepository(gormDB, log)

	dispatcher := events.NewDispatcher(log)

	autoResumeJob := subscriptionUC.NewAutoResumeUseCase(tenantRepo, subscriptionRepo, activityRepo, dispatcher, log)
	attemptExpiryJob := saveflowUC.NewExpireAttemptsUseCase(tenantRepo, attemptRepo, cfg.Retention.AttemptExpiryHours, log)
	emailDrainJob := notificationUC.NewDrainEmailsUseCase(
		email.NewQueue(gormDB, log),
		email.NewSender(&cfg.Email),
		notificationUC.DefaultDrainBatchSize,
		log,
	)

	runUC := validationUC.NewRunValidationUseCase(runRepo, issueRepo, subscriptionRepo, orderRepo, settingsRepo, log)
	sweepJob := validationUC.NewSweepUseCase(tenantRepo, runUC, log)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := manager.RegisterRetentionJobs(autoResumeJob, attemptExpiryJob, emailDrainJob, cfg.Worker.AutoResumeIntervalMinutes); err != nil {
		return fmt.Errorf("failed to register retention jobs: %w", err)
	}
	if err := manager.RegisterValidationJobs(sweepJob, cfg.Worker.ValidationIntervalHours); err != nil {
		return fmt.Errorf("failed to register validation jobs: %w", err)
	}

	manager.Start()
	log.Infow("worker started",
		"retention_interval_minutes", cfg.Worker.AutoResumeIntervalMinutes,
		"validation_interval_hours", cfg.Worker.ValidationIntervalHours)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down worker")
	if err := manager.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
		return err
	}

	log.Infow("worker exited gracefully")
	return nil
}
