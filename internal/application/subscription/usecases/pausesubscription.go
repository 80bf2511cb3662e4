package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type PauseSubscriptionCommand struct {
	SID          string
	Reason       string
	AutoResumeAt *time.Time
	Actor        Actor
}

type PauseSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	settingsRepo     settings.Repository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewPauseSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	settingsRepo settings.Repository,
	publisher events.Publisher,
	logger logger.Interface,
) *PauseSubscriptionUseCase {
	return &PauseSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		settingsRepo:     settingsRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *PauseSubscriptionUseCase) Execute(ctx context.Context, cmd PauseSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load tenant settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if cmd.Actor.Type == subscription.ActorCustomer && !cfg.AllowCustomerPause {
		return nil, errors.NewForbiddenError("customer-initiated pause is disabled for this store")
	}

	resumeAt := cmd.AutoResumeAt
	if resumeAt != nil && cfg.MaxPauseDays > 0 {
		// Clamp the resume date to the store's pause window instead of
		// rejecting the request.
		limit := time.Now().UTC().AddDate(0, 0, cfg.MaxPauseDays)
		if resumeAt.After(limit) {
			resumeAt = &limit
		}
	}

	sub.Pause(cmd.Reason, resumeAt)

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypePaused, cmd.Reason, cmd.Actor, nil)

	uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventPaused, sub, cmd.Reason))

	uc.logger.Infow("subscription paused",
		"sid", sub.SID(),
		"reason", cmd.Reason,
		"auto_resume_at", resumeAt,
	)

	return dto.ToSubscriptionDTO(sub), nil
}
