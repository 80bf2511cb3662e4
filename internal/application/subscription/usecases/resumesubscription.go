package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type ResumeSubscriptionCommand struct {
	SID   string
	Actor Actor
}

type ResumeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewResumeSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	publisher events.Publisher,
	logger logger.Interface,
) *ResumeSubscriptionUseCase {
	return &ResumeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *ResumeSubscriptionUseCase) Execute(ctx context.Context, cmd ResumeSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	previousStatus := sub.Status()

	// Resume is permissive: resuming a cancelled subscription reactivates it.
	sub.Resume()

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypeResumed, fmt.Sprintf("resumed from %s", previousStatus), cmd.Actor, nil)

	uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventResumed, sub, ""))

	uc.logger.Infow("subscription resumed",
		"sid", sub.SID(),
		"previous_status", previousStatus,
	)

	return dto.ToSubscriptionDTO(sub), nil
}
