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

type CancelSubscriptionCommand struct {
	SID    string
	Reason string
	Actor  Actor
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	orderRepo        subscription.OrderRepository
	activityRepo     subscription.ActivityRepository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	orderRepo subscription.OrderRepository,
	activityRepo subscription.ActivityRepository,
	publisher events.Publisher,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		activityRepo:     activityRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	sub.Cancel(cmd.Reason)

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	// Cancelling leaves no live order rows behind. A failure here is
	// repaired later by the cancelled_with_pending_orders check.
	skipped, err := uc.orderRepo.SkipAllScheduled(ctx, sub.ID())
	if err != nil {
		uc.logger.Warnw("failed to skip scheduled orders on cancel",
			"error", err, "sid", cmd.SID)
	} else if skipped > 0 {
		uc.logger.Infow("scheduled orders skipped on cancel",
			"sid", cmd.SID, "count", skipped)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypeCancelled, cmd.Reason, cmd.Actor, nil)

	uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventCancelled, sub, cmd.Reason))

	uc.logger.Infow("subscription cancelled",
		"sid", sub.SID(),
		"reason", cmd.Reason,
	)

	return dto.ToSubscriptionDTO(sub), nil
}
