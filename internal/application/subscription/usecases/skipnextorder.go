package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type SkipNextOrderCommand struct {
	SID   string
	Actor Actor
}

type SkipNextOrderResult struct {
	Subscription  *dto.SubscriptionDTO `json:"subscription"`
	OrdersSkipped int64                `json:"orders_skipped"`
}

type SkipNextOrderUseCase struct {
	subscriptionRepo subscription.Repository
	orderRepo        subscription.OrderRepository
	activityRepo     subscription.ActivityRepository
	settingsRepo     settings.Repository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewSkipNextOrderUseCase(
	subscriptionRepo subscription.Repository,
	orderRepo subscription.OrderRepository,
	activityRepo subscription.ActivityRepository,
	settingsRepo settings.Repository,
	publisher events.Publisher,
	logger logger.Interface,
) *SkipNextOrderUseCase {
	return &SkipNextOrderUseCase{
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		activityRepo:     activityRepo,
		settingsRepo:     settingsRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// Execute skips the earliest scheduled order for the subscription. When
// several orders share the earliest scheduled time they are all skipped in
// one statement; the skipped-orders counter records one skip operation, not
// one per row.
func (uc *SkipNextOrderUseCase) Execute(ctx context.Context, cmd SkipNextOrderCommand) (*SkipNextOrderResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	if cmd.Actor.Type == subscription.ActorCustomer {
		cfg, err := uc.settingsRepo.Get(ctx)
		if err != nil {
			uc.logger.Errorw("failed to load tenant settings", "error", err)
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		if !cfg.AllowCustomerSkip {
			return nil, errors.NewForbiddenError("customer-initiated skip is disabled for this store")
		}
	}

	rows, err := uc.orderRepo.SkipEarliestScheduled(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to skip scheduled order", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to skip scheduled order: %w", err)
	}
	if rows == 0 {
		return nil, errors.NewConflictError("no scheduled orders to skip")
	}

	sub.RecordSkip()
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypeOrderSkipped,
		fmt.Sprintf("%d scheduled order(s) skipped", rows), cmd.Actor,
		map[string]interface{}{"orders_skipped": rows})

	uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventOrderSkipped, sub, ""))

	uc.logger.Infow("next order skipped",
		"sid", sub.SID(),
		"orders_skipped", rows,
	)

	return &SkipNextOrderResult{
		Subscription:  dto.ToSubscriptionDTO(sub),
		OrdersSkipped: rows,
	}, nil
}
