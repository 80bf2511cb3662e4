package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	orderRepo        subscription.OrderRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	orderRepo subscription.OrderRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, sid string) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	return dto.ToSubscriptionDTO(sub), nil
}

// Orders returns the order rows for a subscription.
func (uc *GetSubscriptionUseCase) Orders(ctx context.Context, sid string) ([]*dto.OrderDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	orders, err := uc.orderRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return dto.ToOrderDTOs(orders), nil
}
