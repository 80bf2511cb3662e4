package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/saveflow/dto"
	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// AttemptQueryUseCase serves read-only attempt views.
type AttemptQueryUseCase struct {
	flowRepo         saveflow.Repository
	attemptRepo      saveflow.AttemptRepository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewAttemptQueryUseCase(
	flowRepo saveflow.Repository,
	attemptRepo saveflow.AttemptRepository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *AttemptQueryUseCase {
	return &AttemptQueryUseCase{
		flowRepo:         flowRepo,
		attemptRepo:      attemptRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *AttemptQueryUseCase) ListByFlow(ctx context.Context, flowSID string) ([]*dto.AttemptDTO, error) {
	flow, err := uc.flowRepo.GetBySID(ctx, flowSID)
	if err != nil {
		uc.logger.Errorw("failed to get save flow", "error", err, "sid", flowSID)
		return nil, fmt.Errorf("failed to get save flow: %w", err)
	}
	if flow == nil {
		return nil, errors.NewNotFoundError("save flow not found")
	}

	attempts, err := uc.attemptRepo.ListByFlow(ctx, flow.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attempts", "error", err, "flow_sid", flowSID)
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return dto.ToAttemptDTOs(attempts), nil
}

func (uc *AttemptQueryUseCase) ListBySubscription(ctx context.Context, subscriptionSID string) ([]*dto.AttemptDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, subscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", subscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	attempts, err := uc.attemptRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attempts", "error", err, "subscription_sid", subscriptionSID)
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return dto.ToAttemptDTOs(attempts), nil
}
