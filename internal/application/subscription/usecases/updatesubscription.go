package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type UpdateFrequencyCommand struct {
	SID       string
	Frequency string
	Interval  int
	Actor     Actor
}

type UpdateQuantityCommand struct {
	SID      string
	Quantity int
	Actor    Actor
}

type UpdatePricingCommand struct {
	SID           string
	PriceCents    int64
	DiscountCents int64
	Actor         Actor
}

type UpdatePaymentCardCommand struct {
	SID      string
	Last4    string
	Brand    string
	ExpMonth int
	ExpYear  int
	Actor    Actor
}

// UpdateSubscriptionUseCase groups the field-level mutations that share the
// same load-mutate-update-audit shape.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		logger:           logger,
	}
}

// UpdateFrequency changes the billing cadence. The next billing date is left
// untouched; recomputation is the validation engine's opt-in auto-fix.
func (uc *UpdateSubscriptionUseCase) UpdateFrequency(ctx context.Context, cmd UpdateFrequencyCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.load(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	frequency, err := vo.ParseFrequency(cmd.Frequency)
	if err != nil {
		return nil, err
	}

	previous := fmt.Sprintf("%s/%d", sub.Frequency(), sub.FrequencyInterval())
	if err := sub.UpdateFrequency(frequency, cmd.Interval); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypeFrequencyChanged,
		fmt.Sprintf("cadence changed from %s to %s/%d", previous, frequency, cmd.Interval),
		cmd.Actor, nil)

	uc.logger.Infow("subscription frequency updated",
		"sid", sub.SID(), "frequency", frequency, "interval", cmd.Interval)

	return dto.ToSubscriptionDTO(sub), nil
}

func (uc *UpdateSubscriptionUseCase) UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.load(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	previous := sub.Quantity()
	if err := sub.UpdateQuantity(cmd.Quantity); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypeQuantityChanged,
		fmt.Sprintf("quantity changed from %d to %d", previous, cmd.Quantity),
		cmd.Actor, nil)

	return dto.ToSubscriptionDTO(sub), nil
}

func (uc *UpdateSubscriptionUseCase) UpdatePricing(ctx context.Context, cmd UpdatePricingCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.load(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	if err := sub.UpdatePricing(cmd.PriceCents, cmd.DiscountCents); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypePricingChanged,
		fmt.Sprintf("pricing set to %d cents with %d cents discount", cmd.PriceCents, cmd.DiscountCents),
		cmd.Actor, nil)

	return dto.ToSubscriptionDTO(sub), nil
}

func (uc *UpdateSubscriptionUseCase) UpdatePaymentCard(ctx context.Context, cmd UpdatePaymentCardCommand) (*dto.SubscriptionDTO, error) {
	sub, err := uc.load(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	sub.UpdatePaymentCard(vo.PaymentCard{
		Last4:    cmd.Last4,
		Brand:    cmd.Brand,
		ExpMonth: cmd.ExpMonth,
		ExpYear:  cmd.ExpYear,
	})

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	appendActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypePaymentUpdated,
		fmt.Sprintf("payment card updated (%s ending %s)", cmd.Brand, cmd.Last4),
		cmd.Actor, nil)

	return dto.ToSubscriptionDTO(sub), nil
}

func (uc *UpdateSubscriptionUseCase) load(ctx context.Context, sid string) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	return sub, nil
}
