package usecases

import (
	"context"
	"fmt"

	subdto "github.com/retain-hq/retain/internal/application/subscription/dto"
	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type ApplyPlanCommand struct {
	PlanSID         string
	SubscriptionSID string
}

// ApplyPlanUseCase attaches a selling plan to a subscription: the plan's
// cadence and discount overwrite the subscription's, and the plan name is
// denormalized onto the row.
type ApplyPlanUseCase struct {
	planRepo         sellingplan.Repository
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	logger           logger.Interface
}

func NewApplyPlanUseCase(
	planRepo sellingplan.Repository,
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	logger logger.Interface,
) *ApplyPlanUseCase {
	return &ApplyPlanUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		logger:           logger,
	}
}

func (uc *ApplyPlanUseCase) Execute(ctx context.Context, cmd ApplyPlanCommand) (*subdto.SubscriptionDTO, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get selling plan", "error", err, "sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get selling plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("selling plan not found")
	}
	if !plan.Enabled() {
		return nil, errors.NewConflictError("selling plan is disabled")
	}

	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	if err := sub.UpdateFrequency(plan.Frequency(), plan.FrequencyInterval()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	discounted := sellingplan.CalculateDiscountedPrice(sub.PriceCents(), plan.DiscountType(), plan.DiscountValue())
	if discounted > sub.PriceCents() {
		// A price override above the current price becomes the new base
		// price with no discount.
		err = sub.UpdatePricing(discounted, 0)
	} else {
		err = sub.UpdatePricing(sub.PriceCents(), sub.PriceCents()-discounted)
	}
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	sub.AttachSellingPlan(plan.ID(), plan.Name())

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	activity, err := subscription.NewActivity(sub.TenantID(), sub.ID(),
		subscription.ActivityTypePricingChanged,
		fmt.Sprintf("selling plan %q applied", plan.Name()),
		subscription.ActorAdmin)
	if err == nil {
		activity.AddMetadata("plan_sid", plan.SID())
		if err := uc.activityRepo.Append(ctx, activity); err != nil {
			uc.logger.Errorw("failed to append activity", "error", err, "sid", cmd.SubscriptionSID)
		}
	}

	uc.logger.Infow("selling plan applied",
		"plan_sid", plan.SID(),
		"subscription_sid", sub.SID())

	return subdto.ToSubscriptionDTO(sub), nil
}
