package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/retain-hq/retain/internal/application/saveflow/dto"
	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// CompleteAttemptCommand deliberately carries no revenue figure. Revenue
// saved is always derived server-side from the subscription's monthly
// equivalent at completion time; callers cannot supply their own valuation.
type CompleteAttemptCommand struct {
	AttemptSID string
	Outcome    saveflow.Outcome

	// AcceptedOfferIndex points into the flow's offer list when the outcome
	// is saved and an offer was taken. Nil means saved without an offer.
	AcceptedOfferIndex *int
	CancelReason       *string
}

// CompleteAttemptUseCase records the terminal state of a save attempt and,
// when the customer accepted an offer, applies that offer to the
// subscription.
type CompleteAttemptUseCase struct {
	flowRepo         saveflow.Repository
	attemptRepo      saveflow.AttemptRepository
	subscriptionRepo subscription.Repository
	orderRepo        subscription.OrderRepository
	activityRepo     subscription.ActivityRepository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewCompleteAttemptUseCase(
	flowRepo saveflow.Repository,
	attemptRepo saveflow.AttemptRepository,
	subscriptionRepo subscription.Repository,
	orderRepo subscription.OrderRepository,
	activityRepo subscription.ActivityRepository,
	publisher events.Publisher,
	logger logger.Interface,
) *CompleteAttemptUseCase {
	return &CompleteAttemptUseCase{
		flowRepo:         flowRepo,
		attemptRepo:      attemptRepo,
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		activityRepo:     activityRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *CompleteAttemptUseCase) Execute(ctx context.Context, cmd CompleteAttemptCommand) (*dto.AttemptDTO, error) {
	attempt, err := uc.attemptRepo.GetBySID(ctx, cmd.AttemptSID)
	if err != nil {
		uc.logger.Errorw("failed to get save attempt", "error", err, "sid", cmd.AttemptSID)
		return nil, fmt.Errorf("failed to get save attempt: %w", err)
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("save attempt not found")
	}
	if attempt.IsCompleted() {
		return nil, errors.NewConflictError("save attempt is already completed")
	}

	flow, err := uc.flowRepo.GetByID(ctx, attempt.FlowID())
	if err != nil {
		uc.logger.Errorw("failed to get save flow", "error", err, "flow_id", attempt.FlowID())
		return nil, fmt.Errorf("failed to get save flow: %w", err)
	}
	if flow == nil {
		return nil, errors.NewNotFoundError("save flow not found")
	}

	sub, err := uc.subscriptionRepo.GetByID(ctx, attempt.SubscriptionID())
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", attempt.SubscriptionID())
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	var offerLabel *string
	var revenueSaved int64
	if cmd.Outcome == saveflow.OutcomeSaved {
		// Revenue saved is the recurring charge kept on the books, valued at
		// its monthly equivalent.
		revenueSaved = int64(math.Round(sub.MonthlyEquivalentCents()))

		if cmd.AcceptedOfferIndex != nil {
			offer, err := offerAt(flow, *cmd.AcceptedOfferIndex)
			if err != nil {
				return nil, err
			}
			if err := uc.applyOffer(ctx, sub, offer); err != nil {
				return nil, err
			}
			label := offerLabelFor(offer, *cmd.AcceptedOfferIndex)
			offerLabel = &label
		}
	}

	if err := attempt.Complete(cmd.Outcome, offerLabel, cmd.CancelReason, revenueSaved); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.attemptRepo.Update(ctx, attempt); err != nil {
		uc.logger.Errorw("failed to update save attempt", "error", err, "sid", cmd.AttemptSID)
		return nil, fmt.Errorf("failed to update save attempt: %w", err)
	}

	if cmd.Outcome == saveflow.OutcomeSaved {
		if err := uc.flowRepo.IncrementSaved(ctx, attempt.FlowID(), revenueSaved); err != nil {
			uc.logger.Warnw("failed to increment saved counter", "error", err, "flow_id", attempt.FlowID())
		}

		description := "retained by save flow"
		if offerLabel != nil {
			description = fmt.Sprintf("retained by save flow, accepted offer %q", *offerLabel)
		}
		recordActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
			subscription.ActivityTypeSaved, description, subscription.ActorCustomer,
			map[string]interface{}{"attempt_sid": attempt.SID(), "revenue_saved_cents": revenueSaved})

		uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventSaved, sub, description))
	}

	uc.logger.Infow("save attempt completed",
		"sid", attempt.SID(),
		"outcome", string(attempt.Outcome()),
		"revenue_saved_cents", revenueSaved)

	return dto.ToAttemptDTO(attempt), nil
}

// applyOffer mutates the subscription according to the accepted offer.
// FreeShipping and Gift offers are fulfilled downstream at order time and do
// not change subscription state.
func (uc *CompleteAttemptUseCase) applyOffer(ctx context.Context, sub *subscription.Subscription, offer saveflow.Offer) error {
	switch offer.Type {
	case saveflow.OfferDiscount:
		discounted := sellingplan.CalculateDiscountedPrice(
			sub.PriceCents(), offer.Discount.DiscountType, offer.Discount.Value)
		if err := sub.UpdatePricing(sub.PriceCents(), sub.PriceCents()-discounted); err != nil {
			return errors.NewValidationError(err.Error())
		}

	case saveflow.OfferPause:
		resumeAt := time.Now().UTC().AddDate(0, 0, offer.Pause.MaxDays)
		sub.Pause("paused via save flow", &resumeAt)

	case saveflow.OfferSkip:
		for i := 0; i < offer.Skip.Count; i++ {
			rows, err := uc.orderRepo.SkipEarliestScheduled(ctx, sub.ID())
			if err != nil {
				return fmt.Errorf("failed to skip order: %w", err)
			}
			if rows == 0 {
				break
			}
			sub.RecordSkip()
		}

	case saveflow.OfferFrequencyChange:
		if err := sub.UpdateFrequency(offer.FrequencyChange.Frequency, offer.FrequencyChange.Interval); err != nil {
			return errors.NewValidationError(err.Error())
		}

	case saveflow.OfferFreeShipping, saveflow.OfferGift:
		// No subscription state change.

	default:
		return errors.NewValidationError(fmt.Sprintf("unknown offer type: %s", offer.Type))
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", sub.SID())
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func offerAt(flow *saveflow.SaveFlow, index int) (saveflow.Offer, error) {
	offers := flow.Offers()
	if index < 0 || index >= len(offers) {
		return saveflow.Offer{}, errors.NewValidationError(
			fmt.Sprintf("offer index %d is out of range", index))
	}
	return offers[index], nil
}

// offerLabelFor prefers the merchant-supplied label, falling back to the
// offer type so the acceptance breakdown always has a stable key.
func offerLabelFor(offer saveflow.Offer, index int) string {
	if offer.Label != "" {
		return offer.Label
	}
	return fmt.Sprintf("%s#%d", offer.Type, index)
}
