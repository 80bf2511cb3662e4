package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// FixedBySystem is stamped on issues resolved by the auto-fixer.
const FixedBySystem = "auto_fix"

// pausedTooLongReason is the synthetic cancel reason for forced cancellation.
const pausedTooLongReason = "automatically cancelled: paused beyond the allowed pause window"

type AutoFixCommand struct {
	IssueIDs []uint
}

type AutoFixResult struct {
	Fixed  int      `json:"fixed"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors"`
}

// AutoFixUseCase repairs auto-fixable issues. The batch continues past
// per-item failures, accumulating error messages; a non-fixable type is a
// reported failure, never a thrown error.
type AutoFixUseCase struct {
	runRepo          validation.RunRepository
	issueRepo        validation.IssueRepository
	subscriptionRepo subscription.Repository
	orderRepo        subscription.OrderRepository
	activityRepo     subscription.ActivityRepository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewAutoFixUseCase(
	runRepo validation.RunRepository,
	issueRepo validation.IssueRepository,
	subscriptionRepo subscription.Repository,
	orderRepo subscription.OrderRepository,
	activityRepo subscription.ActivityRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *AutoFixUseCase {
	return &AutoFixUseCase{
		runRepo:          runRepo,
		issueRepo:        issueRepo,
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		activityRepo:     activityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *AutoFixUseCase) Execute(ctx context.Context, cmd AutoFixCommand) (*AutoFixResult, error) {
	result := &AutoFixResult{Errors: []string{}}

	for _, issueID := range cmd.IssueIDs {
		if err := uc.fixOne(ctx, issueID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("issue %d: %v", issueID, err))
			continue
		}
		result.Fixed++
	}

	uc.logger.Infow("auto-fix batch completed",
		"requested", len(cmd.IssueIDs),
		"fixed", result.Fixed,
		"failed", result.Failed,
	)

	return result, nil
}

// fixOne repairs a single issue. The subscription mutation, the issue's
// fixed-state write and the run counter bump all share one transaction so a
// crash cannot leave them disagreeing.
func (uc *AutoFixUseCase) fixOne(ctx context.Context, issueID uint) error {
	issue, err := uc.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return fmt.Errorf("failed to load issue: %w", err)
	}
	if issue == nil {
		return fmt.Errorf("issue not found")
	}
	if issue.IsFixed() {
		return fmt.Errorf("issue is already fixed")
	}
	if !issue.Type().AutoFixable() {
		return fmt.Errorf("issue type %s cannot be auto-fixed", issue.Type())
	}

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByID(txCtx, issue.SubscriptionID())
		if err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		if sub == nil {
			return fmt.Errorf("subscription %d not found", issue.SubscriptionID())
		}

		switch issue.Type() {
		case validation.IssueMissingBillingDate:
			if err := uc.fixMissingBillingDate(txCtx, sub); err != nil {
				return err
			}
		case validation.IssueCancelledWithPendingOrders:
			if _, err := uc.orderRepo.SkipAllScheduled(txCtx, sub.ID()); err != nil {
				return fmt.Errorf("failed to skip scheduled orders: %w", err)
			}
		case validation.IssuePausedTooLong:
			if err := uc.fixPausedTooLong(txCtx, sub); err != nil {
				return err
			}
		}

		if err := issue.MarkFixed(FixedBySystem); err != nil {
			return err
		}
		if err := uc.issueRepo.Update(txCtx, issue); err != nil {
			return fmt.Errorf("failed to persist fixed issue: %w", err)
		}
		if err := uc.runRepo.IncrementIssuesFixed(txCtx, issue.RunID()); err != nil {
			return fmt.Errorf("failed to bump run counter: %w", err)
		}
		return nil
	})
}

func (uc *AutoFixUseCase) fixMissingBillingDate(ctx context.Context, sub *subscription.Subscription) error {
	// NextBillingDate falls back to a 1-month step for any unrecognized
	// frequency, matching billing math elsewhere.
	next := sub.Frequency().NextBillingDate(time.Now().UTC(), sub.FrequencyInterval())
	sub.SetNextBillingDate(next)

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.appendFixActivity(ctx, sub, subscription.ActivityTypeBillingDateFixed,
		fmt.Sprintf("next billing date recomputed to %s", next.Format(time.RFC3339)))
	return nil
}

func (uc *AutoFixUseCase) fixPausedTooLong(ctx context.Context, sub *subscription.Subscription) error {
	sub.Cancel(pausedTooLongReason)

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.appendFixActivity(ctx, sub, subscription.ActivityTypeCancelled, pausedTooLongReason)
	return nil
}

func (uc *AutoFixUseCase) appendFixActivity(ctx context.Context, sub *subscription.Subscription, activityType, description string) {
	activity, err := subscription.NewActivity(sub.TenantID(), sub.ID(), activityType, description, subscription.ActorSystem)
	if err != nil {
		uc.logger.Errorw("failed to build fix activity", "error", err, "sid", sub.SID())
		return
	}
	if err := uc.activityRepo.Append(ctx, activity); err != nil {
		uc.logger.Errorw("failed to append fix activity", "error", err, "sid", sub.SID())
	}
}
