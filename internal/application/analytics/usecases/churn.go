package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/application/analytics/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// ChurnUseCase reports cancellations over a window against the current
// active base. The rate is zero, not undefined, when nothing churned and
// nothing is active.
type ChurnUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewChurnUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ChurnUseCase {
	return &ChurnUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *ChurnUseCase) Execute(ctx context.Context, from, to time.Time) (*dto.ChurnDTO, error) {
	if !from.Before(to) {
		return nil, errors.NewValidationError("churn window start must precede its end")
	}

	cancelled, err := uc.subscriptionRepo.CountCancelledBetween(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to count cancellations", "error", err)
		return nil, fmt.Errorf("failed to count cancellations: %w", err)
	}

	active, err := uc.subscriptionRepo.CountByStatus(ctx, vo.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to count active subscriptions", "error", err)
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}

	result := &dto.ChurnDTO{
		From:        from.UTC(),
		To:          to.UTC(),
		Cancelled:   cancelled,
		ActiveAtEnd: active,
	}
	if denominator := active + cancelled; denominator > 0 {
		result.ChurnRate = float64(cancelled) / float64(denominator)
	}
	return result, nil
}

// StatusCounts returns the population broken down by status.
func (uc *ChurnUseCase) StatusCounts(ctx context.Context) (*dto.StatusCountsDTO, error) {
	counts := &dto.StatusCountsDTO{}
	for _, pair := range []struct {
		status vo.Status
		dest   *int64
	}{
		{vo.StatusActive, &counts.Active},
		{vo.StatusPaused, &counts.Paused},
		{vo.StatusCancelled, &counts.Cancelled},
		{vo.StatusExpired, &counts.Expired},
	} {
		n, err := uc.subscriptionRepo.CountByStatus(ctx, pair.status)
		if err != nil {
			uc.logger.Errorw("failed to count subscriptions", "error", err, "status", string(pair.status))
			return nil, fmt.Errorf("failed to count subscriptions: %w", err)
		}
		*pair.dest = n
		counts.Total += n
	}
	return counts, nil
}
