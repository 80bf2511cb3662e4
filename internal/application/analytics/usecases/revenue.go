package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/retain-hq/retain/internal/application/analytics/dto"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/infrastructure/cache"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

const revenueCacheKey = "revenue"

// RevenueUseCase computes MRR and ARR. Per-subscription monthly equivalents
// are summed as floats and rounded once at the end, so rounding error does
// not accumulate per row. ARR is exactly MRR times twelve.
type RevenueUseCase struct {
	subscriptionRepo subscription.Repository
	cache            cache.AnalyticsCache
	logger           logger.Interface
}

func NewRevenueUseCase(
	subscriptionRepo subscription.Repository,
	analyticsCache cache.AnalyticsCache,
	logger logger.Interface,
) *RevenueUseCase {
	if analyticsCache == nil {
		analyticsCache = cache.NoopAnalyticsCache{}
	}
	return &RevenueUseCase{
		subscriptionRepo: subscriptionRepo,
		cache:            analyticsCache,
		logger:           logger,
	}
}

func (uc *RevenueUseCase) Execute(ctx context.Context) (*dto.RevenueDTO, error) {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return nil, errors.NewUnauthorizedError("no tenant in context")
	}

	var cached dto.RevenueDTO
	if hit, err := uc.cache.Get(ctx, tenantID, revenueCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	subs, err := uc.subscriptionRepo.ListByStatus(ctx, vo.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to list active subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	var mrr float64
	currency := ""
	for _, sub := range subs {
		mrr += sub.MonthlyEquivalentCents()
		if currency == "" {
			currency = sub.Currency()
		}
	}

	mrrCents := int64(math.Round(mrr))
	result := &dto.RevenueDTO{
		MRRCents:            mrrCents,
		ARRCents:            mrrCents * 12,
		ActiveSubscriptions: len(subs),
		Currency:            currency,
		ComputedAt:          time.Now().UTC(),
	}

	if err := uc.cache.Set(ctx, tenantID, revenueCacheKey, result); err != nil {
		uc.logger.Warnw("failed to cache revenue snapshot", "error", err)
	}
	return result, nil
}
