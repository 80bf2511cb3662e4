package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

// ExpireAttemptsUseCase transitions stale pending attempts to expired across
// every active tenant. A customer who abandons the cancellation UI leaves a
// pending attempt behind; this keeps the save-rate denominator honest.
type ExpireAttemptsUseCase struct {
	tenantRepo  tenant.Repository
	attemptRepo saveflow.AttemptRepository
	expiryHours int
	logger      logger.Interface
}

func NewExpireAttemptsUseCase(
	tenantRepo tenant.Repository,
	attemptRepo saveflow.AttemptRepository,
	expiryHours int,
	logger logger.Interface,
) *ExpireAttemptsUseCase {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &ExpireAttemptsUseCase{
		tenantRepo:  tenantRepo,
		attemptRepo: attemptRepo,
		expiryHours: expiryHours,
		logger:      logger,
	}
}

// Execute returns how many attempts were expired across all tenants.
func (uc *ExpireAttemptsUseCase) Execute(ctx context.Context) (int, error) {
	tenants, err := uc.tenantRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active tenants", "error", err)
		return 0, fmt.Errorf("failed to list active tenants: %w", err)
	}

	total := 0
	for _, t := range tenants {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		tctx := tenantctx.WithTenant(ctx, tenantctx.Tenant{ID: t.ID, Slug: t.Slug})
		expired, err := uc.attemptRepo.ExpirePending(tctx, uc.expiryHours)
		if err != nil {
			uc.logger.Errorw("failed to expire save attempts", "error", err, "tenant_slug", t.Slug)
			continue
		}
		if expired > 0 {
			uc.logger.Infow("expired stale save attempts", "tenant_slug", t.Slug, "count", expired)
		}
		total += int(expired)
	}
	return total, nil
}
