package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

// SweepUseCase runs the validation battery for every active tenant. It backs
// the scheduled integrity sweep; one tenant failing does not stop the rest.
type SweepUseCase struct {
	tenantRepo tenant.Repository
	runUC      *RunValidationUseCase
	logger     logger.Interface
}

func NewSweepUseCase(
	tenantRepo tenant.Repository,
	runUC *RunValidationUseCase,
	logger logger.Interface,
) *SweepUseCase {
	return &SweepUseCase{
		tenantRepo: tenantRepo,
		runUC:      runUC,
		logger:     logger,
	}
}

// Execute returns the number of tenants whose run completed.
func (uc *SweepUseCase) Execute(ctx context.Context) (int, error) {
	tenants, err := uc.tenantRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active tenants: %w", err)
	}

	completed := 0
	for _, t := range tenants {
		select {
		case <-ctx.Done():
			return completed, ctx.Err()
		default:
		}

		tctx := tenantctx.WithTenant(ctx, tenantctx.Tenant{ID: t.ID, Slug: t.Slug})

		result, err := uc.runUC.Execute(tctx)
		if err != nil {
			uc.logger.Errorw("validation run failed for tenant",
				"error", err, "tenant", t.Slug)
			continue
		}

		uc.logger.Infow("tenant validation run completed",
			"tenant", t.Slug,
			"run_sid", result.Run.SID,
			"issues_found", result.Run.IssuesFound,
		)
		completed++
	}

	return completed, nil
}
