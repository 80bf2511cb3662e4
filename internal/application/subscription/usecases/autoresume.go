package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

// AutoResumeUseCase resumes paused subscriptions whose auto-resume date has
// passed. It runs as a scheduled batch job and walks every active tenant,
// establishing the tenant scope itself since no request middleware is around.
type AutoResumeUseCase struct {
	tenantRepo       tenant.Repository
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	publisher        events.Publisher
	logger           logger.Interface
}

func NewAutoResumeUseCase(
	tenantRepo tenant.Repository,
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	publisher events.Publisher,
	logger logger.Interface,
) *AutoResumeUseCase {
	return &AutoResumeUseCase{
		tenantRepo:       tenantRepo,
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// Execute returns the number of subscriptions resumed across all tenants.
// A failure on one subscription or one tenant does not abort the batch.
func (uc *AutoResumeUseCase) Execute(ctx context.Context) (int, error) {
	tenants, err := uc.tenantRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active tenants: %w", err)
	}

	now := time.Now().UTC()
	resumed := 0

	for _, t := range tenants {
		select {
		case <-ctx.Done():
			return resumed, ctx.Err()
		default:
		}

		tctx := tenantctx.WithTenant(ctx, tenantctx.Tenant{ID: t.ID, Slug: t.Slug})

		due, err := uc.subscriptionRepo.FindAutoResumeDue(tctx, now)
		if err != nil {
			uc.logger.Errorw("failed to find auto-resume-due subscriptions",
				"error", err, "tenant", t.Slug)
			continue
		}

		for _, sub := range due {
			sub.Resume()
			if err := uc.subscriptionRepo.Update(tctx, sub); err != nil {
				uc.logger.Errorw("failed to auto-resume subscription",
					"error", err, "sid", sub.SID(), "tenant", t.Slug)
				continue
			}

			appendActivity(tctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
				subscription.ActivityTypeResumed, "auto-resumed on schedule", SystemActor, nil)

			uc.publisher.Publish(subscription.NewLifecycleEvent(subscription.EventResumed, sub, "auto_resume"))
			resumed++
		}
	}

	return resumed, nil
}
