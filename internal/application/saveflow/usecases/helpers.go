package usecases

import (
	"context"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// recordActivity writes an audit entry for a save-flow event. Failures are
// logged, never returned: the attempt mutation has already been decided.
func recordActivity(
	ctx context.Context,
	repo subscription.ActivityRepository,
	log logger.Interface,
	tenantID, subscriptionID uint,
	activityType, description string,
	actor subscription.ActorType,
	metadata map[string]interface{},
) {
	activity, err := subscription.NewActivity(tenantID, subscriptionID, activityType, description, actor)
	if err != nil {
		log.Errorw("failed to build activity", "error", err, "activity_type", activityType)
		return
	}
	for k, v := range metadata {
		activity.AddMetadata(k, v)
	}
	if err := repo.Append(ctx, activity); err != nil {
		log.Errorw("failed to append activity", "error", err, "activity_type", activityType)
	}
}
