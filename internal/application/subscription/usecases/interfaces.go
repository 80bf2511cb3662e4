package usecases

import (
	"context"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// Actor identifies who requested an operation, for the audit trail.
type Actor struct {
	Type subscription.ActorType
	ID   string
}

// SystemActor is the actor stamped on worker and auto-fix mutations.
var SystemActor = Actor{Type: subscription.ActorSystem}

// appendActivity writes an audit entry. Appends run outside the ambient
// transaction and a failure is logged, never returned: the mutation that
// triggered the entry has already been decided.
func appendActivity(
	ctx context.Context,
	repo subscription.ActivityRepository,
	log logger.Interface,
	tenantID, subscriptionID uint,
	activityType, description string,
	actor Actor,
	metadata map[string]interface{},
) {
	activity, err := subscription.NewActivity(tenantID, subscriptionID, activityType, description, actor.Type)
	if err != nil {
		log.Errorw("failed to build activity", "error", err, "activity_type", activityType)
		return
	}
	if actor.ID != "" {
		activity.SetActorID(actor.ID)
	}
	for k, v := range metadata {
		activity.AddMetadata(k, v)
	}

	if err := repo.Append(ctx, activity); err != nil {
		log.Errorw("failed to append activity",
			"error", err,
			"subscription_id", subscriptionID,
			"activity_type", activityType,
		)
	}
}
