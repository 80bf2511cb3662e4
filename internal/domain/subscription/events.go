package subscription

import (
	"time"

	"github.com/retain-hq/retain/internal/domain/shared/events"
)

const (
	EventCreated      = "subscription.created"
	EventPaused       = "subscription.paused"
	EventResumed      = "subscription.resumed"
	EventCancelled    = "subscription.cancelled"
	EventOrderSkipped = "subscription.order_skipped"
	EventSaved        = "subscription.saved"
)

// LifecycleEvent is raised after a lifecycle mutation commits.
type LifecycleEvent struct {
	events.BaseEvent
	SubscriptionID uint   `json:"subscription_id"`
	TenantID       uint   `json:"tenant_id"`
	Reason         string `json:"reason,omitempty"`
}

func NewLifecycleEvent(eventType string, sub *Subscription, reason string) LifecycleEvent {
	return LifecycleEvent{
		BaseEvent: events.BaseEvent{
			SID:  sub.SID(),
			Type: eventType,
			At:   time.Now().UTC(),
		},
		SubscriptionID: sub.ID(),
		TenantID:       sub.TenantID(),
		Reason:         reason,
	}
}
