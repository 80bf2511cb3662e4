package subscription

import (
	"context"
	"time"

	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

// Repository persists subscriptions. All queries are tenant-scoped through
// the context; rows are never deleted, only status-transitioned.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	List(ctx context.Context, filter Filter) ([]*Subscription, int64, error)

	// ListAll returns the full subscription population for the tenant.
	// The validation battery and analytics aggregation read through this.
	ListAll(ctx context.Context) ([]*Subscription, error)
	ListByStatus(ctx context.Context, status vo.Status) ([]*Subscription, error)
	CountByStatus(ctx context.Context, status vo.Status) (int64, error)
	CountCancelledBetween(ctx context.Context, from, to time.Time) (int64, error)

	// FindAutoResumeDue returns paused subscriptions whose autoResumeAt has
	// passed, for the auto-resume worker.
	FindAutoResumeDue(ctx context.Context, now time.Time) ([]*Subscription, error)
}

// Filter narrows List results. Unknown sort columns are clamped to the
// default ordering, never rejected.
type Filter struct {
	Status     *vo.Status
	Provider   *vo.Provider
	CustomerID *string
	ProductID  *string
	Page       int
	PageSize   int
	SortBy     string
	SortDesc   bool
}

// OrderRepository persists subscription orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*Order, error)

	// SkipEarliestScheduled transitions every scheduled order sharing the
	// minimum scheduledAt to skipped, in a single set-based update. Ties on
	// the minimum are all skipped; this is the documented tie-break, not a
	// bug. Returns the number of rows transitioned.
	SkipEarliestScheduled(ctx context.Context, subscriptionID uint) (int64, error)

	// SkipAllScheduled transitions every scheduled order for the
	// subscription to skipped (cancel cleanup and validation auto-fix).
	SkipAllScheduled(ctx context.Context, subscriptionID uint) (int64, error)

	// SubscriptionIDsWithScheduledOrders returns the distinct subscription
	// IDs that still have scheduled orders.
	SubscriptionIDsWithScheduledOrders(ctx context.Context) ([]uint, error)
}

// ActivityRepository appends and lists the immutable audit trail.
// Appends are fire-and-forget from the caller's perspective: a failed append
// is logged, never propagated to the mutating operation.
type ActivityRepository interface {
	Append(ctx context.Context, activity *Activity) error
	ListBySubscription(ctx context.Context, subscriptionID uint, page, pageSize int) ([]*Activity, int64, error)
}
