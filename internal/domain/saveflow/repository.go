package saveflow

import (
	"context"
	"errors"
)

var (
	ErrFlowNotFound     = errors.New("save flow not found")
	ErrAttemptNotFound  = errors.New("save attempt not found")
	ErrAttemptCompleted = errors.New("save attempt is already completed")
)

// Repository persists save flows. Counter methods issue single-statement
// atomic increments; concurrent attempts must never lose updates.
type Repository interface {
	Create(ctx context.Context, flow *SaveFlow) error
	GetByID(ctx context.Context, id uint) (*SaveFlow, error)
	GetBySID(ctx context.Context, sid string) (*SaveFlow, error)
	Update(ctx context.Context, flow *SaveFlow) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*SaveFlow, error)

	// ListEnabledByPriority returns enabled flows ordered by priority
	// descending, then createdAt descending. The first applicable flow wins.
	ListEnabledByPriority(ctx context.Context) ([]*SaveFlow, error)

	IncrementTriggered(ctx context.Context, flowID uint) error
	IncrementSaved(ctx context.Context, flowID uint, revenueSavedCents int64) error
}

// AttemptRepository persists save attempts.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *Attempt) error
	GetByID(ctx context.Context, id uint) (*Attempt, error)
	GetBySID(ctx context.Context, sid string) (*Attempt, error)
	Update(ctx context.Context, attempt *Attempt) error
	ListByFlow(ctx context.Context, flowID uint) ([]*Attempt, error)
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*Attempt, error)

	// ListCompletedWithOffer returns completed attempts with a non-null
	// offerAccepted, for the acceptance breakdown.
	ListCompletedWithOffer(ctx context.Context) ([]*Attempt, error)

	// ExpirePending marks pending attempts older than the cutoff as expired
	// and returns how many were transitioned.
	ExpirePending(ctx context.Context, olderThanHours int) (int64, error)
}
