package sellingplan

import (
	"context"
	"errors"
)

var ErrSellingPlanNotFound = errors.New("selling plan not found")

// Repository persists selling plans. Plans have an independent lifecycle;
// Delete is a hard delete because subscriptions reference plans only by a
// denormalized name.
type Repository interface {
	Create(ctx context.Context, plan *SellingPlan) error
	GetByID(ctx context.Context, id uint) (*SellingPlan, error)
	GetBySID(ctx context.Context, sid string) (*SellingPlan, error)
	Update(ctx context.Context, plan *SellingPlan) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*SellingPlan, error)
	ListEnabled(ctx context.Context) ([]*SellingPlan, error)
}
