package tenant

import (
	"context"
	"errors"
	"time"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Tenant is an isolated merchant whose data every query is scoped to.
type Tenant struct {
	ID        uint
	Slug      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository resolves tenants. Tenant rows are the only table NOT scoped by
// tenant_id; resolution happens before a tenant scope exists.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	ListActive(ctx context.Context) ([]*Tenant, error)
	Create(ctx context.Context, t *Tenant) error
}
