// Package tenantctx carries the resolved tenant through context.
// Every data operation runs inside a tenant scope; the HTTP middleware and the
// background workers are the only places that establish one.
package tenantctx

import "context"

type tenantKey struct{}

// Tenant is the resolved tenant identity carried in context.
type Tenant struct {
	ID   uint
	Slug string
}

// WithTenant returns a context scoped to the given tenant.
func WithTenant(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext returns the tenant ID from ctx, if present.
func FromContext(ctx context.Context) (uint, bool) {
	t, ok := ctx.Value(tenantKey{}).(Tenant)
	if !ok {
		return 0, false
	}
	return t.ID, true
}

// TenantFromContext returns the full tenant identity from ctx, if present.
func TenantFromContext(ctx context.Context) (Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(Tenant)
	return t, ok
}
