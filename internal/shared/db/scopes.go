package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

// TenantScope restricts a query to the tenant carried in ctx.
// Queries issued outside a tenant context match nothing; tenant isolation
// failures must read as empty results, never as cross-tenant leaks.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := tenantctx.FromContext(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// NotDeleted filters out soft-deleted records for queries that bypass
// GORM's model-level soft delete handling.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}
