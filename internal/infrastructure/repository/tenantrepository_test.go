package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

func TestTenantRepository_CreateAndResolve(t *testing.T) {
	repo := NewTenantRepository(setupTestDB(t), &testLogger{})
	ctx := context.Background()

	acme := &tenant.Tenant{Slug: "acme-coffee", Name: "Acme Coffee", Active: true}
	require.NoError(t, repo.Create(ctx, acme))
	assert.NotZero(t, acme.ID)

	got, err := repo.GetBySlug(ctx, "acme-coffee")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, got.ID)
	assert.Equal(t, "Acme Coffee", got.Name)

	byID, err := repo.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme-coffee", byID.Slug)
}

func TestTenantRepository_UnknownSlug(t *testing.T) {
	repo := NewTenantRepository(setupTestDB(t), &testLogger{})

	_, err := repo.GetBySlug(context.Background(), "nobody")
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestTenantRepository_ListActiveExcludesInactive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTenantRepository(gdb, &testLogger{})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &tenant.Tenant{Slug: "acme-coffee", Name: "Acme Coffee", Active: true}))

	closed := &tenant.Tenant{Slug: "closed-shop", Name: "Closed Shop", Active: true}
	require.NoError(t, repo.Create(ctx, closed))
	err := gdb.Model(&models.TenantModel{}).
		Where("id = ?", closed.ID).
		Update("active", false).Error
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "acme-coffee", active[0].Slug)
}
