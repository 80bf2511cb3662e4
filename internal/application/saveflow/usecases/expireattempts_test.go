package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

func TestExpireAttemptsUseCase_Execute(t *testing.T) {
	tenants := []*tenant.Tenant{
		{ID: 1, Slug: "acme-coffee", Active: true},
		{ID: 2, Slug: "bean-club", Active: true},
	}
	expiredPerTenant := map[uint]int64{1: 3, 2: 2}

	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return tenants, nil
		},
	}
	attemptRepo := &mockAttemptRepository{
		ExpirePendingFunc: func(ctx context.Context, olderThanHours int) (int64, error) {
			assert.Equal(t, 48, olderThanHours)
			tenantID, ok := tenantctx.FromContext(ctx)
			require.True(t, ok, "batch must establish tenant scope before expiring")
			return expiredPerTenant[tenantID], nil
		},
	}

	uc := NewExpireAttemptsUseCase(tenantRepo, attemptRepo, 48, &mockLogger{})
	expired, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, expired)
}

func TestExpireAttemptsUseCase_Execute_TenantFailureContinues(t *testing.T) {
	tenants := []*tenant.Tenant{
		{ID: 1, Slug: "broken-store", Active: true},
		{ID: 2, Slug: "healthy-store", Active: true},
	}

	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return tenants, nil
		},
	}
	attemptRepo := &mockAttemptRepository{
		ExpirePendingFunc: func(ctx context.Context, olderThanHours int) (int64, error) {
			tenantID, _ := tenantctx.FromContext(ctx)
			if tenantID == 1 {
				return 0, fmt.Errorf("lock timeout")
			}
			return 4, nil
		},
	}

	uc := NewExpireAttemptsUseCase(tenantRepo, attemptRepo, 24, &mockLogger{})
	expired, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, expired)
}

func TestExpireAttemptsUseCase_DefaultsExpiryWindow(t *testing.T) {
	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return []*tenant.Tenant{{ID: 1, Slug: "acme-coffee", Active: true}}, nil
		},
	}
	attemptRepo := &mockAttemptRepository{
		ExpirePendingFunc: func(ctx context.Context, olderThanHours int) (int64, error) {
			assert.Equal(t, 24, olderThanHours, "non-positive config falls back to 24 hours")
			return 0, nil
		},
	}

	uc := NewExpireAttemptsUseCase(tenantRepo, attemptRepo, 0, &mockLogger{})
	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
}
