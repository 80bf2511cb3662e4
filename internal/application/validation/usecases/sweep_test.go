package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

func TestSweepUseCase_RunsEveryActiveTenant(t *testing.T) {
	var scopedTenants []uint
	subRepo := &mockSubscriptionRepository{
		ListAllFunc: func(ctx context.Context) ([]*subscription.Subscription, error) {
			tenantID, ok := tenantctx.FromContext(ctx)
			require.True(t, ok, "dataset loading must run inside a tenant scope")
			scopedTenants = append(scopedTenants, tenantID)
			return []*subscription.Subscription{healthySub(1, "sub_a", "cust_1", "prod_1")}, nil
		},
	}
	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return []*tenant.Tenant{
				{ID: 1, Slug: "acme-coffee"},
				{ID: 2, Slug: "birch-botanicals"},
			}, nil
		},
	}

	runUC := NewRunValidationUseCase(&mockRunRepository{}, &mockIssueRepository{}, subRepo,
		&mockOrderRepository{}, &mockSettingsRepository{}, &mockLogger{})
	uc := NewSweepUseCase(tenantRepo, runUC, &mockLogger{})

	completed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, completed)
	assert.Equal(t, []uint{1, 2}, scopedTenants)
}

func TestSweepUseCase_TenantFailureDoesNotAbortSweep(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		ListAllFunc: func(ctx context.Context) ([]*subscription.Subscription, error) {
			tenantID, _ := tenantctx.FromContext(ctx)
			if tenantID == 1 {
				return nil, assert.AnError
			}
			return nil, nil
		},
	}
	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return []*tenant.Tenant{
				{ID: 1, Slug: "acme-coffee"},
				{ID: 2, Slug: "birch-botanicals"},
			}, nil
		},
	}

	runUC := NewRunValidationUseCase(&mockRunRepository{}, &mockIssueRepository{}, subRepo,
		&mockOrderRepository{}, &mockSettingsRepository{}, &mockLogger{})
	uc := NewSweepUseCase(tenantRepo, runUC, &mockLogger{})

	completed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestSweepUseCase_NoActiveTenants(t *testing.T) {
	runUC := NewRunValidationUseCase(&mockRunRepository{}, &mockIssueRepository{},
		&mockSubscriptionRepository{}, &mockOrderRepository{}, &mockSettingsRepository{}, &mockLogger{})
	uc := NewSweepUseCase(&mockTenantRepository{}, runUC, &mockLogger{})

	completed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, completed)
}
