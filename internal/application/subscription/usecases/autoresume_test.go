package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

func pausedSubscription(id uint, sid string) *subscription.Subscription {
	sub := testSubscription(id, sid)
	past := time.Now().UTC().Add(-time.Hour)
	sub.Pause("seasonal", &past)
	return sub
}

func TestAutoResumeUseCase_Execute_ResumesAcrossTenants(t *testing.T) {
	tenants := []*tenant.Tenant{
		{ID: 1, Slug: "acme-coffee", Active: true},
		{ID: 2, Slug: "bean-club", Active: true},
	}

	due := map[uint][]*subscription.Subscription{
		1: {pausedSubscription(10, "sub_a"), pausedSubscription(11, "sub_b")},
		2: {pausedSubscription(20, "sub_c")},
	}

	var updatedSIDs []string
	subRepo := &mockSubscriptionRepository{
		FindAutoResumeDueFunc: func(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
			tenantID, ok := tenantctx.FromContext(ctx)
			require.True(t, ok, "batch must establish tenant scope before querying")
			return due[tenantID], nil
		},
		UpdateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			updatedSIDs = append(updatedSIDs, s.SID())
			return nil
		},
	}
	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return tenants, nil
		},
	}
	publisher := &mockPublisher{}

	uc := NewAutoResumeUseCase(tenantRepo, subRepo, &mockActivityRepository{}, publisher, &mockLogger{})
	resumed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, resumed)
	assert.ElementsMatch(t, []string{"sub_a", "sub_b", "sub_c"}, updatedSIDs)
	assert.Len(t, publisher.Published, 3)
	for _, sids := range due {
		for _, sub := range sids {
			assert.Equal(t, vo.StatusActive, sub.Status())
		}
	}
}

func TestAutoResumeUseCase_Execute_TenantFailureDoesNotAbortBatch(t *testing.T) {
	tenants := []*tenant.Tenant{
		{ID: 1, Slug: "broken-store", Active: true},
		{ID: 2, Slug: "healthy-store", Active: true},
	}

	subRepo := &mockSubscriptionRepository{
		FindAutoResumeDueFunc: func(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
			tenantID, _ := tenantctx.FromContext(ctx)
			if tenantID == 1 {
				return nil, fmt.Errorf("connection reset")
			}
			return []*subscription.Subscription{pausedSubscription(20, "sub_c")}, nil
		},
	}
	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return tenants, nil
		},
	}

	uc := NewAutoResumeUseCase(tenantRepo, subRepo, &mockActivityRepository{}, &mockPublisher{}, &mockLogger{})
	resumed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resumed)
}

func TestAutoResumeUseCase_Execute_NoTenants(t *testing.T) {
	tenantRepo := &mockTenantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*tenant.Tenant, error) {
			return nil, nil
		},
	}

	uc := NewAutoResumeUseCase(tenantRepo, &mockSubscriptionRepository{}, &mockActivityRepository{}, &mockPublisher{}, &mockLogger{})
	resumed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resumed)
}
