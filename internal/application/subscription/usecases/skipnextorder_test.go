package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/domain/subscription"
)

func TestSkipNextOrderUseCase_Execute_Success(t *testing.T) {
	sub := testSubscription(10, "sub_abc123")
	var updated *subscription.Subscription

	repo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
		UpdateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			updated = s
			return nil
		},
	}
	orderRepo := &mockOrderRepository{
		SkipEarliestScheduledFunc: func(ctx context.Context, subscriptionID uint) (int64, error) {
			assert.Equal(t, uint(10), subscriptionID)
			return 1, nil
		},
	}

	uc := NewSkipNextOrderUseCase(repo, orderRepo, &mockActivityRepository{}, &mockSettingsRepository{}, &mockPublisher{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), SkipNextOrderCommand{
		SID:   "sub_abc123",
		Actor: Actor{Type: subscription.ActorCustomer, ID: "cust_1"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.OrdersSkipped)
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.SkippedOrders())
}

func TestSkipNextOrderUseCase_Execute_TiedOrdersAllSkipped(t *testing.T) {
	sub := testSubscription(10, "sub_abc123")
	repo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
	}
	orderRepo := &mockOrderRepository{
		SkipEarliestScheduledFunc: func(ctx context.Context, subscriptionID uint) (int64, error) {
			// Two orders share the earliest scheduled time.
			return 2, nil
		},
	}

	uc := NewSkipNextOrderUseCase(repo, orderRepo, &mockActivityRepository{}, &mockSettingsRepository{}, &mockPublisher{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), SkipNextOrderCommand{
		SID:   "sub_abc123",
		Actor: Actor{Type: subscription.ActorAdmin},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.OrdersSkipped)
	// One skip operation, regardless of how many tied rows it touched.
	assert.Equal(t, 1, sub.SkippedOrders())
}

func TestSkipNextOrderUseCase_Execute_NothingToSkip(t *testing.T) {
	sub := testSubscription(10, "sub_abc123")
	repo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
		UpdateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			t.Fatal("update should not run when no order was skipped")
			return nil
		},
	}
	orderRepo := &mockOrderRepository{
		SkipEarliestScheduledFunc: func(ctx context.Context, subscriptionID uint) (int64, error) {
			return 0, nil
		},
	}

	uc := NewSkipNextOrderUseCase(repo, orderRepo, &mockActivityRepository{}, &mockSettingsRepository{}, &mockPublisher{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), SkipNextOrderCommand{
		SID:   "sub_abc123",
		Actor: Actor{Type: subscription.ActorAdmin},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scheduled orders")
}

func TestSkipNextOrderUseCase_Execute_CustomerSkipDisabled(t *testing.T) {
	sub := testSubscription(10, "sub_abc123")
	repo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
	}
	settingsRepo := &mockSettingsRepository{
		GetFunc: func(ctx context.Context) (*settings.Settings, error) {
			cfg := settings.Defaults(1)
			cfg.AllowCustomerSkip = false
			return cfg, nil
		},
	}
	orderRepo := &mockOrderRepository{
		SkipEarliestScheduledFunc: func(ctx context.Context, subscriptionID uint) (int64, error) {
			t.Fatal("skip should not run for a forbidden customer request")
			return 0, nil
		},
	}

	uc := NewSkipNextOrderUseCase(repo, orderRepo, &mockActivityRepository{}, settingsRepo, &mockPublisher{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), SkipNextOrderCommand{
		SID:   "sub_abc123",
		Actor: Actor{Type: subscription.ActorCustomer, ID: "cust_1"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
