package usecases

import (
	"context"
	"time"

	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	ListAllFunc               func(ctx context.Context) ([]*subscription.Subscription, error)
	ListByStatusFunc          func(ctx context.Context, status vo.Status) ([]*subscription.Subscription, error)
	CountByStatusFunc         func(ctx context.Context, status vo.Status) (int64, error)
	CountCancelledBetweenFunc func(ctx context.Context, from, to time.Time) (int64, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	return nil, 0, nil
}

func (m *mockSubscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ListByStatus(ctx context.Context, status vo.Status) ([]*subscription.Subscription, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) CountByStatus(ctx context.Context, status vo.Status) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockSubscriptionRepository) CountCancelledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountCancelledBetweenFunc != nil {
		return m.CountCancelledBetweenFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockSubscriptionRepository) FindAutoResumeDue(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func activeSubscription(id uint, priceCents int64, frequency vo.Frequency, interval, quantity int) *subscription.Subscription {
	sub, err := subscription.Reconstruct(subscription.Params{
		ID:                id,
		SID:               "sub_test",
		TenantID:          1,
		Provider:          vo.ProviderLoop,
		CustomerID:        "cust_1",
		ProductID:         "prod_1",
		Quantity:          quantity,
		PriceCents:        priceCents,
		Currency:          "USD",
		Frequency:         frequency,
		FrequencyInterval: interval,
		Status:            vo.StatusActive,
		Version:           1,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	})
	if err != nil {
		panic(err)
	}
	return sub
}
