package usecases

import (
	"context"
	"time"

	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	CreateFunc                func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFunc               func(ctx context.Context, id uint) (*subscription.Subscription, error)
	GetBySIDFunc              func(ctx context.Context, sid string) (*subscription.Subscription, error)
	UpdateFunc                func(ctx context.Context, sub *subscription.Subscription) error
	ListFunc                  func(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error)
	ListAllFunc               func(ctx context.Context) ([]*subscription.Subscription, error)
	ListByStatusFunc          func(ctx context.Context, status vo.Status) ([]*subscription.Subscription, error)
	CountByStatusFunc         func(ctx context.Context, status vo.Status) (int64, error)
	CountCancelledBetweenFunc func(ctx context.Context, from, to time.Time) (int64, error)
	FindAutoResumeDueFunc     func(ctx context.Context, now time.Time) ([]*subscription.Subscription, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
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
	if m.FindAutoResumeDueFunc != nil {
		return m.FindAutoResumeDueFunc(ctx, now)
	}
	return nil, nil
}

type mockOrderRepository struct {
	CreateFunc                             func(ctx context.Context, order *subscription.Order) error
	GetByIDFunc                            func(ctx context.Context, id uint) (*subscription.Order, error)
	ListBySubscriptionFunc                 func(ctx context.Context, subscriptionID uint) ([]*subscription.Order, error)
	SkipEarliestScheduledFunc              func(ctx context.Context, subscriptionID uint) (int64, error)
	SkipAllScheduledFunc                   func(ctx context.Context, subscriptionID uint) (int64, error)
	SubscriptionIDsWithScheduledOrdersFunc func(ctx context.Context) ([]uint, error)
}

func (m *mockOrderRepository) Create(ctx context.Context, order *subscription.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uint) (*subscription.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Order, error) {
	if m.ListBySubscriptionFunc != nil {
		return m.ListBySubscriptionFunc(ctx, subscriptionID)
	}
	return nil, nil
}

func (m *mockOrderRepository) SkipEarliestScheduled(ctx context.Context, subscriptionID uint) (int64, error) {
	if m.SkipEarliestScheduledFunc != nil {
		return m.SkipEarliestScheduledFunc(ctx, subscriptionID)
	}
	return 0, nil
}

func (m *mockOrderRepository) SkipAllScheduled(ctx context.Context, subscriptionID uint) (int64, error) {
	if m.SkipAllScheduledFunc != nil {
		return m.SkipAllScheduledFunc(ctx, subscriptionID)
	}
	return 0, nil
}

func (m *mockOrderRepository) SubscriptionIDsWithScheduledOrders(ctx context.Context) ([]uint, error) {
	if m.SubscriptionIDsWithScheduledOrdersFunc != nil {
		return m.SubscriptionIDsWithScheduledOrdersFunc(ctx)
	}
	return nil, nil
}

type mockActivityRepository struct {
	AppendFunc             func(ctx context.Context, activity *subscription.Activity) error
	ListBySubscriptionFunc func(ctx context.Context, subscriptionID uint, page, pageSize int) ([]*subscription.Activity, int64, error)
}

func (m *mockActivityRepository) Append(ctx context.Context, activity *subscription.Activity) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) ListBySubscription(ctx context.Context, subscriptionID uint, page, pageSize int) ([]*subscription.Activity, int64, error) {
	if m.ListBySubscriptionFunc != nil {
		return m.ListBySubscriptionFunc(ctx, subscriptionID, page, pageSize)
	}
	return nil, 0, nil
}

type mockSettingsRepository struct {
	GetFunc    func(ctx context.Context) (*settings.Settings, error)
	UpsertFunc func(ctx context.Context, s *settings.Settings) error
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return settings.Defaults(1), nil
}

func (m *mockSettingsRepository) Upsert(ctx context.Context, s *settings.Settings) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	return nil
}

type mockTenantRepository struct {
	GetBySlugFunc  func(ctx context.Context, slug string) (*tenant.Tenant, error)
	GetByIDFunc    func(ctx context.Context, id uint) (*tenant.Tenant, error)
	ListActiveFunc func(ctx context.Context) ([]*tenant.Tenant, error)
	CreateFunc     func(ctx context.Context, t *tenant.Tenant) error
}

func (m *mockTenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockTenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTenantRepository) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

type mockPublisher struct {
	PublishFunc func(event events.DomainEvent)
	Published   []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) {
	m.Published = append(m.Published, event)
	if m.PublishFunc != nil {
		m.PublishFunc(event)
	}
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

// testSubscription builds an active monthly subscription for use-case tests.
func testSubscription(id uint, sid string) *subscription.Subscription {
	sub, err := subscription.Reconstruct(subscription.Params{
		ID:                id,
		SID:               sid,
		TenantID:          1,
		Provider:          vo.ProviderLoop,
		CustomerID:        "cust_1",
		CustomerEmail:     "jamie@example.com",
		ProductID:         "prod_1",
		Quantity:          1,
		PriceCents:        2500,
		Currency:          "USD",
		Frequency:         vo.FrequencyMonthly,
		FrequencyInterval: 1,
		Status:            vo.StatusActive,
		Version:           1,
		CreatedAt:         time.Now().UTC().Add(-24 * time.Hour),
		UpdatedAt:         time.Now().UTC(),
	})
	if err != nil {
		panic(err)
	}
	return sub
}
