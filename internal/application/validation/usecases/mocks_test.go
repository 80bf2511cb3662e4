package usecases

import (
	"context"
	"time"

	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type mockRunRepository struct {
	CreateFunc               func(ctx context.Context, run *validation.Run) error
	GetByIDFunc              func(ctx context.Context, id uint) (*validation.Run, error)
	GetBySIDFunc             func(ctx context.Context, sid string) (*validation.Run, error)
	UpdateFunc               func(ctx context.Context, run *validation.Run) error
	ListRecentFunc           func(ctx context.Context, limit int) ([]*validation.Run, error)
	IncrementIssuesFixedFunc func(ctx context.Context, runID uint) error
}

func (m *mockRunRepository) Create(ctx context.Context, run *validation.Run) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, run)
	}
	run.SetIDFromStore(1)
	run.SetSID("vr_test")
	return nil
}

func (m *mockRunRepository) GetByID(ctx context.Context, id uint) (*validation.Run, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRunRepository) GetBySID(ctx context.Context, sid string) (*validation.Run, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockRunRepository) Update(ctx context.Context, run *validation.Run) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, run)
	}
	return nil
}

func (m *mockRunRepository) ListRecent(ctx context.Context, limit int) ([]*validation.Run, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockRunRepository) IncrementIssuesFixed(ctx context.Context, runID uint) error {
	if m.IncrementIssuesFixedFunc != nil {
		return m.IncrementIssuesFixedFunc(ctx, runID)
	}
	return nil
}

type mockIssueRepository struct {
	CreateFunc      func(ctx context.Context, issue *validation.Issue) error
	CreateBatchFunc func(ctx context.Context, issues []*validation.Issue) error
	GetByIDFunc     func(ctx context.Context, id uint) (*validation.Issue, error)
	UpdateFunc      func(ctx context.Context, issue *validation.Issue) error
	ListByRunFunc   func(ctx context.Context, runID uint) ([]*validation.Issue, error)
	ListUnfixedFunc func(ctx context.Context, page, pageSize int) ([]*validation.Issue, int64, error)
}

func (m *mockIssueRepository) Create(ctx context.Context, issue *validation.Issue) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, issue)
	}
	return nil
}

func (m *mockIssueRepository) CreateBatch(ctx context.Context, issues []*validation.Issue) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, issues)
	}
	return nil
}

func (m *mockIssueRepository) GetByID(ctx context.Context, id uint) (*validation.Issue, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockIssueRepository) Update(ctx context.Context, issue *validation.Issue) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, issue)
	}
	return nil
}

func (m *mockIssueRepository) ListByRun(ctx context.Context, runID uint) ([]*validation.Issue, error) {
	if m.ListByRunFunc != nil {
		return m.ListByRunFunc(ctx, runID)
	}
	return nil, nil
}

func (m *mockIssueRepository) ListUnfixed(ctx context.Context, page, pageSize int) ([]*validation.Issue, int64, error) {
	if m.ListUnfixedFunc != nil {
		return m.ListUnfixedFunc(ctx, page, pageSize)
	}
	return nil, 0, nil
}

type mockSubscriptionRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*subscription.Subscription, error)
	UpdateFunc  func(ctx context.Context, sub *subscription.Subscription) error
	ListAllFunc func(ctx context.Context) ([]*subscription.Subscription, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
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
	return nil, nil
}

func (m *mockSubscriptionRepository) CountByStatus(ctx context.Context, status vo.Status) (int64, error) {
	return 0, nil
}

func (m *mockSubscriptionRepository) CountCancelledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return 0, nil
}

func (m *mockSubscriptionRepository) FindAutoResumeDue(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	return nil, nil
}

type mockOrderRepository struct {
	SkipAllScheduledFunc                   func(ctx context.Context, subscriptionID uint) (int64, error)
	SubscriptionIDsWithScheduledOrdersFunc func(ctx context.Context) ([]uint, error)
}

func (m *mockOrderRepository) Create(ctx context.Context, order *subscription.Order) error {
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uint) (*subscription.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) SkipEarliestScheduled(ctx context.Context, subscriptionID uint) (int64, error) {
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
	AppendFunc func(ctx context.Context, activity *subscription.Activity) error
}

func (m *mockActivityRepository) Append(ctx context.Context, activity *subscription.Activity) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) ListBySubscription(ctx context.Context, subscriptionID uint, page, pageSize int) ([]*subscription.Activity, int64, error) {
	return nil, 0, nil
}

type mockSettingsRepository struct {
	GetFunc func(ctx context.Context) (*settings.Settings, error)
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return settings.Defaults(1), nil
}

func (m *mockSettingsRepository) Upsert(ctx context.Context, s *settings.Settings) error {
	return nil
}

type mockTenantRepository struct {
	ListActiveFunc func(ctx context.Context) ([]*tenant.Tenant, error)
}

func (m *mockTenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return nil, nil
}

func (m *mockTenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	return nil, nil
}

func (m *mockTenantRepository) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	return nil
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

// reconstructSub builds a subscription directly from params, bypassing the
// creation-time validation so broken fixture data is representable.
func reconstructSub(p subscription.Params) *subscription.Subscription {
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Frequency == "" {
		p.Frequency = vo.FrequencyMonthly
	}
	if p.FrequencyInterval == 0 {
		p.FrequencyInterval = 1
	}
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	if p.Provider == "" {
		p.Provider = vo.ProviderLoop
	}
	if p.TenantID == 0 {
		p.TenantID = 1
	}
	if p.Status == "" {
		p.Status = vo.StatusActive
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
		p.UpdatedAt = p.CreatedAt
	}
	sub, err := subscription.Reconstruct(p)
	if err != nil {
		panic(err)
	}
	return sub
}

func healthySub(id uint, sid, customerID, productID string) *subscription.Subscription {
	next := time.Now().UTC().AddDate(0, 1, 0)
	return reconstructSub(subscription.Params{
		ID:              id,
		SID:             sid,
		CustomerID:      customerID,
		ProductID:       productID,
		PriceCents:      2500,
		NextBillingDate: &next,
	})
}
