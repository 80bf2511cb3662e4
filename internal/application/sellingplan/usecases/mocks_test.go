package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type mockPlanRepository struct {
	CreateFunc      func(ctx context.Context, plan *sellingplan.SellingPlan) error
	GetByIDFunc     func(ctx context.Context, id uint) (*sellingplan.SellingPlan, error)
	GetBySIDFunc    func(ctx context.Context, sid string) (*sellingplan.SellingPlan, error)
	UpdateFunc      func(ctx context.Context, plan *sellingplan.SellingPlan) error
	DeleteFunc      func(ctx context.Context, id uint) error
	ListFunc        func(ctx context.Context) ([]*sellingplan.SellingPlan, error)
	ListEnabledFunc func(ctx context.Context) ([]*sellingplan.SellingPlan, error)
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *sellingplan.SellingPlan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	plan.SetIDFromStore(1)
	plan.SetSID("sp_test")
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*sellingplan.SellingPlan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetBySID(ctx context.Context, sid string) (*sellingplan.SellingPlan, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *sellingplan.SellingPlan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlanRepository) List(ctx context.Context) ([]*sellingplan.SellingPlan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepository) ListEnabled(ctx context.Context) ([]*sellingplan.SellingPlan, error) {
	if m.ListEnabledFunc != nil {
		return m.ListEnabledFunc(ctx)
	}
	return nil, nil
}

type mockSubscriptionRepository struct {
	GetBySIDFunc func(ctx context.Context, sid string) (*subscription.Subscription, error)
	UpdateFunc   func(ctx context.Context, sub *subscription.Subscription) error
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
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
	return nil, 0, nil
}

func (m *mockSubscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
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

func testPlan(t *testing.T, id uint, sid, name string, discountType sellingplan.DiscountType, discountValue int64) *sellingplan.SellingPlan {
	t.Helper()
	plan, err := sellingplan.NewSellingPlan(1, name, vo.FrequencyMonthly, 1, discountType, discountValue)
	require.NoError(t, err)
	plan.SetIDFromStore(id)
	plan.SetSID(sid)
	return plan
}

func testSubscription(t *testing.T, id uint, sid string, priceCents int64) *subscription.Subscription {
	t.Helper()
	now := time.Now().UTC()
	next := now.AddDate(0, 0, 7)
	sub, err := subscription.Reconstruct(subscription.Params{
		ID:                id,
		SID:               sid,
		TenantID:          1,
		Provider:          vo.ProviderLoop,
		CustomerID:        "cust_1",
		ProductID:         "prod_1",
		Quantity:          1,
		PriceCents:        priceCents,
		Currency:          "USD",
		Frequency:         vo.FrequencyWeekly,
		FrequencyInterval: 1,
		Status:            vo.StatusActive,
		NextBillingDate:   &next,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	require.NoError(t, err)
	return sub
}
