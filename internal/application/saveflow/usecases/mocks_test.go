package usecases

import (
	"context"
	"time"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/shared/events"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type mockFlowRepository struct {
	CreateFunc                func(ctx context.Context, flow *saveflow.SaveFlow) error
	GetByIDFunc               func(ctx context.Context, id uint) (*saveflow.SaveFlow, error)
	GetBySIDFunc              func(ctx context.Context, sid string) (*saveflow.SaveFlow, error)
	UpdateFunc                func(ctx context.Context, flow *saveflow.SaveFlow) error
	DeleteFunc                func(ctx context.Context, id uint) error
	ListFunc                  func(ctx context.Context) ([]*saveflow.SaveFlow, error)
	ListEnabledByPriorityFunc func(ctx context.Context) ([]*saveflow.SaveFlow, error)
	IncrementTriggeredFunc    func(ctx context.Context, flowID uint) error
	IncrementSavedFunc        func(ctx context.Context, flowID uint, revenueSavedCents int64) error
}

func (m *mockFlowRepository) Create(ctx context.Context, flow *saveflow.SaveFlow) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, flow)
	}
	return nil
}

func (m *mockFlowRepository) GetByID(ctx context.Context, id uint) (*saveflow.SaveFlow, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFlowRepository) GetBySID(ctx context.Context, sid string) (*saveflow.SaveFlow, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockFlowRepository) Update(ctx context.Context, flow *saveflow.SaveFlow) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, flow)
	}
	return nil
}

func (m *mockFlowRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockFlowRepository) List(ctx context.Context) ([]*saveflow.SaveFlow, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockFlowRepository) ListEnabledByPriority(ctx context.Context) ([]*saveflow.SaveFlow, error) {
	if m.ListEnabledByPriorityFunc != nil {
		return m.ListEnabledByPriorityFunc(ctx)
	}
	return nil, nil
}

func (m *mockFlowRepository) IncrementTriggered(ctx context.Context, flowID uint) error {
	if m.IncrementTriggeredFunc != nil {
		return m.IncrementTriggeredFunc(ctx, flowID)
	}
	return nil
}

func (m *mockFlowRepository) IncrementSaved(ctx context.Context, flowID uint, revenueSavedCents int64) error {
	if m.IncrementSavedFunc != nil {
		return m.IncrementSavedFunc(ctx, flowID, revenueSavedCents)
	}
	return nil
}

type mockAttemptRepository struct {
	CreateFunc                 func(ctx context.Context, attempt *saveflow.Attempt) error
	GetByIDFunc                func(ctx context.Context, id uint) (*saveflow.Attempt, error)
	GetBySIDFunc               func(ctx context.Context, sid string) (*saveflow.Attempt, error)
	UpdateFunc                 func(ctx context.Context, attempt *saveflow.Attempt) error
	ListByFlowFunc             func(ctx context.Context, flowID uint) ([]*saveflow.Attempt, error)
	ListBySubscriptionFunc     func(ctx context.Context, subscriptionID uint) ([]*saveflow.Attempt, error)
	ListCompletedWithOfferFunc func(ctx context.Context) ([]*saveflow.Attempt, error)
	ExpirePendingFunc          func(ctx context.Context, olderThanHours int) (int64, error)
}

func (m *mockAttemptRepository) Create(ctx context.Context, attempt *saveflow.Attempt) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attempt)
	}
	return nil
}

func (m *mockAttemptRepository) GetByID(ctx context.Context, id uint) (*saveflow.Attempt, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAttemptRepository) GetBySID(ctx context.Context, sid string) (*saveflow.Attempt, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockAttemptRepository) Update(ctx context.Context, attempt *saveflow.Attempt) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, attempt)
	}
	return nil
}

func (m *mockAttemptRepository) ListByFlow(ctx context.Context, flowID uint) ([]*saveflow.Attempt, error) {
	if m.ListByFlowFunc != nil {
		return m.ListByFlowFunc(ctx, flowID)
	}
	return nil, nil
}

func (m *mockAttemptRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*saveflow.Attempt, error) {
	if m.ListBySubscriptionFunc != nil {
		return m.ListBySubscriptionFunc(ctx, subscriptionID)
	}
	return nil, nil
}

func (m *mockAttemptRepository) ListCompletedWithOffer(ctx context.Context) ([]*saveflow.Attempt, error) {
	if m.ListCompletedWithOfferFunc != nil {
		return m.ListCompletedWithOfferFunc(ctx)
	}
	return nil, nil
}

func (m *mockAttemptRepository) ExpirePending(ctx context.Context, olderThanHours int) (int64, error) {
	if m.ExpirePendingFunc != nil {
		return m.ExpirePendingFunc(ctx, olderThanHours)
	}
	return 0, nil
}

type mockSubscriptionRepository struct {
	GetByIDFunc  func(ctx context.Context, id uint) (*subscription.Subscription, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*subscription.Subscription, error)
	UpdateFunc   func(ctx context.Context, sub *subscription.Subscription) error
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

type mockOrderRepository struct {
	SkipEarliestScheduledFunc func(ctx context.Context, subscriptionID uint) (int64, error)
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
	if m.SkipEarliestScheduledFunc != nil {
		return m.SkipEarliestScheduledFunc(ctx, subscriptionID)
	}
	return 0, nil
}

func (m *mockOrderRepository) SkipAllScheduled(ctx context.Context, subscriptionID uint) (int64, error) {
	return 0, nil
}

func (m *mockOrderRepository) SubscriptionIDsWithScheduledOrders(ctx context.Context) ([]uint, error) {
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

type mockPublisher struct {
	Published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) {
	m.Published = append(m.Published, event)
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

func testFlow(id uint, sid, name string, priority int, event string, offers saveflow.OfferList) *saveflow.SaveFlow {
	flow, err := saveflow.NewSaveFlow(1, name, priority,
		saveflow.TriggerConditions{Event: event},
		saveflow.StepList{{Type: saveflow.StepConfirmAction, ConfirmAction: &saveflow.ConfirmActionStep{}}},
		offers,
	)
	if err != nil {
		panic(err)
	}
	flow.SetIDFromStore(id)
	flow.SetSID(sid)
	return flow
}

func testAttempt(id uint, sid string, flowID, subscriptionID uint) *saveflow.Attempt {
	attempt, err := saveflow.NewAttempt(1, flowID, subscriptionID)
	if err != nil {
		panic(err)
	}
	attempt.SetIDFromStore(id)
	attempt.SetSID(sid)
	return attempt
}

func testSubscription(id uint, sid string, priceCents int64) *subscription.Subscription {
	sub, err := subscription.Reconstruct(subscription.Params{
		ID:                id,
		SID:               sid,
		TenantID:          1,
		Provider:          vo.ProviderLoop,
		CustomerID:        "cust_1",
		CustomerEmail:     "jamie@example.com",
		ProductID:         "prod_1",
		Quantity:          1,
		PriceCents:        priceCents,
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
