package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/infrastructure/email"
)

func newTriggerUseCase(flowRepo *mockFlowRepository, attemptRepo *mockAttemptRepository, subRepo *mockSubscriptionRepository) *TriggerFlowUseCase {
	log := &mockLogger{}
	return NewTriggerFlowUseCase(flowRepo, attemptRepo, subRepo, &mockActivityRepository{},
		email.NewQueue(nil, log), email.NewRenderer(), log)
}

func TestTriggerFlowUseCase_Execute_Success(t *testing.T) {
	sub := testSubscription(10, "sub_abc", 2500)
	flow := testFlow(5, "sf_primary", "Cancellation rescue", 10, "cancellation", nil)

	var created *saveflow.Attempt
	var triggeredFlowID uint

	subRepo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
	}
	flowRepo := &mockFlowRepository{
		ListEnabledByPriorityFunc: func(ctx context.Context) ([]*saveflow.SaveFlow, error) {
			return []*saveflow.SaveFlow{flow}, nil
		},
		IncrementTriggeredFunc: func(ctx context.Context, flowID uint) error {
			triggeredFlowID = flowID
			return nil
		},
	}
	attemptRepo := &mockAttemptRepository{
		CreateFunc: func(ctx context.Context, attempt *saveflow.Attempt) error {
			attempt.SetIDFromStore(1)
			attempt.SetSID("sa_new")
			created = attempt
			return nil
		},
	}

	uc := newTriggerUseCase(flowRepo, attemptRepo, subRepo)
	result, err := uc.Execute(context.Background(), TriggerFlowCommand{
		SubscriptionSID: "sub_abc",
		Event:           "cancellation",
	})

	require.NoError(t, err)
	assert.Equal(t, "sf_primary", result.Flow.SID)
	assert.Equal(t, "sa_new", result.Attempt.SID)
	assert.Equal(t, string(saveflow.OutcomePending), result.Attempt.Outcome)

	require.NotNil(t, created)
	assert.Equal(t, uint(5), created.FlowID())
	assert.Equal(t, uint(10), created.SubscriptionID())
	assert.Equal(t, uint(5), triggeredFlowID)
}

func TestTriggerFlowUseCase_Execute_PicksHighestPriorityMatch(t *testing.T) {
	sub := testSubscription(10, "sub_abc", 2500)
	payment := testFlow(1, "sf_payment", "Payment rescue", 20, "payment_failure", nil)
	cancel := testFlow(2, "sf_cancel", "Cancellation rescue", 10, "cancellation", nil)

	subRepo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
	}
	flowRepo := &mockFlowRepository{
		ListEnabledByPriorityFunc: func(ctx context.Context) ([]*saveflow.SaveFlow, error) {
			// Repository already orders by priority descending.
			return []*saveflow.SaveFlow{payment, cancel}, nil
		},
	}

	uc := newTriggerUseCase(flowRepo, &mockAttemptRepository{}, subRepo)
	result, err := uc.Execute(context.Background(), TriggerFlowCommand{
		SubscriptionSID: "sub_abc",
		Event:           "cancellation",
	})

	require.NoError(t, err)
	assert.Equal(t, "sf_cancel", result.Flow.SID,
		"a higher priority flow for a different event must not swallow the request")
}

func TestTriggerFlowUseCase_Execute_NoFlowForEvent(t *testing.T) {
	sub := testSubscription(10, "sub_abc", 2500)
	subRepo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
	}
	flowRepo := &mockFlowRepository{
		ListEnabledByPriorityFunc: func(ctx context.Context) ([]*saveflow.SaveFlow, error) {
			return []*saveflow.SaveFlow{testFlow(1, "sf_payment", "Payment rescue", 20, "payment_failure", nil)}, nil
		},
	}

	uc := newTriggerUseCase(flowRepo, &mockAttemptRepository{}, subRepo)
	_, err := uc.Execute(context.Background(), TriggerFlowCommand{
		SubscriptionSID: "sub_abc",
		Event:           "cancellation",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no save flow configured")
}

func TestTriggerFlowUseCase_Execute_SubscriptionNotFound(t *testing.T) {
	subRepo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return nil, nil
		},
	}

	uc := newTriggerUseCase(&mockFlowRepository{}, &mockAttemptRepository{}, subRepo)
	_, err := uc.Execute(context.Background(), TriggerFlowCommand{SubscriptionSID: "sub_missing"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTriggerFlowUseCase_Execute_CounterFailureDoesNotFail(t *testing.T) {
	sub := testSubscription(10, "sub_abc", 2500)
	flow := testFlow(5, "sf_primary", "Cancellation rescue", 10, "cancellation", nil)

	subRepo := &mockSubscriptionRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*subscription.Subscription, error) {
			return sub, nil
		},
	}
	flowRepo := &mockFlowRepository{
		ListEnabledByPriorityFunc: func(ctx context.Context) ([]*saveflow.SaveFlow, error) {
			return []*saveflow.SaveFlow{flow}, nil
		},
		IncrementTriggeredFunc: func(ctx context.Context, flowID uint) error {
			return assert.AnError
		},
	}

	uc := newTriggerUseCase(flowRepo, &mockAttemptRepository{}, subRepo)
	result, err := uc.Execute(context.Background(), TriggerFlowCommand{
		SubscriptionSID: "sub_abc",
		Event:           "cancellation",
	})

	require.NoError(t, err, "the attempt row is authoritative; counter bumps are best effort")
	assert.NotNil(t, result)
}
