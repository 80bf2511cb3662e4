package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

type completeFixture struct {
	flow        *saveflow.SaveFlow
	attempt     *saveflow.Attempt
	sub         *subscription.Subscription
	flowRepo    *mockFlowRepository
	attemptRepo *mockAttemptRepository
	subRepo     *mockSubscriptionRepository
	orderRepo   *mockOrderRepository
	publisher   *mockPublisher

	savedRevenue int64
	savedFlowID  uint
}

func newCompleteFixture(offers saveflow.OfferList) *completeFixture {
	f := &completeFixture{
		flow:      testFlow(5, "sf_primary", "Cancellation rescue", 10, "cancellation", offers),
		attempt:   testAttempt(1, "sa_abc", 5, 10),
		sub:       testSubscription(10, "sub_abc", 2500),
		orderRepo: &mockOrderRepository{},
		publisher: &mockPublisher{},
	}
	f.flowRepo = &mockFlowRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*saveflow.SaveFlow, error) {
			return f.flow, nil
		},
		IncrementSavedFunc: func(ctx context.Context, flowID uint, revenueSavedCents int64) error {
			f.savedFlowID = flowID
			f.savedRevenue = revenueSavedCents
			return nil
		},
	}
	f.attemptRepo = &mockAttemptRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*saveflow.Attempt, error) {
			return f.attempt, nil
		},
	}
	f.subRepo = &mockSubscriptionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Subscription, error) {
			return f.sub, nil
		},
	}
	return f
}

func (f *completeFixture) useCase() *CompleteAttemptUseCase {
	return NewCompleteAttemptUseCase(f.flowRepo, f.attemptRepo, f.subRepo, f.orderRepo,
		&mockActivityRepository{}, f.publisher, &mockLogger{})
}

func TestCompleteAttemptUseCase_Execute_SavedWithoutOffer(t *testing.T) {
	f := newCompleteFixture(nil)

	result, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID: "sa_abc",
		Outcome:    saveflow.OutcomeSaved,
	})

	require.NoError(t, err)
	assert.Equal(t, string(saveflow.OutcomeSaved), result.Outcome)
	assert.Nil(t, result.OfferAccepted)
	// Monthly subscription at $25.00: revenue saved is its monthly equivalent.
	assert.Equal(t, int64(2500), result.RevenueSavedCents)
	assert.Equal(t, int64(2500), f.savedRevenue)
	assert.Equal(t, uint(5), f.savedFlowID)
	assert.Len(t, f.publisher.Published, 1)
}

func TestCompleteAttemptUseCase_Execute_SavedWithDiscountOffer(t *testing.T) {
	f := newCompleteFixture(saveflow.OfferList{{
		Type:  saveflow.OfferDiscount,
		Label: "20% off",
		Discount: &saveflow.DiscountOffer{
			DiscountType: sellingplan.DiscountPercentage,
			Value:        20,
		},
	}})

	idx := 0
	result, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID:         "sa_abc",
		Outcome:            saveflow.OutcomeSaved,
		AcceptedOfferIndex: &idx,
	})

	require.NoError(t, err)
	require.NotNil(t, result.OfferAccepted)
	assert.Equal(t, "20% off", *result.OfferAccepted)
	// 20% off 2500 cents.
	assert.Equal(t, int64(2500), f.sub.PriceCents())
	assert.Equal(t, int64(500), f.sub.DiscountCents())
}

func TestCompleteAttemptUseCase_Execute_SavedWithPauseOffer(t *testing.T) {
	f := newCompleteFixture(saveflow.OfferList{{
		Type:  saveflow.OfferPause,
		Pause: &saveflow.PauseOffer{MaxDays: 30},
	}})

	idx := 0
	result, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID:         "sa_abc",
		Outcome:            saveflow.OutcomeSaved,
		AcceptedOfferIndex: &idx,
	})

	require.NoError(t, err)
	require.NotNil(t, result.OfferAccepted)
	assert.Equal(t, "pause#0", *result.OfferAccepted, "unlabeled offers fall back to type and index")
	assert.Equal(t, vo.StatusPaused, f.sub.Status())
	require.NotNil(t, f.sub.AutoResumeAt())
}

func TestCompleteAttemptUseCase_Execute_SavedWithSkipOffer(t *testing.T) {
	f := newCompleteFixture(saveflow.OfferList{{
		Type: saveflow.OfferSkip,
		Skip: &saveflow.SkipOffer{Count: 3},
	}})

	calls := 0
	f.orderRepo.SkipEarliestScheduledFunc = func(ctx context.Context, subscriptionID uint) (int64, error) {
		calls++
		if calls > 2 {
			// Only two scheduled orders exist.
			return 0, nil
		}
		return 1, nil
	}

	idx := 0
	_, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID:         "sa_abc",
		Outcome:            saveflow.OutcomeSaved,
		AcceptedOfferIndex: &idx,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls, "skip stops at the first empty round")
	assert.Equal(t, 2, f.sub.SkippedOrders())
}

func TestCompleteAttemptUseCase_Execute_Cancelled(t *testing.T) {
	f := newCompleteFixture(nil)

	reason := "too expensive"
	result, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID:   "sa_abc",
		Outcome:      saveflow.OutcomeCancelled,
		CancelReason: &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, string(saveflow.OutcomeCancelled), result.Outcome)
	require.NotNil(t, result.CancelReason)
	assert.Equal(t, "too expensive", *result.CancelReason)
	assert.Zero(t, result.RevenueSavedCents)
	assert.Zero(t, f.savedRevenue, "saved counter must not move for a lost attempt")
	assert.Empty(t, f.publisher.Published)
}

func TestCompleteAttemptUseCase_Execute_AlreadyCompleted(t *testing.T) {
	f := newCompleteFixture(nil)
	require.NoError(t, f.attempt.Complete(saveflow.OutcomeCancelled, nil, nil, 0))

	_, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID: "sa_abc",
		Outcome:    saveflow.OutcomeSaved,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already completed")
}

func TestCompleteAttemptUseCase_Execute_OfferIndexOutOfRange(t *testing.T) {
	f := newCompleteFixture(saveflow.OfferList{{
		Type:  saveflow.OfferPause,
		Pause: &saveflow.PauseOffer{MaxDays: 30},
	}})

	idx := 3
	_, err := f.useCase().Execute(context.Background(), CompleteAttemptCommand{
		AttemptSID:         "sa_abc",
		Outcome:            saveflow.OutcomeSaved,
		AcceptedOfferIndex: &idx,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
