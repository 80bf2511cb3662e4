package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

func newTestFlow(t *testing.T, tenantID uint, name string, priority int, event string) *saveflow.SaveFlow {
	t.Helper()
	flow, err := saveflow.NewSaveFlow(tenantID, name, priority,
		saveflow.TriggerConditions{Event: event},
		saveflow.StepList{{Type: saveflow.StepConfirmAction, ConfirmAction: &saveflow.ConfirmActionStep{}}},
		saveflow.OfferList{{Type: saveflow.OfferPause, Pause: &saveflow.PauseOffer{MaxDays: 30}}},
	)
	require.NoError(t, err)
	return flow
}

func TestSaveFlowRepository_CreateAndGet(t *testing.T) {
	repo := NewSaveFlowRepository(setupTestDB(t), &testLogger{})
	ctx := tenantCtx(1)

	flow := newTestFlow(t, 1, "Cancellation flow", 10, "cancellation")
	require.NoError(t, repo.Create(ctx, flow))
	assert.NotZero(t, flow.ID())
	assert.NotEmpty(t, flow.SID())

	got, err := repo.GetBySID(ctx, flow.SID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cancellation flow", got.Name())
	assert.Equal(t, "cancellation", got.Trigger().Event)
	require.Len(t, got.Offers(), 1)
	assert.Equal(t, saveflow.OfferPause, got.Offers()[0].Type)
}

func TestSaveFlowRepository_ListEnabledByPriority(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSaveFlowRepository(gdb, &testLogger{})
	ctx := tenantCtx(1)

	low := newTestFlow(t, 1, "Low priority", 5, "cancellation")
	high := newTestFlow(t, 1, "High priority", 50, "cancellation")
	disabled := newTestFlow(t, 1, "Disabled", 99, "cancellation")

	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, high))
	require.NoError(t, repo.Create(ctx, disabled))

	disabled.Toggle()
	require.NoError(t, repo.Update(ctx, disabled))

	flows, err := repo.ListEnabledByPriority(ctx)
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.Equal(t, "High priority", flows[0].Name())
	assert.Equal(t, "Low priority", flows[1].Name())
}

func TestSaveFlowRepository_Counters(t *testing.T) {
	repo := NewSaveFlowRepository(setupTestDB(t), &testLogger{})
	ctx := tenantCtx(1)

	flow := newTestFlow(t, 1, "Cancellation flow", 10, "cancellation")
	require.NoError(t, repo.Create(ctx, flow))

	require.NoError(t, repo.IncrementTriggered(ctx, flow.ID()))
	require.NoError(t, repo.IncrementTriggered(ctx, flow.ID()))
	require.NoError(t, repo.IncrementSaved(ctx, flow.ID(), 2500))

	got, err := repo.GetByID(ctx, flow.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalTriggered())
	assert.Equal(t, 1, got.TotalSaved())
	assert.Equal(t, int64(2500), got.RevenueSavedCents())
}

func TestSaveFlowRepository_CounterOnMissingFlow(t *testing.T) {
	repo := NewSaveFlowRepository(setupTestDB(t), &testLogger{})

	err := repo.IncrementTriggered(tenantCtx(1), 404)
	assert.ErrorIs(t, err, saveflow.ErrFlowNotFound)
}

func TestSaveFlowRepository_UpdateDoesNotTouchCounters(t *testing.T) {
	repo := NewSaveFlowRepository(setupTestDB(t), &testLogger{})
	ctx := tenantCtx(1)

	flow := newTestFlow(t, 1, "Cancellation flow", 10, "cancellation")
	require.NoError(t, repo.Create(ctx, flow))
	require.NoError(t, repo.IncrementTriggered(ctx, flow.ID()))

	require.NoError(t, flow.UpdateName("Renamed flow"))
	require.NoError(t, repo.Update(ctx, flow))

	got, err := repo.GetByID(ctx, flow.ID())
	require.NoError(t, err)
	assert.Equal(t, "Renamed flow", got.Name())
	assert.Equal(t, 1, got.TotalTriggered(), "configuration updates must not reset counters")
}

func setupAttemptDB(t *testing.T) (*gorm.DB, saveflow.AttemptRepository) {
	gdb := setupTestDB(t)
	return gdb, NewSaveAttemptRepository(gdb, &testLogger{})
}

func TestSaveAttemptRepository_CreateAndComplete(t *testing.T) {
	_, repo := setupAttemptDB(t)
	ctx := tenantCtx(1)

	attempt, err := saveflow.NewAttempt(1, 5, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, attempt))
	assert.NotZero(t, attempt.ID())

	offer := "pause#0"
	require.NoError(t, attempt.Complete(saveflow.OutcomeSaved, &offer, nil, 2500))
	require.NoError(t, repo.Update(ctx, attempt))

	got, err := repo.GetBySID(ctx, attempt.SID())
	require.NoError(t, err)
	assert.Equal(t, saveflow.OutcomeSaved, got.Outcome())
	require.NotNil(t, got.OfferAccepted())
	assert.Equal(t, "pause#0", *got.OfferAccepted())
	assert.Equal(t, int64(2500), got.RevenueSavedCents())
	assert.NotNil(t, got.CompletedAt())
}

func TestSaveAttemptRepository_ExpirePending(t *testing.T) {
	gdb, repo := setupAttemptDB(t)
	ctx := tenantCtx(1)

	stale, err := saveflow.NewAttempt(1, 5, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, stale))

	fresh, err := saveflow.NewAttempt(1, 5, 11)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fresh))

	// Age the first attempt past the expiry window.
	err = gdb.Model(&models.SaveAttemptModel{}).
		Where("id = ?", stale.ID()).
		Update("started_at", time.Now().UTC().Add(-72*time.Hour)).Error
	require.NoError(t, err)

	expired, err := repo.ExpirePending(ctx, 48)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	got, err := repo.GetByID(ctx, stale.ID())
	require.NoError(t, err)
	assert.Equal(t, saveflow.OutcomeExpired, got.Outcome())

	untouched, err := repo.GetByID(ctx, fresh.ID())
	require.NoError(t, err)
	assert.Equal(t, saveflow.OutcomePending, untouched.Outcome())
}
