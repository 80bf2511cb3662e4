package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSkip(t *testing.T) {
	order, err := NewOrder(1, 10, 2500, "USD", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, OrderStatusScheduled, order.Status())

	require.NoError(t, order.Skip())
	assert.Equal(t, OrderStatusSkipped, order.Status())

	// Skipping twice is a state error, not idempotent.
	assert.Error(t, order.Skip())
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder(1, 0, 100, "USD", time.Now())
	assert.Error(t, err)

	_, err = NewOrder(1, 10, -1, "USD", time.Now())
	assert.Error(t, err)
}

func TestNewActivityActorFallback(t *testing.T) {
	act, err := NewActivity(1, 10, ActivityTypePaused, "paused by customer", ActorType("webhook"))
	require.NoError(t, err)
	assert.Equal(t, ActorSystem, act.ActorType())

	_, err = NewActivity(1, 10, "reticulated", "", ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidActivityType)
}
