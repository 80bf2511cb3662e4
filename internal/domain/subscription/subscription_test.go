package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

func validParams() Params {
	return Params{
		SID:        "sub_test123",
		TenantID:   1,
		Provider:   vo.ProviderLoop,
		CustomerID: "cust_1",
		ProductID:  "prod_1",
		Quantity:   2,
		PriceCents: 2500,
		Frequency:  vo.FrequencyMonthly,
	}
}

func TestNewSubscription(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		p := validParams()
		p.Quantity = 0
		p.FrequencyInterval = 0

		sub, err := NewSubscription(p)
		require.NoError(t, err)

		assert.Equal(t, vo.StatusPending, sub.Status())
		assert.Equal(t, 1, sub.Quantity())
		assert.Equal(t, 1, sub.FrequencyInterval())
		assert.Equal(t, "USD", sub.Currency())
		assert.Equal(t, 1, sub.Version())
	})

	t.Run("rejects missing tenant", func(t *testing.T) {
		p := validParams()
		p.TenantID = 0
		_, err := NewSubscription(p)
		assert.Error(t, err)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		p := validParams()
		p.Provider = vo.Provider("stripe")
		_, err := NewSubscription(p)
		assert.Error(t, err)
	})

	t.Run("rejects cancelled at creation", func(t *testing.T) {
		p := validParams()
		p.Status = vo.StatusCancelled
		_, err := NewSubscription(p)
		assert.Error(t, err)
	})

	t.Run("rejects discount over price", func(t *testing.T) {
		p := validParams()
		p.DiscountCents = 9999
		_, err := NewSubscription(p)
		assert.Error(t, err)
	})
}

func TestReconstruct(t *testing.T) {
	p := validParams()
	p.ID = 42
	p.Status = vo.StatusActive
	p.FrequencyInterval = 1
	p.Version = 7
	p.CreatedAt = time.Now().Add(-time.Hour)
	p.UpdatedAt = time.Now()

	sub, err := Reconstruct(p)
	require.NoError(t, err)
	assert.Equal(t, uint(42), sub.ID())
	assert.Equal(t, 7, sub.Version())

	p.ID = 0
	_, err = Reconstruct(p)
	assert.Error(t, err)
}

func TestSubscriptionLifecycle(t *testing.T) {
	newActive := func(t *testing.T) *Subscription {
		p := validParams()
		p.Status = vo.StatusActive
		sub, err := NewSubscription(p)
		require.NoError(t, err)
		return sub
	}

	t.Run("pause stamps reason and timestamps", func(t *testing.T) {
		sub := newActive(t)
		resumeAt := time.Now().AddDate(0, 1, 0)
		sub.Pause("too expensive", &resumeAt)

		assert.Equal(t, vo.StatusPaused, sub.Status())
		require.NotNil(t, sub.PauseReason())
		assert.Equal(t, "too expensive", *sub.PauseReason())
		assert.NotNil(t, sub.PausedAt())
		assert.Equal(t, resumeAt, *sub.AutoResumeAt())
	})

	t.Run("pause when already paused re-stamps", func(t *testing.T) {
		sub := newActive(t)
		sub.Pause("first", nil)
		first := *sub.PausedAt()
		time.Sleep(2 * time.Millisecond)
		sub.Pause("second", nil)

		assert.Equal(t, "second", *sub.PauseReason())
		assert.True(t, sub.PausedAt().After(first))
	})

	t.Run("resume clears pause state", func(t *testing.T) {
		sub := newActive(t)
		sub.Pause("moving house", nil)
		sub.Resume()

		assert.Equal(t, vo.StatusActive, sub.Status())
		assert.Nil(t, sub.PauseReason())
		assert.Nil(t, sub.PausedAt())
		assert.Nil(t, sub.AutoResumeAt())
	})

	t.Run("resume reactivates a cancelled subscription", func(t *testing.T) {
		sub := newActive(t)
		sub.Cancel("not needed")
		sub.Resume()

		assert.Equal(t, vo.StatusActive, sub.Status())
		assert.Nil(t, sub.CancelReason())
		assert.Nil(t, sub.CancelledAt())
	})

	t.Run("cancel clears pause state", func(t *testing.T) {
		sub := newActive(t)
		sub.Pause("vacation", nil)
		sub.Cancel("churned")

		assert.Equal(t, vo.StatusCancelled, sub.Status())
		assert.Equal(t, "churned", *sub.CancelReason())
		assert.Nil(t, sub.PauseReason())
		assert.Nil(t, sub.PausedAt())
	})

	t.Run("mutations bump version", func(t *testing.T) {
		sub := newActive(t)
		v := sub.Version()
		sub.Pause("x", nil)
		sub.Resume()
		sub.Cancel("y")
		assert.Equal(t, v+3, sub.Version())
	})
}

func TestUpdateFrequency(t *testing.T) {
	p := validParams()
	p.Status = vo.StatusActive
	next := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	p.NextBillingDate = &next
	sub, err := NewSubscription(p)
	require.NoError(t, err)

	require.NoError(t, sub.UpdateFrequency(vo.FrequencyQuarterly, 2))
	assert.Equal(t, vo.FrequencyQuarterly, sub.Frequency())
	assert.Equal(t, 2, sub.FrequencyInterval())
	// The next billing date stays untouched until explicitly recomputed.
	assert.Equal(t, next, *sub.NextBillingDate())

	assert.Error(t, sub.UpdateFrequency(vo.Frequency("daily"), 1))
	assert.Error(t, sub.UpdateFrequency(vo.FrequencyMonthly, 13))
}

func TestUpdatePricing(t *testing.T) {
	sub, err := NewSubscription(validParams())
	require.NoError(t, err)

	require.NoError(t, sub.UpdatePricing(3000, 500))
	assert.Equal(t, int64(3000), sub.PriceCents())
	assert.Equal(t, int64(500), sub.DiscountCents())

	assert.Error(t, sub.UpdatePricing(1000, 1001))
	assert.Error(t, sub.UpdatePricing(-1, 0))
}

func TestRecordBilledOrder(t *testing.T) {
	p := validParams()
	p.Status = vo.StatusActive
	sub, err := NewSubscription(p)
	require.NoError(t, err)

	billedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	sub.RecordBilledOrder(4500, billedAt)

	assert.Equal(t, 1, sub.TotalOrders())
	assert.Equal(t, int64(4500), sub.TotalSpentCents())
	assert.Equal(t, billedAt, *sub.LastBillingDate())
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), *sub.NextBillingDate())
}

func TestMonthlyEquivalentCents(t *testing.T) {
	tests := []struct {
		name     string
		freq     vo.Frequency
		interval int
		price    int64
		discount int64
		quantity int
		want     float64
	}{
		{"monthly baseline", vo.FrequencyMonthly, 1, 2500, 0, 1, 2500},
		{"weekly multiplies", vo.FrequencyWeekly, 1, 1000, 0, 1, 4330},
		{"biweekly multiplies", vo.FrequencyBiweekly, 1, 1000, 0, 1, 2170},
		{"quarterly divides", vo.FrequencyQuarterly, 1, 3000, 0, 1, 1000},
		{"annually divides", vo.FrequencyAnnually, 1, 12000, 0, 1, 1000},
		{"interval divides", vo.FrequencyMonthly, 3, 3000, 0, 1, 1000},
		{"discount and quantity applied", vo.FrequencyMonthly, 1, 2500, 500, 3, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			p.Status = vo.StatusActive
			p.Frequency = tt.freq
			p.FrequencyInterval = tt.interval
			p.PriceCents = tt.price
			p.DiscountCents = tt.discount
			p.Quantity = tt.quantity

			sub, err := NewSubscription(p)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, sub.MonthlyEquivalentCents(), 1e-6)
		})
	}
}
