package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

func TestChurnUseCase_Execute(t *testing.T) {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	repo := &mockSubscriptionRepository{
		CountCancelledBetweenFunc: func(ctx context.Context, gotFrom, gotTo time.Time) (int64, error) {
			assert.Equal(t, from, gotFrom)
			assert.Equal(t, to, gotTo)
			return 5, nil
		},
		CountByStatusFunc: func(ctx context.Context, status vo.Status) (int64, error) {
			return 95, nil
		},
	}

	uc := NewChurnUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Cancelled)
	assert.Equal(t, int64(95), result.ActiveAtEnd)
	assert.InDelta(t, 0.05, result.ChurnRate, 1e-9)
}

func TestChurnUseCase_Execute_EmptyPopulation(t *testing.T) {
	repo := &mockSubscriptionRepository{}

	uc := NewChurnUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(),
		time.Now().Add(-30*24*time.Hour), time.Now())

	require.NoError(t, err)
	assert.Zero(t, result.ChurnRate, "churn is zero, not NaN, for an empty store")
}

func TestChurnUseCase_Execute_InvalidWindow(t *testing.T) {
	uc := NewChurnUseCase(&mockSubscriptionRepository{}, &mockLogger{})

	now := time.Now()
	_, err := uc.Execute(context.Background(), now, now)
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), now, now.Add(-time.Hour))
	require.Error(t, err)
}

func TestChurnUseCase_StatusCounts(t *testing.T) {
	counts := map[vo.Status]int64{
		vo.StatusActive:    40,
		vo.StatusPaused:    10,
		vo.StatusCancelled: 8,
		vo.StatusExpired:   2,
	}
	repo := &mockSubscriptionRepository{
		CountByStatusFunc: func(ctx context.Context, status vo.Status) (int64, error) {
			return counts[status], nil
		},
	}

	uc := NewChurnUseCase(repo, &mockLogger{})
	result, err := uc.StatusCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(40), result.Active)
	assert.Equal(t, int64(10), result.Paused)
	assert.Equal(t, int64(8), result.Cancelled)
	assert.Equal(t, int64(2), result.Expired)
	assert.Equal(t, int64(60), result.Total)
}
