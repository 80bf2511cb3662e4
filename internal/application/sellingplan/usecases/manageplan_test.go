package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

func planContext() context.Context {
	return tenantctx.WithTenant(context.Background(), tenantctx.Tenant{ID: 1, Slug: "acme-coffee"})
}

func TestManagePlanUseCase_Create(t *testing.T) {
	var created *sellingplan.SellingPlan
	planRepo := &mockPlanRepository{
		CreateFunc: func(ctx context.Context, plan *sellingplan.SellingPlan) error {
			plan.SetIDFromStore(1)
			plan.SetSID("sp_new")
			created = plan
			return nil
		},
	}

	uc := NewManagePlanUseCase(planRepo, &mockLogger{})
	result, err := uc.Create(planContext(), CreatePlanCommand{
		Name:              "Quarterly saver",
		Description:       "Every 3 months, 15% off",
		Frequency:         "quarterly",
		FrequencyInterval: 1,
		DiscountType:      "percentage",
		DiscountValue:     15,
		ProductIDs:        []string{"prod_1", "prod_2"},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "sp_new", result.SID)
	assert.Equal(t, "Quarterly saver", created.Name())
	assert.Equal(t, []string{"prod_1", "prod_2"}, created.ProductIDs())
	assert.True(t, created.Enabled())
}

func TestManagePlanUseCase_CreateRejectsUnknownFrequency(t *testing.T) {
	uc := NewManagePlanUseCase(&mockPlanRepository{}, &mockLogger{})

	_, err := uc.Create(planContext(), CreatePlanCommand{
		Name:          "Broken",
		Frequency:     "fortnightly",
		DiscountType:  "percentage",
		DiscountValue: 10,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestManagePlanUseCase_CreateRequiresTenantScope(t *testing.T) {
	uc := NewManagePlanUseCase(&mockPlanRepository{}, &mockLogger{})

	_, err := uc.Create(context.Background(), CreatePlanCommand{
		Name:          "Orphan",
		Frequency:     "monthly",
		DiscountType:  "percentage",
		DiscountValue: 10,
	})

	require.Error(t, err)
}

func TestManagePlanUseCase_UpdateCadenceAndDiscount(t *testing.T) {
	plan := testPlan(t, 1, "sp_live", "Live plan", sellingplan.DiscountPercentage, 10)
	var persisted *sellingplan.SellingPlan
	planRepo := &mockPlanRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*sellingplan.SellingPlan, error) {
			return plan, nil
		},
		UpdateFunc: func(ctx context.Context, p *sellingplan.SellingPlan) error {
			persisted = p
			return nil
		},
	}

	frequency := "quarterly"
	value := int64(25)
	uc := NewManagePlanUseCase(planRepo, &mockLogger{})
	result, err := uc.Update(planContext(), UpdatePlanCommand{
		SID:           "sp_live",
		Frequency:     &frequency,
		DiscountValue: &value,
	})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "quarterly", string(persisted.Frequency()))
	// Only the value changes; the discount type is carried over.
	assert.Equal(t, sellingplan.DiscountPercentage, persisted.DiscountType())
	assert.Equal(t, int64(25), persisted.DiscountValue())
	assert.Equal(t, int64(25), result.DiscountValue)
}

func TestManagePlanUseCase_Toggle(t *testing.T) {
	plan := testPlan(t, 1, "sp_live", "Live plan", sellingplan.DiscountFixed, 500)
	updated := false
	planRepo := &mockPlanRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*sellingplan.SellingPlan, error) {
			return plan, nil
		},
		UpdateFunc: func(ctx context.Context, p *sellingplan.SellingPlan) error {
			updated = true
			return nil
		},
	}

	uc := NewManagePlanUseCase(planRepo, &mockLogger{})
	result, err := uc.Toggle(planContext(), "sp_live")

	require.NoError(t, err)
	assert.True(t, updated)
	assert.False(t, result.Enabled)
}

func TestManagePlanUseCase_Delete(t *testing.T) {
	plan := testPlan(t, 42, "sp_old", "Old plan", sellingplan.DiscountFixed, 500)
	var deletedID uint
	planRepo := &mockPlanRepository{
		GetBySIDFunc: func(ctx context.Context, sid string) (*sellingplan.SellingPlan, error) {
			return plan, nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}

	uc := NewManagePlanUseCase(planRepo, &mockLogger{})
	err := uc.Delete(planContext(), "sp_old")

	require.NoError(t, err)
	assert.Equal(t, uint(42), deletedID)
}

func TestManagePlanUseCase_GetNotFound(t *testing.T) {
	uc := NewManagePlanUseCase(&mockPlanRepository{}, &mockLogger{})

	_, err := uc.Get(planContext(), "sp_missing")

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
