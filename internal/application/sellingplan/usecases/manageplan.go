package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/sellingplan/dto"
	"github.com/retain-hq/retain/internal/domain/sellingplan"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

type CreatePlanCommand struct {
	Name              string
	Description       string
	Frequency         string
	FrequencyInterval int
	DiscountType      string
	DiscountValue     int64
	ProductIDs        []string
}

type UpdatePlanCommand struct {
	SID               string
	Name              *string
	Description       *string
	Frequency         *string
	FrequencyInterval *int
	DiscountType      *string
	DiscountValue     *int64
	ProductIDs        []string
}

// ManagePlanUseCase groups selling-plan configuration operations.
type ManagePlanUseCase struct {
	planRepo sellingplan.Repository
	logger   logger.Interface
}

func NewManagePlanUseCase(planRepo sellingplan.Repository, logger logger.Interface) *ManagePlanUseCase {
	return &ManagePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ManagePlanUseCase) Create(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return nil, errors.NewUnauthorizedError("no tenant in context")
	}

	frequency, err := vo.ParseFrequency(cmd.Frequency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	plan, err := sellingplan.NewSellingPlan(tenantID, cmd.Name, frequency, cmd.FrequencyInterval,
		sellingplan.DiscountType(cmd.DiscountType), cmd.DiscountValue)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Description != "" {
		plan.UpdateDescription(cmd.Description)
	}
	if len(cmd.ProductIDs) > 0 {
		plan.SetProductIDs(cmd.ProductIDs)
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to create selling plan", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create selling plan: %w", err)
	}

	uc.logger.Infow("selling plan created", "sid", plan.SID(), "name", plan.Name())
	return dto.ToPlanDTO(plan), nil
}

func (uc *ManagePlanUseCase) Update(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	plan, err := uc.load(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := plan.UpdateName(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		plan.UpdateDescription(*cmd.Description)
	}
	if cmd.Frequency != nil || cmd.FrequencyInterval != nil {
		frequency := plan.Frequency()
		interval := plan.FrequencyInterval()
		if cmd.Frequency != nil {
			frequency, err = vo.ParseFrequency(*cmd.Frequency)
			if err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
		}
		if cmd.FrequencyInterval != nil {
			interval = *cmd.FrequencyInterval
		}
		if err := plan.UpdateCadence(frequency, interval); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.DiscountType != nil || cmd.DiscountValue != nil {
		discountType := plan.DiscountType()
		value := plan.DiscountValue()
		if cmd.DiscountType != nil {
			discountType = sellingplan.DiscountType(*cmd.DiscountType)
		}
		if cmd.DiscountValue != nil {
			value = *cmd.DiscountValue
		}
		if err := plan.UpdateDiscount(discountType, value); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.ProductIDs != nil {
		plan.SetProductIDs(cmd.ProductIDs)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update selling plan", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update selling plan: %w", err)
	}
	return dto.ToPlanDTO(plan), nil
}

func (uc *ManagePlanUseCase) Toggle(ctx context.Context, sid string) (*dto.PlanDTO, error) {
	plan, err := uc.load(ctx, sid)
	if err != nil {
		return nil, err
	}

	enabled := plan.Toggle()
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to toggle selling plan", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to toggle selling plan: %w", err)
	}

	uc.logger.Infow("selling plan toggled", "sid", sid, "enabled", enabled)
	return dto.ToPlanDTO(plan), nil
}

func (uc *ManagePlanUseCase) Delete(ctx context.Context, sid string) error {
	plan, err := uc.load(ctx, sid)
	if err != nil {
		return err
	}

	if err := uc.planRepo.Delete(ctx, plan.ID()); err != nil {
		uc.logger.Errorw("failed to delete selling plan", "error", err, "sid", sid)
		return fmt.Errorf("failed to delete selling plan: %w", err)
	}

	uc.logger.Infow("selling plan deleted", "sid", sid, "name", plan.Name())
	return nil
}

func (uc *ManagePlanUseCase) Get(ctx context.Context, sid string) (*dto.PlanDTO, error) {
	plan, err := uc.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	return dto.ToPlanDTO(plan), nil
}

func (uc *ManagePlanUseCase) List(ctx context.Context, enabledOnly bool) ([]*dto.PlanDTO, error) {
	var (
		plans []*sellingplan.SellingPlan
		err   error
	)
	if enabledOnly {
		plans, err = uc.planRepo.ListEnabled(ctx)
	} else {
		plans, err = uc.planRepo.List(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list selling plans", "error", err)
		return nil, fmt.Errorf("failed to list selling plans: %w", err)
	}
	return dto.ToPlanDTOs(plans), nil
}

func (uc *ManagePlanUseCase) load(ctx context.Context, sid string) (*sellingplan.SellingPlan, error) {
	plan, err := uc.planRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get selling plan", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get selling plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("selling plan not found")
	}
	return plan, nil
}
