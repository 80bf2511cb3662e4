package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/saveflow/dto"
	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

type CreateFlowCommand struct {
	Name        string
	Description string
	Priority    int
	Trigger     saveflow.TriggerConditions
	Steps       saveflow.StepList
	Offers      saveflow.OfferList
}

type UpdateFlowCommand struct {
	SID         string
	Name        *string
	Description *string
	Priority    *int
	Trigger     *saveflow.TriggerConditions
	Steps       *saveflow.StepList
	Offers      *saveflow.OfferList
}

// ManageFlowUseCase groups save-flow configuration operations. Step and offer
// payloads are validated here, at the ingress, so stored flows are always
// well-formed.
type ManageFlowUseCase struct {
	flowRepo saveflow.Repository
	logger   logger.Interface
}

func NewManageFlowUseCase(flowRepo saveflow.Repository, logger logger.Interface) *ManageFlowUseCase {
	return &ManageFlowUseCase{flowRepo: flowRepo, logger: logger}
}

func (uc *ManageFlowUseCase) Create(ctx context.Context, cmd CreateFlowCommand) (*dto.FlowDTO, error) {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return nil, errors.NewUnauthorizedError("no tenant in context")
	}

	flow, err := saveflow.NewSaveFlow(tenantID, cmd.Name, cmd.Priority, cmd.Trigger, cmd.Steps, cmd.Offers)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Description != "" {
		flow.UpdateDescription(cmd.Description)
	}

	if err := uc.flowRepo.Create(ctx, flow); err != nil {
		uc.logger.Errorw("failed to create save flow", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create save flow: %w", err)
	}

	uc.logger.Infow("save flow created", "sid", flow.SID(), "name", flow.Name(), "priority", flow.Priority())
	return dto.ToFlowDTO(flow), nil
}

func (uc *ManageFlowUseCase) Update(ctx context.Context, cmd UpdateFlowCommand) (*dto.FlowDTO, error) {
	flow, err := uc.load(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := flow.UpdateName(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		flow.UpdateDescription(*cmd.Description)
	}
	if cmd.Priority != nil {
		flow.UpdatePriority(*cmd.Priority)
	}
	if cmd.Trigger != nil {
		if err := flow.UpdateTrigger(*cmd.Trigger); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Steps != nil {
		if err := flow.UpdateSteps(*cmd.Steps); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Offers != nil {
		if err := flow.UpdateOffers(*cmd.Offers); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.flowRepo.Update(ctx, flow); err != nil {
		uc.logger.Errorw("failed to update save flow", "error", err, "sid", cmd.SID)
		return nil, fmt.Errorf("failed to update save flow: %w", err)
	}
	return dto.ToFlowDTO(flow), nil
}

// Toggle flips the enabled flag and returns the new state.
func (uc *ManageFlowUseCase) Toggle(ctx context.Context, sid string) (*dto.FlowDTO, error) {
	flow, err := uc.load(ctx, sid)
	if err != nil {
		return nil, err
	}

	enabled := flow.Toggle()
	if err := uc.flowRepo.Update(ctx, flow); err != nil {
		uc.logger.Errorw("failed to toggle save flow", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to toggle save flow: %w", err)
	}

	uc.logger.Infow("save flow toggled", "sid", sid, "enabled", enabled)
	return dto.ToFlowDTO(flow), nil
}

func (uc *ManageFlowUseCase) Delete(ctx context.Context, sid string) error {
	flow, err := uc.load(ctx, sid)
	if err != nil {
		return err
	}

	if err := uc.flowRepo.Delete(ctx, flow.ID()); err != nil {
		uc.logger.Errorw("failed to delete save flow", "error", err, "sid", sid)
		return fmt.Errorf("failed to delete save flow: %w", err)
	}

	uc.logger.Infow("save flow deleted", "sid", sid, "name", flow.Name())
	return nil
}

func (uc *ManageFlowUseCase) Get(ctx context.Context, sid string) (*dto.FlowDTO, error) {
	flow, err := uc.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	return dto.ToFlowDTO(flow), nil
}

func (uc *ManageFlowUseCase) List(ctx context.Context) ([]*dto.FlowDTO, error) {
	flows, err := uc.flowRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list save flows", "error", err)
		return nil, fmt.Errorf("failed to list save flows: %w", err)
	}
	return dto.ToFlowDTOs(flows), nil
}

func (uc *ManageFlowUseCase) load(ctx context.Context, sid string) (*saveflow.SaveFlow, error) {
	flow, err := uc.flowRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get save flow", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get save flow: %w", err)
	}
	if flow == nil {
		return nil, errors.NewNotFoundError("save flow not found")
	}
	return flow, nil
}
