package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

type SaveFlowMapper interface {
	ToEntity(model *models.SaveFlowModel) (*saveflow.SaveFlow, error)
	ToModel(entity *saveflow.SaveFlow) (*models.SaveFlowModel, error)
	ToEntities(models []*models.SaveFlowModel) ([]*saveflow.SaveFlow, error)
}

type SaveFlowMapperImpl struct{}

func NewSaveFlowMapper() SaveFlowMapper {
	return &SaveFlowMapperImpl{}
}

func (m *SaveFlowMapperImpl) ToEntity(model *models.SaveFlowModel) (*saveflow.SaveFlow, error) {
	if model == nil {
		return nil, nil
	}

	var trigger saveflow.TriggerConditions
	if err := json.Unmarshal(model.TriggerConditions, &trigger); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trigger conditions: %w", err)
	}

	// Step and offer decoding runs the tagged-union validation; a stored
	// blob with an unknown kind surfaces here instead of silently no-oping.
	var steps saveflow.StepList
	if err := json.Unmarshal(model.Steps, &steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	var offers saveflow.OfferList
	if err := json.Unmarshal(model.Offers, &offers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offers: %w", err)
	}

	entity, err := saveflow.ReconstructSaveFlow(
		model.ID,
		model.SID,
		model.TenantID,
		model.Name,
		model.Description,
		model.Priority,
		model.Enabled,
		trigger,
		steps,
		offers,
		model.TotalTriggered,
		model.TotalSaved,
		model.RevenueSavedCents,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct save flow entity: %w", err)
	}
	return entity, nil
}

func (m *SaveFlowMapperImpl) ToModel(entity *saveflow.SaveFlow) (*models.SaveFlowModel, error) {
	if entity == nil {
		return nil, nil
	}

	trigger, err := json.Marshal(entity.Trigger())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trigger conditions: %w", err)
	}
	steps, err := json.Marshal(entity.Steps())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal steps: %w", err)
	}
	offers, err := json.Marshal(entity.Offers())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offers: %w", err)
	}

	return &models.SaveFlowModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		TenantID:          entity.TenantID(),
		Name:              entity.Name(),
		Description:       entity.Description(),
		Priority:          entity.Priority(),
		Enabled:           entity.Enabled(),
		TriggerConditions: trigger,
		Steps:             steps,
		Offers:            offers,
		TotalTriggered:    entity.TotalTriggered(),
		TotalSaved:        entity.TotalSaved(),
		RevenueSavedCents: entity.RevenueSavedCents(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *SaveFlowMapperImpl) ToEntities(flows []*models.SaveFlowModel) ([]*saveflow.SaveFlow, error) {
	entities := make([]*saveflow.SaveFlow, 0, len(flows))
	for _, model := range flows {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

type AttemptMapper interface {
	ToEntity(model *models.SaveAttemptModel) (*saveflow.Attempt, error)
	ToModel(entity *saveflow.Attempt) *models.SaveAttemptModel
	ToEntities(models []*models.SaveAttemptModel) ([]*saveflow.Attempt, error)
}

type AttemptMapperImpl struct{}

func NewAttemptMapper() AttemptMapper {
	return &AttemptMapperImpl{}
}

func (m *AttemptMapperImpl) ToEntity(model *models.SaveAttemptModel) (*saveflow.Attempt, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := saveflow.ReconstructAttempt(
		model.ID,
		model.SID,
		model.TenantID,
		model.FlowID,
		model.SubscriptionID,
		saveflow.Outcome(model.Outcome),
		model.OfferAccepted,
		model.CancelReason,
		model.RevenueSavedCents,
		model.StartedAt,
		model.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct save attempt entity: %w", err)
	}
	return entity, nil
}

func (m *AttemptMapperImpl) ToModel(entity *saveflow.Attempt) *models.SaveAttemptModel {
	if entity == nil {
		return nil
	}

	return &models.SaveAttemptModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		TenantID:          entity.TenantID(),
		FlowID:            entity.FlowID(),
		SubscriptionID:    entity.SubscriptionID(),
		Outcome:           string(entity.Outcome()),
		OfferAccepted:     entity.OfferAccepted(),
		CancelReason:      entity.CancelReason(),
		RevenueSavedCents: entity.RevenueSavedCents(),
		StartedAt:         entity.StartedAt(),
		CompletedAt:       entity.CompletedAt(),
	}
}

func (m *AttemptMapperImpl) ToEntities(attempts []*models.SaveAttemptModel) ([]*saveflow.Attempt, error) {
	entities := make([]*saveflow.Attempt, 0, len(attempts))
	for _, model := range attempts {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
