package mappers

import (
	"fmt"

	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

type ValidationMapper interface {
	RunToEntity(model *models.ValidationRunModel) (*validation.Run, error)
	RunToModel(entity *validation.Run) *models.ValidationRunModel
	IssueToEntity(model *models.ValidationIssueModel) (*validation.Issue, error)
	IssueToModel(entity *validation.Issue) *models.ValidationIssueModel
	IssuesToEntities(models []*models.ValidationIssueModel) ([]*validation.Issue, error)
}

type ValidationMapperImpl struct{}

func NewValidationMapper() ValidationMapper {
	return &ValidationMapperImpl{}
}

func (m *ValidationMapperImpl) RunToEntity(model *models.ValidationRunModel) (*validation.Run, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := validation.ReconstructRun(
		model.ID,
		model.SID,
		model.TenantID,
		validation.RunStatus(model.Status),
		model.TotalChecked,
		model.IssuesFound,
		model.IssuesFixed,
		model.ErrorMessage,
		model.StartedAt,
		model.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct validation run: %w", err)
	}
	return entity, nil
}

func (m *ValidationMapperImpl) RunToModel(entity *validation.Run) *models.ValidationRunModel {
	if entity == nil {
		return nil
	}

	return &models.ValidationRunModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		TenantID:     entity.TenantID(),
		Status:       string(entity.Status()),
		TotalChecked: entity.TotalChecked(),
		IssuesFound:  entity.IssuesFound(),
		IssuesFixed:  entity.IssuesFixed(),
		ErrorMessage: entity.ErrorMessage(),
		StartedAt:    entity.StartedAt(),
		CompletedAt:  entity.CompletedAt(),
	}
}

func (m *ValidationMapperImpl) IssueToEntity(model *models.ValidationIssueModel) (*validation.Issue, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := validation.ReconstructIssue(
		model.ID,
		model.SID,
		model.TenantID,
		model.RunID,
		model.SubscriptionID,
		validation.IssueType(model.IssueType),
		validation.Severity(model.Severity),
		model.Description,
		model.IsFixed,
		model.FixedAt,
		model.FixedBy,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct validation issue: %w", err)
	}
	return entity, nil
}

func (m *ValidationMapperImpl) IssueToModel(entity *validation.Issue) *models.ValidationIssueModel {
	if entity == nil {
		return nil
	}

	return &models.ValidationIssueModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		TenantID:       entity.TenantID(),
		RunID:          entity.RunID(),
		SubscriptionID: entity.SubscriptionID(),
		IssueType:      string(entity.Type()),
		Severity:       string(entity.Severity()),
		Description:    entity.Description(),
		IsFixed:        entity.IsFixed(),
		FixedAt:        entity.FixedAt(),
		FixedBy:        entity.FixedBy(),
		CreatedAt:      entity.CreatedAt(),
	}
}

func (m *ValidationMapperImpl) IssuesToEntities(issues []*models.ValidationIssueModel) ([]*validation.Issue, error) {
	entities := make([]*validation.Issue, 0, len(issues))
	for _, model := range issues {
		entity, err := m.IssueToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
