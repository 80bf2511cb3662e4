package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/sellingplan"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

type SellingPlanMapper interface {
	ToEntity(model *models.SellingPlanModel) (*sellingplan.SellingPlan, error)
	ToModel(entity *sellingplan.SellingPlan) (*models.SellingPlanModel, error)
	ToEntities(models []*models.SellingPlanModel) ([]*sellingplan.SellingPlan, error)
}

type SellingPlanMapperImpl struct{}

func NewSellingPlanMapper() SellingPlanMapper {
	return &SellingPlanMapperImpl{}
}

func (m *SellingPlanMapperImpl) ToEntity(model *models.SellingPlanModel) (*sellingplan.SellingPlan, error) {
	if model == nil {
		return nil, nil
	}

	var productIDs []string
	if model.ProductIDs != nil {
		if err := json.Unmarshal(model.ProductIDs, &productIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product IDs: %w", err)
		}
	}

	entity, err := sellingplan.ReconstructSellingPlan(
		model.ID,
		model.SID,
		model.TenantID,
		model.Name,
		model.Description,
		vo.Frequency(model.Frequency),
		model.FrequencyInterval,
		sellingplan.DiscountType(model.DiscountType),
		model.DiscountValue,
		productIDs,
		model.Enabled,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct selling plan: %w", err)
	}
	return entity, nil
}

func (m *SellingPlanMapperImpl) ToModel(entity *sellingplan.SellingPlan) (*models.SellingPlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	productIDs, err := json.Marshal(entity.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product IDs: %w", err)
	}

	return &models.SellingPlanModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		TenantID:          entity.TenantID(),
		Name:              entity.Name(),
		Description:       entity.Description(),
		Frequency:         entity.Frequency().String(),
		FrequencyInterval: entity.FrequencyInterval(),
		DiscountType:      entity.DiscountType().String(),
		DiscountValue:     entity.DiscountValue(),
		ProductIDs:        productIDs,
		Enabled:           entity.Enabled(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *SellingPlanMapperImpl) ToEntities(plans []*models.SellingPlanModel) ([]*sellingplan.SellingPlan, error) {
	entities := make([]*sellingplan.SellingPlan, 0, len(plans))
	for _, model := range plans {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
