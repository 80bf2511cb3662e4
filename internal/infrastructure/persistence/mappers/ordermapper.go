package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

type OrderMapper interface {
	ToEntity(model *models.SubscriptionOrderModel) (*subscription.Order, error)
	ToModel(entity *subscription.Order) *models.SubscriptionOrderModel
	ToEntities(models []*models.SubscriptionOrderModel) ([]*subscription.Order, error)
}

type OrderMapperImpl struct{}

func NewOrderMapper() OrderMapper {
	return &OrderMapperImpl{}
}

func (m *OrderMapperImpl) ToEntity(model *models.SubscriptionOrderModel) (*subscription.Order, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructOrder(
		model.ID,
		model.SID,
		model.TenantID,
		model.SubscriptionID,
		subscription.OrderStatus(model.Status),
		model.AmountCents,
		model.Currency,
		model.ScheduledAt,
		model.ProcessedAt,
		model.FailureReason,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order entity: %w", err)
	}
	return entity, nil
}

func (m *OrderMapperImpl) ToModel(entity *subscription.Order) *models.SubscriptionOrderModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionOrderModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		TenantID:       entity.TenantID(),
		SubscriptionID: entity.SubscriptionID(),
		Status:         entity.Status().String(),
		AmountCents:    entity.AmountCents(),
		Currency:       entity.Currency(),
		ScheduledAt:    entity.ScheduledAt(),
		ProcessedAt:    entity.ProcessedAt(),
		FailureReason:  entity.FailureReason(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}

func (m *OrderMapperImpl) ToEntities(orders []*models.SubscriptionOrderModel) ([]*subscription.Order, error) {
	entities := make([]*subscription.Order, 0, len(orders))
	for _, model := range orders {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

type ActivityMapper interface {
	ToEntity(model *models.ActivityModel) (*subscription.Activity, error)
	ToModel(entity *subscription.Activity) (*models.ActivityModel, error)
	ToEntities(models []*models.ActivityModel) ([]*subscription.Activity, error)
}

type ActivityMapperImpl struct{}

func NewActivityMapper() ActivityMapper {
	return &ActivityMapperImpl{}
}

func (m *ActivityMapperImpl) ToEntity(model *models.ActivityModel) (*subscription.Activity, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructActivity(
		model.ID,
		model.SID,
		model.TenantID,
		model.SubscriptionID,
		model.ActivityType,
		model.Description,
		subscription.ActorType(model.ActorType),
		model.ActorID,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct activity entity: %w", err)
	}
	return entity, nil
}

func (m *ActivityMapperImpl) ToModel(entity *subscription.Activity) (*models.ActivityModel, error) {
	if entity == nil {
		return nil, nil
	}

	metadata, err := json.Marshal(entity.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity metadata: %w", err)
	}

	return &models.ActivityModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		TenantID:       entity.TenantID(),
		SubscriptionID: entity.SubscriptionID(),
		ActivityType:   entity.ActivityType(),
		Description:    entity.Description(),
		ActorType:      string(entity.ActorType()),
		ActorID:        entity.ActorID(),
		Metadata:       metadata,
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

func (m *ActivityMapperImpl) ToEntities(activities []*models.ActivityModel) ([]*subscription.Activity, error) {
	entities := make([]*subscription.Activity, 0, len(activities))
	for _, model := range activities {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
