package mappers

import (
	"fmt"

	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.Status(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	entity, err := subscription.Reconstruct(subscription.Params{
		ID:                     model.ID,
		SID:                    model.SID,
		TenantID:               model.TenantID,
		Provider:               vo.Provider(model.Provider),
		ProviderSubscriptionID: model.ProviderSubscriptionID,
		CustomerID:             model.CustomerID,
		CustomerEmail:          model.CustomerEmail,
		CustomerName:           model.CustomerName,
		ProductID:              model.ProductID,
		VariantID:              model.VariantID,
		Quantity:               model.Quantity,
		PriceCents:             model.PriceCents,
		DiscountCents:          model.DiscountCents,
		Currency:               model.Currency,
		Frequency:              vo.Frequency(model.Frequency),
		FrequencyInterval:      model.FrequencyInterval,
		Status:                 status,
		PauseReason:            model.PauseReason,
		CancelReason:           model.CancelReason,
		PausedAt:               model.PausedAt,
		CancelledAt:            model.CancelledAt,
		AutoResumeAt:           model.AutoResumeAt,
		NextBillingDate:        model.NextBillingDate,
		LastBillingDate:        model.LastBillingDate,
		BillingAnchorDay:       model.BillingAnchorDay,
		SellingPlanID:          model.SellingPlanID,
		SellingPlanName:        model.SellingPlanName,
		PaymentCard: vo.PaymentCard{
			Last4:    model.CardLast4,
			Brand:    model.CardBrand,
			ExpMonth: model.CardExpMonth,
			ExpYear:  model.CardExpYear,
		},
		TotalOrders:     model.TotalOrders,
		TotalSpentCents: model.TotalSpentCents,
		SkippedOrders:   model.SkippedOrders,
		LastSyncedAt:    model.LastSyncedAt,
		SyncError:       model.SyncError,
		Version:         model.Version,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	card := entity.PaymentCard()
	return &models.SubscriptionModel{
		ID:                     entity.ID(),
		SID:                    entity.SID(),
		TenantID:               entity.TenantID(),
		Provider:               entity.Provider().String(),
		ProviderSubscriptionID: entity.ProviderSubscriptionID(),
		CustomerID:             entity.CustomerID(),
		CustomerEmail:          entity.CustomerEmail(),
		CustomerName:           entity.CustomerName(),
		ProductID:              entity.ProductID(),
		VariantID:              entity.VariantID(),
		Quantity:               entity.Quantity(),
		PriceCents:             entity.PriceCents(),
		DiscountCents:          entity.DiscountCents(),
		Currency:               entity.Currency(),
		Frequency:              entity.Frequency().String(),
		FrequencyInterval:      entity.FrequencyInterval(),
		Status:                 entity.Status().String(),
		PauseReason:            entity.PauseReason(),
		CancelReason:           entity.CancelReason(),
		PausedAt:               entity.PausedAt(),
		CancelledAt:            entity.CancelledAt(),
		AutoResumeAt:           entity.AutoResumeAt(),
		NextBillingDate:        entity.NextBillingDate(),
		LastBillingDate:        entity.LastBillingDate(),
		BillingAnchorDay:       entity.BillingAnchorDay(),
		SellingPlanID:          entity.SellingPlanID(),
		SellingPlanName:        entity.SellingPlanName(),
		CardLast4:              card.Last4,
		CardBrand:              card.Brand,
		CardExpMonth:           card.ExpMonth,
		CardExpYear:            card.ExpYear,
		TotalOrders:            entity.TotalOrders(),
		TotalSpentCents:        entity.TotalSpentCents(),
		SkippedOrders:          entity.SkippedOrders(),
		LastSyncedAt:           entity.LastSyncedAt(),
		SyncError:              entity.SyncError(),
		Version:                entity.Version(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subs []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subs))
	for _, model := range subs {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
