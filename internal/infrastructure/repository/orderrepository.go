package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/mappers"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrderMapper
	logger logger.Interface
}

func NewOrderRepository(gormDB *gorm.DB, logger logger.Interface) subscription.OrderRepository {
	return &OrderRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewOrderMapper(),
		logger: logger,
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, entity *subscription.Order) error {
	model := r.mapper.ToModel(entity)
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixOrder, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create order", "subscription_id", model.SubscriptionID, "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	entity.SetIDFromStore(model.ID)
	entity.SetSID(model.SID)
	return nil
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID uint) (*subscription.Order, error) {
	var model models.SubscriptionOrderModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get order by ID", "id", orderID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OrderRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Order, error) {
	var rows []*models.SubscriptionOrderModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("subscription_id = ?", subscriptionID).
		Order("scheduled_at ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list orders", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

// SkipEarliestScheduled runs one set-based UPDATE matching every scheduled
// order at the minimum scheduled_at. Ties on the minimum are all skipped.
func (r *OrderRepositoryImpl) SkipEarliestScheduled(ctx context.Context, subscriptionID uint) (int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.SubscriptionOrderModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("subscription_id = ? AND status = ?", subscriptionID, subscription.OrderStatusScheduled.String()).
		Where("scheduled_at = (?)",
			conn.Session(&gorm.Session{NewDB: true}).
				Model(&models.SubscriptionOrderModel{}).
				Scopes(db.TenantScope(ctx)).
				Select("MIN(scheduled_at)").
				Where("subscription_id = ? AND status = ?", subscriptionID, subscription.OrderStatusScheduled.String()),
		).
		Update("status", subscription.OrderStatusSkipped.String())
	if result.Error != nil {
		r.logger.Errorw("failed to skip earliest scheduled order", "subscription_id", subscriptionID, "error", result.Error)
		return 0, fmt.Errorf("failed to skip order: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *OrderRepositoryImpl) SkipAllScheduled(ctx context.Context, subscriptionID uint) (int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.SubscriptionOrderModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("subscription_id = ? AND status = ?", subscriptionID, subscription.OrderStatusScheduled.String()).
		Update("status", subscription.OrderStatusSkipped.String())
	if result.Error != nil {
		r.logger.Errorw("failed to skip scheduled orders", "subscription_id", subscriptionID, "error", result.Error)
		return 0, fmt.Errorf("failed to skip orders: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *OrderRepositoryImpl) SubscriptionIDsWithScheduledOrders(ctx context.Context) ([]uint, error) {
	var ids []uint

	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionOrderModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("status = ?", subscription.OrderStatusScheduled.String()).
		Distinct("subscription_id").
		Pluck("subscription_id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions with scheduled orders", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions with scheduled orders: %w", err)
	}

	return ids, nil
}
