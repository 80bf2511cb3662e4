package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/mappers"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/constants"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ActivityMapper
	logger logger.Interface
}

func NewActivityRepository(gormDB *gorm.DB, logger logger.Interface) subscription.ActivityRepository {
	return &ActivityRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewActivityMapper(),
		logger: logger,
	}
}

// Append inserts an activity row. Appends deliberately bypass any ambient
// transaction so a rolled-back mutation still leaves its audit trace, and a
// failed append never fails the mutation that produced it.
func (r *ActivityRepositoryImpl) Append(ctx context.Context, entity *subscription.Activity) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map activity entity to model", "error", err)
		return fmt.Errorf("failed to map activity entity: %w", err)
	}
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixActivity, id.DefaultLength)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append activity",
			"subscription_id", model.SubscriptionID,
			"activity_type", model.ActivityType,
			"error", err)
		return fmt.Errorf("failed to append activity: %w", err)
	}

	entity.SetIDFromStore(model.ID)
	entity.SetSID(model.SID)
	return nil
}

func (r *ActivityRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint, page, pageSize int) ([]*subscription.Activity, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("subscription_id = ?", subscriptionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count activities", "subscription_id", subscriptionID, "error", err)
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var rows []*models.ActivityModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list activities", "subscription_id", subscriptionID, "error", err)
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map activities: %w", err)
	}
	return entities, total, nil
}
