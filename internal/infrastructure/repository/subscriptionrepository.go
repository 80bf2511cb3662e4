package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/mappers"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/constants"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// allowedSubscriptionSortByFields whitelists ORDER BY columns. Unknown sort
// input is clamped to the default ordering, never rejected and never
// interpolated.
var allowedSubscriptionSortByFields = map[string]bool{
	"id":                true,
	"sid":               true,
	"status":            true,
	"customer_id":       true,
	"product_id":        true,
	"price_cents":       true,
	"next_billing_date": true,
	"created_at":        true,
	"updated_at":        true,
}

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(gormDB *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "sid", model.SID, "customer_id", model.CustomerID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, subscriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.SubscriptionModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "sid", "tenant_id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	// Zero rows affected is not an error here. Activity logging happens
	// unconditionally at the service layer regardless of match count.
	if result.RowsAffected == 0 {
		r.logger.Warnw("subscription update matched no rows", "id", model.ID)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Scopes(db.TenantScope(ctx))

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Provider != nil {
		query = query.Where("provider = ?", filter.Provider.String())
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	sortBy := filter.SortBy
	if !allowedSubscriptionSortByFields[sortBy] {
		sortBy = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc || filter.SortBy == "" {
		direction = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var rows []*models.SubscriptionModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	return entities, total, nil
}

func (r *SubscriptionRepositoryImpl) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list all subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SubscriptionRepositoryImpl) ListByStatus(ctx context.Context, status vo.Status) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("status = ?", status.String()).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions by status", "status", status.String(), "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SubscriptionRepositoryImpl) CountByStatus(ctx context.Context, status vo.Status) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("status = ?", status.String()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count subscriptions by status", "status", status.String(), "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	return count, nil
}

func (r *SubscriptionRepositoryImpl) CountCancelledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("status = ?", vo.StatusCancelled.String()).
		Where("cancelled_at >= ? AND cancelled_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count cancelled subscriptions", "error", err)
		return 0, fmt.Errorf("failed to count cancelled subscriptions: %w", err)
	}

	return count, nil
}

func (r *SubscriptionRepositoryImpl) FindAutoResumeDue(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("status = ?", vo.StatusPaused.String()).
		Where("auto_resume_at IS NOT NULL AND auto_resume_at <= ?", now).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to find auto-resume due subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find auto-resume due subscriptions: %w", err)
	}

	return r.mapper.ToEntities(rows)
}
