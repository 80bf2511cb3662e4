package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/sellingplan"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/mappers"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type SellingPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SellingPlanMapper
	logger logger.Interface
}

func NewSellingPlanRepository(gormDB *gorm.DB, logger logger.Interface) sellingplan.Repository {
	return &SellingPlanRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewSellingPlanMapper(),
		logger: logger,
	}
}

func (r *SellingPlanRepositoryImpl) Create(ctx context.Context, plan *sellingplan.SellingPlan) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		r.logger.Errorw("failed to map selling plan entity to model", "error", err)
		return fmt.Errorf("failed to map selling plan entity: %w", err)
	}
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixSellingPlan, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create selling plan", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create selling plan: %w", err)
	}

	plan.SetIDFromStore(model.ID)
	plan.SetSID(model.SID)
	r.logger.Infow("selling plan created", "id", model.ID, "sid", model.SID, "name", model.Name)
	return nil
}

func (r *SellingPlanRepositoryImpl) GetByID(ctx context.Context, planID uint) (*sellingplan.SellingPlan, error) {
	var model models.SellingPlanModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get selling plan", "id", planID, "error", err)
		return nil, fmt.Errorf("failed to get selling plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SellingPlanRepositoryImpl) GetBySID(ctx context.Context, sid string) (*sellingplan.SellingPlan, error) {
	var model models.SellingPlanModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get selling plan by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get selling plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SellingPlanRepositoryImpl) Update(ctx context.Context, plan *sellingplan.SellingPlan) error {
	model, err := r.mapper.ToModel(plan)
	if err != nil {
		r.logger.Errorw("failed to map selling plan entity to model", "error", err)
		return fmt.Errorf("failed to map selling plan entity: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.SellingPlanModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", model.ID).
		Select("name", "description", "frequency", "frequency_interval",
			"discount_type", "discount_value", "product_ids", "enabled", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update selling plan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update selling plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return sellingplan.ErrSellingPlanNotFound
	}

	return nil
}

func (r *SellingPlanRepositoryImpl) Delete(ctx context.Context, planID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.
		Scopes(db.TenantScope(ctx)).
		Delete(&models.SellingPlanModel{}, planID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete selling plan", "id", planID, "error", result.Error)
		return fmt.Errorf("failed to delete selling plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return sellingplan.ErrSellingPlanNotFound
	}

	r.logger.Infow("selling plan deleted", "id", planID)
	return nil
}

func (r *SellingPlanRepositoryImpl) List(ctx context.Context) ([]*sellingplan.SellingPlan, error) {
	var rows []*models.SellingPlanModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list selling plans", "error", err)
		return nil, fmt.Errorf("failed to list selling plans: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SellingPlanRepositoryImpl) ListEnabled(ctx context.Context) ([]*sellingplan.SellingPlan, error) {
	var rows []*models.SellingPlanModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("enabled = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list enabled selling plans", "error", err)
		return nil, fmt.Errorf("failed to list selling plans: %w", err)
	}

	return r.mapper.ToEntities(rows)
}
