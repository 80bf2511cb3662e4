package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// TenantRepositoryImpl resolves tenants. No tenant scope here: this lookup
// is what establishes the scope in the first place.
type TenantRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTenantRepository(gormDB *gorm.DB, logger logger.Interface) tenant.Repository {
	return &TenantRepositoryImpl{db: gormDB, logger: logger}
}

func (r *TenantRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	var model models.TenantModel

	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		r.logger.Errorw("failed to get tenant by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return toTenantEntity(&model), nil
}

func (r *TenantRepositoryImpl) GetByID(ctx context.Context, tenantID uint) (*tenant.Tenant, error) {
	var model models.TenantModel

	err := r.db.WithContext(ctx).First(&model, tenantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		r.logger.Errorw("failed to get tenant by ID", "id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return toTenantEntity(&model), nil
}

func (r *TenantRepositoryImpl) ListActive(ctx context.Context) ([]*tenant.Tenant, error) {
	var rows []*models.TenantModel

	err := r.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list active tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	tenants := make([]*tenant.Tenant, 0, len(rows))
	for _, model := range rows {
		tenants = append(tenants, toTenantEntity(model))
	}
	return tenants, nil
}

func (r *TenantRepositoryImpl) Create(ctx context.Context, t *tenant.Tenant) error {
	model := models.TenantModel{
		Slug:   t.Slug,
		Name:   t.Name,
		Active: t.Active,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.logger.Errorw("failed to create tenant", "slug", t.Slug, "error", err)
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.UpdatedAt = model.UpdatedAt
	r.logger.Infow("tenant created", "id", model.ID, "slug", model.Slug)
	return nil
}

func toTenantEntity(model *models.TenantModel) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        model.ID,
		Slug:      model.Slug,
		Name:      model.Name,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
