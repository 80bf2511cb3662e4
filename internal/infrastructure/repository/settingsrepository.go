package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retain-hq/retain/internal/domain/settings"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

type SettingsRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSettingsRepository(gormDB *gorm.DB, logger logger.Interface) settings.Repository {
	return &SettingsRepositoryImpl{db: gormDB, logger: logger}
}

// Get returns the tenant's settings row, or defaults when no row exists yet.
// The row is only materialized by the first Upsert.
func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*settings.Settings, error) {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant in context")
	}

	var model models.TenantSettingsModel
	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("key = ?", settings.DefaultKey).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.Defaults(tenantID), nil
		}
		r.logger.Errorw("failed to get tenant settings", "error", err)
		return nil, fmt.Errorf("failed to get tenant settings: %w", err)
	}

	return &settings.Settings{
		Key:                     model.Key,
		TenantID:                model.TenantID,
		MaxPauseDays:            model.MaxPauseDays,
		AllowCustomerPause:      model.AllowCustomerPause,
		AllowCustomerSkip:       model.AllowCustomerSkip,
		CancellationFlowEnabled: model.CancellationFlowEnabled,
		NotificationEmail:       model.NotificationEmail,
		UpdatedAt:               model.UpdatedAt,
	}, nil
}

// Upsert writes the full settings row, creating it on first write.
func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, s *settings.Settings) error {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return fmt.Errorf("no tenant in context")
	}

	model := models.TenantSettingsModel{
		Key:                     settings.DefaultKey,
		TenantID:                tenantID,
		MaxPauseDays:            s.MaxPauseDays,
		AllowCustomerPause:      s.AllowCustomerPause,
		AllowCustomerSkip:       s.AllowCustomerSkip,
		CancellationFlowEnabled: s.CancellationFlowEnabled,
		NotificationEmail:       s.NotificationEmail,
		UpdatedAt:               s.UpdatedAt,
	}

	// The explicit column list forces zero-valued boolean columns into the
	// INSERT; otherwise GORM omits them in favor of their column defaults
	// and a false flag can never be written.
	conn := db.GetTxFromContext(ctx, r.db)
	err := conn.Select(
		"key", "tenant_id", "max_pause_days", "allow_customer_pause",
		"allow_customer_skip", "cancellation_flow_enabled",
		"notification_email", "updated_at",
	).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}, {Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"max_pause_days", "allow_customer_pause", "allow_customer_skip",
			"cancellation_flow_enabled", "notification_email", "updated_at",
		}),
	}).Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert tenant settings", "error", err)
		return fmt.Errorf("failed to upsert tenant settings: %w", err)
	}

	return nil
}
