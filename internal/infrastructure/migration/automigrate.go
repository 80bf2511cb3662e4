package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// GormAutoMigrateStrategy implements migration using GORM's AutoMigrate
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM AutoMigrate strategy
func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

// Migrate runs GORM AutoMigrate over the given models
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto-migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns every persistence model in dependency order.
// Tenants come first; everything else references a tenant id.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TenantModel{},
		&models.TenantSettingsModel{},
		&models.AdminUserModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionOrderModel{},
		&models.ActivityModel{},
		&models.SaveFlowModel{},
		&models.SaveAttemptModel{},
		&models.ValidationRunModel{},
		&models.ValidationIssueModel{},
		&models.SellingPlanModel{},
		&models.EmailQueueModel{},
	}
}
