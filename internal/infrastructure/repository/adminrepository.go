package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/admin"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// AdminRepositoryImpl persists operator accounts. Admin users are global and
// carry no tenant scope.
type AdminRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAdminRepository(gormDB *gorm.DB, logger logger.Interface) admin.Repository {
	return &AdminRepositoryImpl{db: gormDB, logger: logger}
}

func (r *AdminRepositoryImpl) Create(ctx context.Context, user *admin.User) error {
	model := models.AdminUserModel{
		Email:        user.Email(),
		Name:         user.Name(),
		PasswordHash: user.PasswordHash(),
		Active:       user.Active(),
		LastLoginAt:  user.LastLoginAt(),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.logger.Errorw("failed to create admin user", "email", user.Email(), "error", err)
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	user.SetIDFromStore(model.ID)
	r.logger.Infow("admin user created", "id", model.ID, "email", model.Email)
	return nil
}

func (r *AdminRepositoryImpl) GetByEmail(ctx context.Context, email string) (*admin.User, error) {
	var model models.AdminUserModel

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrAdminNotFound
		}
		r.logger.Errorw("failed to get admin user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	return toAdminEntity(&model)
}

func (r *AdminRepositoryImpl) GetByID(ctx context.Context, userID uint) (*admin.User, error) {
	var model models.AdminUserModel

	err := r.db.WithContext(ctx).First(&model, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrAdminNotFound
		}
		r.logger.Errorw("failed to get admin user by ID", "id", userID, "error", err)
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	return toAdminEntity(&model)
}

func (r *AdminRepositoryImpl) Update(ctx context.Context, user *admin.User) error {
	model := models.AdminUserModel{
		ID:           user.ID(),
		Email:        user.Email(),
		Name:         user.Name(),
		PasswordHash: user.PasswordHash(),
		Active:       user.Active(),
		LastLoginAt:  user.LastLoginAt(),
	}

	result := r.db.WithContext(ctx).Model(&models.AdminUserModel{}).
		Where("id = ?", model.ID).
		Select("email", "name", "password_hash", "active", "last_login_at").
		Updates(&model)
	if result.Error != nil {
		r.logger.Errorw("failed to update admin user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update admin user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return admin.ErrAdminNotFound
	}

	return nil
}

func toAdminEntity(model *models.AdminUserModel) (*admin.User, error) {
	return admin.ReconstructUser(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		model.Active,
		model.LastLoginAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
