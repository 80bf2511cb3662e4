package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/mappers"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type SaveFlowRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SaveFlowMapper
	logger logger.Interface
}

func NewSaveFlowRepository(gormDB *gorm.DB, logger logger.Interface) saveflow.Repository {
	return &SaveFlowRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewSaveFlowMapper(),
		logger: logger,
	}
}

func (r *SaveFlowRepositoryImpl) Create(ctx context.Context, entity *saveflow.SaveFlow) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map save flow entity to model", "error", err)
		return fmt.Errorf("failed to map save flow entity: %w", err)
	}
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixSaveFlow, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create save flow", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create save flow: %w", err)
	}

	entity.SetIDFromStore(model.ID)
	entity.SetSID(model.SID)
	r.logger.Infow("save flow created", "id", model.ID, "sid", model.SID, "name", model.Name)
	return nil
}

func (r *SaveFlowRepositoryImpl) GetByID(ctx context.Context, flowID uint) (*saveflow.SaveFlow, error) {
	var model models.SaveFlowModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, flowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get save flow by ID", "id", flowID, "error", err)
		return nil, fmt.Errorf("failed to get save flow: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SaveFlowRepositoryImpl) GetBySID(ctx context.Context, sid string) (*saveflow.SaveFlow, error) {
	var model models.SaveFlowModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get save flow by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get save flow: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Update persists flow configuration. Counter columns are excluded; they are
// only ever moved by the atomic increment methods below.
func (r *SaveFlowRepositoryImpl) Update(ctx context.Context, entity *saveflow.SaveFlow) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map save flow entity to model", "error", err)
		return fmt.Errorf("failed to map save flow entity: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.SaveFlowModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", model.ID).
		Select("name", "description", "priority", "enabled", "trigger_conditions", "steps", "offers", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update save flow", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update save flow: %w", result.Error)
	}

	return nil
}

func (r *SaveFlowRepositoryImpl) Delete(ctx context.Context, flowID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.
		Scopes(db.TenantScope(ctx)).
		Delete(&models.SaveFlowModel{}, flowID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete save flow", "id", flowID, "error", result.Error)
		return fmt.Errorf("failed to delete save flow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return saveflow.ErrFlowNotFound
	}

	r.logger.Infow("save flow deleted", "id", flowID)
	return nil
}

func (r *SaveFlowRepositoryImpl) List(ctx context.Context) ([]*saveflow.SaveFlow, error) {
	var rows []*models.SaveFlowModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Order("priority DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list save flows", "error", err)
		return nil, fmt.Errorf("failed to list save flows: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SaveFlowRepositoryImpl) ListEnabledByPriority(ctx context.Context) ([]*saveflow.SaveFlow, error) {
	var rows []*models.SaveFlowModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("enabled = ?", true).
		Order("priority DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list enabled save flows", "error", err)
		return nil, fmt.Errorf("failed to list enabled save flows: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

// IncrementTriggered bumps total_triggered in a single statement. Concurrent
// attempts are safe only because this never reads the counter first.
func (r *SaveFlowRepositoryImpl) IncrementTriggered(ctx context.Context, flowID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.SaveFlowModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", flowID).
		Update("total_triggered", gorm.Expr("total_triggered + 1"))
	if result.Error != nil {
		r.logger.Errorw("failed to increment triggered counter", "flow_id", flowID, "error", result.Error)
		return fmt.Errorf("failed to increment triggered counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return saveflow.ErrFlowNotFound
	}

	return nil
}

func (r *SaveFlowRepositoryImpl) IncrementSaved(ctx context.Context, flowID uint, revenueSavedCents int64) error {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.SaveFlowModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", flowID).
		Updates(map[string]interface{}{
			"total_saved":         gorm.Expr("total_saved + 1"),
			"revenue_saved_cents": gorm.Expr("revenue_saved_cents + ?", revenueSavedCents),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to increment saved counters", "flow_id", flowID, "error", result.Error)
		return fmt.Errorf("failed to increment saved counters: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return saveflow.ErrFlowNotFound
	}

	return nil
}

type SaveAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AttemptMapper
	logger logger.Interface
}

func NewSaveAttemptRepository(gormDB *gorm.DB, logger logger.Interface) saveflow.AttemptRepository {
	return &SaveAttemptRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewAttemptMapper(),
		logger: logger,
	}
}

func (r *SaveAttemptRepositoryImpl) Create(ctx context.Context, entity *saveflow.Attempt) error {
	model := r.mapper.ToModel(entity)
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixSaveAttempt, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create save attempt", "flow_id", model.FlowID, "error", err)
		return fmt.Errorf("failed to create save attempt: %w", err)
	}

	entity.SetIDFromStore(model.ID)
	entity.SetSID(model.SID)
	return nil
}

func (r *SaveAttemptRepositoryImpl) GetByID(ctx context.Context, attemptID uint) (*saveflow.Attempt, error) {
	var model models.SaveAttemptModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, attemptID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get save attempt by ID", "id", attemptID, "error", err)
		return nil, fmt.Errorf("failed to get save attempt: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SaveAttemptRepositoryImpl) GetBySID(ctx context.Context, sid string) (*saveflow.Attempt, error) {
	var model models.SaveAttemptModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get save attempt by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get save attempt: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SaveAttemptRepositoryImpl) Update(ctx context.Context, entity *saveflow.Attempt) error {
	model := r.mapper.ToModel(entity)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.SaveAttemptModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", model.ID).
		Select("outcome", "offer_accepted", "cancel_reason", "revenue_saved_cents", "completed_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update save attempt", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update save attempt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return saveflow.ErrAttemptNotFound
	}

	return nil
}

func (r *SaveAttemptRepositoryImpl) ListByFlow(ctx context.Context, flowID uint) ([]*saveflow.Attempt, error) {
	var rows []*models.SaveAttemptModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("flow_id = ?", flowID).
		Order("started_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list save attempts by flow", "flow_id", flowID, "error", err)
		return nil, fmt.Errorf("failed to list save attempts: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SaveAttemptRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*saveflow.Attempt, error) {
	var rows []*models.SaveAttemptModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("subscription_id = ?", subscriptionID).
		Order("started_at DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list save attempts by subscription", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to list save attempts: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SaveAttemptRepositoryImpl) ListCompletedWithOffer(ctx context.Context) ([]*saveflow.Attempt, error) {
	var rows []*models.SaveAttemptModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("completed_at IS NOT NULL AND offer_accepted IS NOT NULL").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list completed attempts with offers", "error", err)
		return nil, fmt.Errorf("failed to list completed attempts: %w", err)
	}

	return r.mapper.ToEntities(rows)
}

func (r *SaveAttemptRepositoryImpl) ExpirePending(ctx context.Context, olderThanHours int) (int64, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(olderThanHours) * time.Hour)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.SaveAttemptModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("outcome = ? AND started_at < ?", string(saveflow.OutcomePending), cutoff).
		Updates(map[string]interface{}{
			"outcome":      string(saveflow.OutcomeExpired),
			"completed_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to expire pending save attempts", "error", result.Error)
		return 0, fmt.Errorf("failed to expire pending save attempts: %w", result.Error)
	}

	return result.RowsAffected, nil
}
