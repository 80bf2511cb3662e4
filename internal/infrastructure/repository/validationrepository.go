package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/mappers"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/constants"
	"github.com/retain-hq/retain/internal/shared/db"
	"github.com/retain-hq/retain/internal/shared/id"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type ValidationRunRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ValidationMapper
	logger logger.Interface
}

func NewValidationRunRepository(gormDB *gorm.DB, logger logger.Interface) validation.RunRepository {
	return &ValidationRunRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewValidationMapper(),
		logger: logger,
	}
}

func (r *ValidationRunRepositoryImpl) Create(ctx context.Context, run *validation.Run) error {
	model := r.mapper.RunToModel(run)
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixValidationRun, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create validation run", "error", err)
		return fmt.Errorf("failed to create validation run: %w", err)
	}

	run.SetIDFromStore(model.ID)
	run.SetSID(model.SID)
	return nil
}

func (r *ValidationRunRepositoryImpl) GetByID(ctx context.Context, runID uint) (*validation.Run, error) {
	var model models.ValidationRunModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, runID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get validation run", "id", runID, "error", err)
		return nil, fmt.Errorf("failed to get validation run: %w", err)
	}

	return r.mapper.RunToEntity(&model)
}

func (r *ValidationRunRepositoryImpl) GetBySID(ctx context.Context, sid string) (*validation.Run, error) {
	var model models.ValidationRunModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get validation run by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get validation run: %w", err)
	}

	return r.mapper.RunToEntity(&model)
}

func (r *ValidationRunRepositoryImpl) Update(ctx context.Context, run *validation.Run) error {
	model := r.mapper.RunToModel(run)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.ValidationRunModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", model.ID).
		Select("status", "total_checked", "issues_found", "issues_fixed", "error_message", "completed_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update validation run", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update validation run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return validation.ErrRunNotFound
	}

	return nil
}

// IncrementIssuesFixed bumps issues_fixed atomically, used inside the
// auto-fix transaction alongside the issue update.
func (r *ValidationRunRepositoryImpl) IncrementIssuesFixed(ctx context.Context, runID uint) error {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.ValidationRunModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", runID).
		Update("issues_fixed", gorm.Expr("issues_fixed + 1"))
	if result.Error != nil {
		r.logger.Errorw("failed to increment issues fixed", "run_id", runID, "error", result.Error)
		return fmt.Errorf("failed to increment issues fixed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return validation.ErrRunNotFound
	}

	return nil
}

func (r *ValidationRunRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*validation.Run, error) {
	if limit < 1 {
		limit = constants.DefaultPageSize
	}

	var rows []*models.ValidationRunModel
	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list validation runs", "error", err)
		return nil, fmt.Errorf("failed to list validation runs: %w", err)
	}

	runs := make([]*validation.Run, 0, len(rows))
	for _, model := range rows {
		run, err := r.mapper.RunToEntity(model)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

type ValidationIssueRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ValidationMapper
	logger logger.Interface
}

func NewValidationIssueRepository(gormDB *gorm.DB, logger logger.Interface) validation.IssueRepository {
	return &ValidationIssueRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewValidationMapper(),
		logger: logger,
	}
}

func (r *ValidationIssueRepositoryImpl) Create(ctx context.Context, issue *validation.Issue) error {
	model := r.mapper.IssueToModel(issue)
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixValidationIssue, id.DefaultLength)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create validation issue", "run_id", model.RunID, "error", err)
		return fmt.Errorf("failed to create validation issue: %w", err)
	}

	issue.SetIDFromStore(model.ID)
	issue.SetSID(model.SID)
	return nil
}

func (r *ValidationIssueRepositoryImpl) CreateBatch(ctx context.Context, issues []*validation.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	rows := make([]*models.ValidationIssueModel, 0, len(issues))
	for _, issue := range issues {
		model := r.mapper.IssueToModel(issue)
		if model.SID == "" {
			model.SID = id.MustGenerateWithPrefix(id.PrefixValidationIssue, id.DefaultLength)
		}
		rows = append(rows, model)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.CreateInBatches(rows, 100).Error; err != nil {
		r.logger.Errorw("failed to batch-create validation issues", "count", len(rows), "error", err)
		return fmt.Errorf("failed to create validation issues: %w", err)
	}

	for i, issue := range issues {
		issue.SetIDFromStore(rows[i].ID)
		issue.SetSID(rows[i].SID)
	}
	return nil
}

func (r *ValidationIssueRepositoryImpl) GetByID(ctx context.Context, issueID uint) (*validation.Issue, error) {
	var model models.ValidationIssueModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		First(&model, issueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get validation issue", "id", issueID, "error", err)
		return nil, fmt.Errorf("failed to get validation issue: %w", err)
	}

	return r.mapper.IssueToEntity(&model)
}

func (r *ValidationIssueRepositoryImpl) Update(ctx context.Context, issue *validation.Issue) error {
	model := r.mapper.IssueToModel(issue)

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.Model(&models.ValidationIssueModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("id = ?", model.ID).
		Select("is_fixed", "fixed_at", "fixed_by").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update validation issue", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update validation issue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return validation.ErrIssueNotFound
	}

	return nil
}

func (r *ValidationIssueRepositoryImpl) ListByRun(ctx context.Context, runID uint) ([]*validation.Issue, error) {
	var rows []*models.ValidationIssueModel

	err := r.db.WithContext(ctx).
		Scopes(db.TenantScope(ctx)).
		Where("run_id = ?", runID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list issues by run", "run_id", runID, "error", err)
		return nil, fmt.Errorf("failed to list validation issues: %w", err)
	}

	return r.mapper.IssuesToEntities(rows)
}

func (r *ValidationIssueRepositoryImpl) ListUnfixed(ctx context.Context, page, pageSize int) ([]*validation.Issue, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ValidationIssueModel{}).
		Scopes(db.TenantScope(ctx)).
		Where("is_fixed = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count unfixed issues", "error", err)
		return nil, 0, fmt.Errorf("failed to count validation issues: %w", err)
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

	var rows []*models.ValidationIssueModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list unfixed issues", "error", err)
		return nil, 0, fmt.Errorf("failed to list validation issues: %w", err)
	}

	entities, err := r.mapper.IssuesToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
