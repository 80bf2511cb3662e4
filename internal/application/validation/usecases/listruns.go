package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/validation/dto"
	"github.com/retain-hq/retain/internal/domain/validation"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/utils"
)

// DefaultRecentRunLimit bounds the run history listing.
const DefaultRecentRunLimit = 20

type ListIssuesResult struct {
	Items    []*dto.IssueDTO `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ValidationQueryUseCase serves the read side of the validation engine.
type ValidationQueryUseCase struct {
	runRepo   validation.RunRepository
	issueRepo validation.IssueRepository
	logger    logger.Interface
}

func NewValidationQueryUseCase(
	runRepo validation.RunRepository,
	issueRepo validation.IssueRepository,
	logger logger.Interface,
) *ValidationQueryUseCase {
	return &ValidationQueryUseCase{
		runRepo:   runRepo,
		issueRepo: issueRepo,
		logger:    logger,
	}
}

func (uc *ValidationQueryUseCase) ListRecentRuns(ctx context.Context, limit int) ([]*dto.RunDTO, error) {
	if limit <= 0 {
		limit = DefaultRecentRunLimit
	}

	runs, err := uc.runRepo.ListRecent(ctx, limit)
	if err != nil {
		uc.logger.Errorw("failed to list validation runs", "error", err)
		return nil, fmt.Errorf("failed to list validation runs: %w", err)
	}

	return dto.ToRunDTOs(runs), nil
}

func (uc *ValidationQueryUseCase) GetRun(ctx context.Context, sid string) (*dto.RunDTO, []*dto.IssueDTO, error) {
	run, err := uc.runRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get validation run", "error", err, "sid", sid)
		return nil, nil, fmt.Errorf("failed to get validation run: %w", err)
	}
	if run == nil {
		return nil, nil, errors.NewNotFoundError("validation run not found")
	}

	issues, err := uc.issueRepo.ListByRun(ctx, run.ID())
	if err != nil {
		uc.logger.Errorw("failed to list run issues", "error", err, "sid", sid)
		return nil, nil, fmt.Errorf("failed to list run issues: %w", err)
	}

	return dto.ToRunDTO(run), dto.ToIssueDTOs(issues), nil
}

func (uc *ValidationQueryUseCase) ListUnfixedIssues(ctx context.Context, page, pageSize int) (*ListIssuesResult, error) {
	p := utils.ValidatePagination(page, pageSize)

	issues, total, err := uc.issueRepo.ListUnfixed(ctx, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list unfixed issues", "error", err)
		return nil, fmt.Errorf("failed to list unfixed issues: %w", err)
	}

	return &ListIssuesResult{
		Items:    dto.ToIssueDTOs(issues),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
