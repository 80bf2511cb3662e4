package validation

import (
	"context"
	"errors"
)

var (
	ErrRunNotFound   = errors.New("validation run not found")
	ErrIssueNotFound = errors.New("validation issue not found")
)

// RunRepository persists validation runs.
type RunRepository interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id uint) (*Run, error)
	GetBySID(ctx context.Context, sid string) (*Run, error)
	Update(ctx context.Context, run *Run) error
	ListRecent(ctx context.Context, limit int) ([]*Run, error)

	// IncrementIssuesFixed bumps issues_fixed by one in a single statement.
	// Called inside the same transaction as the issue's fixed-state write.
	IncrementIssuesFixed(ctx context.Context, runID uint) error
}

// IssueRepository persists validation issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *Issue) error
	CreateBatch(ctx context.Context, issues []*Issue) error
	GetByID(ctx context.Context, id uint) (*Issue, error)
	Update(ctx context.Context, issue *Issue) error
	ListByRun(ctx context.Context, runID uint) ([]*Issue, error)
	ListUnfixed(ctx context.Context, page, pageSize int) ([]*Issue, int64, error)
}
