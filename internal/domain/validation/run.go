package validation

import (
	"errors"
	"fmt"
	"time"
)

// RunStatus tracks a validation run through its lifecycle.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is a point-in-time execution of the full check battery. totalChecked is
// the sum of rows examined across all checks, deliberately NOT deduplicated:
// a subscription examined by every check counts once per check. Dashboards
// depend on that accounting.
type Run struct {
	id          uint
	sid         string
	tenantID    uint
	status      RunStatus
	totalChecked int
	issuesFound int
	issuesFixed int
	errorMessage *string
	startedAt   time.Time
	completedAt *time.Time
}

// NewRun starts a validation run in the running state.
func NewRun(tenantID uint) (*Run, error) {
	if tenantID == 0 {
		return nil, errors.New("tenant ID is required")
	}
	return &Run{
		tenantID:  tenantID,
		status:    RunStatusRunning,
		startedAt: time.Now().UTC(),
	}, nil
}

// ReconstructRun rebuilds a run from persistence.
func ReconstructRun(
	id uint,
	sid string,
	tenantID uint,
	status RunStatus,
	totalChecked, issuesFound, issuesFixed int,
	errorMessage *string,
	startedAt time.Time,
	completedAt *time.Time,
) (*Run, error) {
	if id == 0 {
		return nil, errors.New("validation run ID cannot be zero")
	}
	switch status {
	case RunStatusRunning, RunStatusCompleted, RunStatusFailed:
	default:
		return nil, fmt.Errorf("invalid run status: %s", status)
	}

	return &Run{
		id:           id,
		sid:          sid,
		tenantID:     tenantID,
		status:       status,
		totalChecked: totalChecked,
		issuesFound:  issuesFound,
		issuesFixed:  issuesFixed,
		errorMessage: errorMessage,
		startedAt:    startedAt,
		completedAt:  completedAt,
	}, nil
}

func (r *Run) ID() uint                { return r.id }
func (r *Run) SID() string             { return r.sid }
func (r *Run) TenantID() uint          { return r.tenantID }
func (r *Run) Status() RunStatus       { return r.status }
func (r *Run) TotalChecked() int       { return r.totalChecked }
func (r *Run) IssuesFound() int        { return r.issuesFound }
func (r *Run) IssuesFixed() int        { return r.issuesFixed }
func (r *Run) ErrorMessage() *string   { return r.errorMessage }
func (r *Run) StartedAt() time.Time    { return r.startedAt }
func (r *Run) CompletedAt() *time.Time { return r.completedAt }

func (r *Run) SetSID(sid string) { r.sid = sid }

// SetIDFromStore sets the run ID after insert (persistence layer use only).
func (r *Run) SetIDFromStore(id uint) {
	if r.id == 0 {
		r.id = id
	}
}

// RecordCheck adds one check's examination count to the running total.
func (r *Run) RecordCheck(rowsExamined, issues int) {
	r.totalChecked += rowsExamined
	r.issuesFound += issues
}

// Complete finishes the run successfully.
func (r *Run) Complete() {
	now := time.Now().UTC()
	r.status = RunStatusCompleted
	r.completedAt = &now
}

// Fail marks the run failed, keeping whatever partial counts accumulated.
func (r *Run) Fail(message string) {
	now := time.Now().UTC()
	r.status = RunStatusFailed
	r.errorMessage = &message
	r.completedAt = &now
}

// RecordFix increments the fixed counter after an auto-fix or manual fix.
func (r *Run) RecordFix() {
	r.issuesFixed++
}
