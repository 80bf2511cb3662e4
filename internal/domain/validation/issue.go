package validation

import (
	"errors"
	"fmt"
	"time"
)

// IssueType is one of the ten fixed check identifiers.
type IssueType string

const (
	IssueOrphanedSubscription        IssueType = "orphaned_subscription"
	IssueMissingProduct              IssueType = "missing_product"
	IssueMissingBillingDate          IssueType = "missing_billing_date"
	IssueCancelledWithPendingOrders  IssueType = "cancelled_with_pending_orders"
	IssuePausedTooLong               IssueType = "paused_too_long"
	IssuePaymentExpiring             IssueType = "payment_expiring"
	IssueDuplicateSubscription       IssueType = "duplicate_subscription"
	IssueSyncError                   IssueType = "sync_error"
	IssueInvalidFrequency            IssueType = "invalid_frequency"
	IssueInvalidAmount               IssueType = "invalid_amount"
)

// Severity classifies an issue for triage.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// issueSeverities is the fixed type-to-severity table. Every known issue
// type has exactly one severity.
var issueSeverities = map[IssueType]Severity{
	IssueOrphanedSubscription:       SeverityError,
	IssueMissingProduct:             SeverityError,
	IssueMissingBillingDate:         SeverityError,
	IssueCancelledWithPendingOrders: SeverityWarning,
	IssuePausedTooLong:              SeverityWarning,
	IssuePaymentExpiring:            SeverityWarning,
	IssueDuplicateSubscription:      SeverityWarning,
	IssueSyncError:                  SeverityError,
	IssueInvalidFrequency:           SeverityError,
	IssueInvalidAmount:              SeverityError,
}

func (t IssueType) IsValid() bool {
	_, ok := issueSeverities[t]
	return ok
}

// SeverityFor returns the fixed severity for an issue type.
func SeverityFor(t IssueType) Severity {
	if s, ok := issueSeverities[t]; ok {
		return s
	}
	return SeverityInfo
}

// AutoFixable reports whether the auto-fix routine knows how to repair this
// issue type. All other types are reported as unfixable, never errored on.
func (t IssueType) AutoFixable() bool {
	switch t {
	case IssueMissingBillingDate, IssueCancelledWithPendingOrders, IssuePausedTooLong:
		return true
	}
	return false
}

// Issue is a single invariant violation found during a run. Immutable except
// for the fixed-state transition.
type Issue struct {
	id             uint
	sid            string
	tenantID       uint
	runID          uint
	subscriptionID uint
	issueType      IssueType
	severity       Severity
	description    string
	isFixed        bool
	fixedAt        *time.Time
	fixedBy        *string
	createdAt      time.Time
}

// NewIssue creates an issue for a run. Severity is derived from the type,
// never supplied by the caller.
func NewIssue(tenantID, runID, subscriptionID uint, issueType IssueType, description string) (*Issue, error) {
	if runID == 0 {
		return nil, errors.New("run ID cannot be zero")
	}
	if !issueType.IsValid() {
		return nil, fmt.Errorf("unknown issue type: %s", issueType)
	}

	return &Issue{
		tenantID:       tenantID,
		runID:          runID,
		subscriptionID: subscriptionID,
		issueType:      issueType,
		severity:       SeverityFor(issueType),
		description:    description,
		createdAt:      time.Now().UTC(),
	}, nil
}

// ReconstructIssue rebuilds an issue from persistence.
func ReconstructIssue(
	id uint,
	sid string,
	tenantID, runID, subscriptionID uint,
	issueType IssueType,
	severity Severity,
	description string,
	isFixed bool,
	fixedAt *time.Time,
	fixedBy *string,
	createdAt time.Time,
) (*Issue, error) {
	if id == 0 {
		return nil, errors.New("issue ID cannot be zero")
	}

	return &Issue{
		id:             id,
		sid:            sid,
		tenantID:       tenantID,
		runID:          runID,
		subscriptionID: subscriptionID,
		issueType:      issueType,
		severity:       severity,
		description:    description,
		isFixed:        isFixed,
		fixedAt:        fixedAt,
		fixedBy:        fixedBy,
		createdAt:      createdAt,
	}, nil
}

func (i *Issue) ID() uint             { return i.id }
func (i *Issue) SID() string          { return i.sid }
func (i *Issue) TenantID() uint       { return i.tenantID }
func (i *Issue) RunID() uint          { return i.runID }
func (i *Issue) SubscriptionID() uint { return i.subscriptionID }
func (i *Issue) Type() IssueType      { return i.issueType }
func (i *Issue) Severity() Severity   { return i.severity }
func (i *Issue) Description() string  { return i.description }
func (i *Issue) IsFixed() bool        { return i.isFixed }
func (i *Issue) FixedAt() *time.Time  { return i.fixedAt }
func (i *Issue) FixedBy() *string     { return i.fixedBy }
func (i *Issue) CreatedAt() time.Time { return i.createdAt }

func (i *Issue) SetSID(sid string) { i.sid = sid }

// SetIDFromStore sets the issue ID after insert (persistence layer use only).
func (i *Issue) SetIDFromStore(id uint) {
	if i.id == 0 {
		i.id = id
	}
}

// MarkFixed records the fixed-state transition. Fixing an already-fixed
// issue is an error so run counters never double-count.
func (i *Issue) MarkFixed(fixedBy string) error {
	if i.isFixed {
		return errors.New("issue is already fixed")
	}
	now := time.Now().UTC()
	i.isFixed = true
	i.fixedAt = &now
	i.fixedBy = &fixedBy
	return nil
}
