package saveflow

import (
	"errors"
	"fmt"
	"time"
)

// Outcome is the terminal (or pending) state of a save attempt.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeSaved     Outcome = "saved"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeExpired   Outcome = "expired"
)

var ValidOutcomes = map[Outcome]bool{
	OutcomePending:   true,
	OutcomeSaved:     true,
	OutcomeCancelled: true,
	OutcomeExpired:   true,
}

// Attempt records one invocation of a flow against one subscription.
// Append-only once completed.
type Attempt struct {
	id             uint
	sid            string
	tenantID       uint
	flowID         uint
	subscriptionID uint

	outcome           Outcome
	offerAccepted     *string
	cancelReason      *string
	revenueSavedCents int64

	startedAt   time.Time
	completedAt *time.Time
}

// NewAttempt creates a pending attempt.
func NewAttempt(tenantID, flowID, subscriptionID uint) (*Attempt, error) {
	if flowID == 0 {
		return nil, errors.New("flow ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, errors.New("subscription ID cannot be zero")
	}

	return &Attempt{
		tenantID:       tenantID,
		flowID:         flowID,
		subscriptionID: subscriptionID,
		outcome:        OutcomePending,
		startedAt:      time.Now().UTC(),
	}, nil
}

// ReconstructAttempt rebuilds an attempt from persistence.
func ReconstructAttempt(
	id uint,
	sid string,
	tenantID, flowID, subscriptionID uint,
	outcome Outcome,
	offerAccepted, cancelReason *string,
	revenueSavedCents int64,
	startedAt time.Time,
	completedAt *time.Time,
) (*Attempt, error) {
	if id == 0 {
		return nil, errors.New("attempt ID cannot be zero")
	}
	if !ValidOutcomes[outcome] {
		return nil, fmt.Errorf("invalid attempt outcome: %s", outcome)
	}

	return &Attempt{
		id:                id,
		sid:               sid,
		tenantID:          tenantID,
		flowID:            flowID,
		subscriptionID:    subscriptionID,
		outcome:           outcome,
		offerAccepted:     offerAccepted,
		cancelReason:      cancelReason,
		revenueSavedCents: revenueSavedCents,
		startedAt:         startedAt,
		completedAt:       completedAt,
	}, nil
}

func (a *Attempt) ID() uint                 { return a.id }
func (a *Attempt) SID() string              { return a.sid }
func (a *Attempt) TenantID() uint           { return a.tenantID }
func (a *Attempt) FlowID() uint             { return a.flowID }
func (a *Attempt) SubscriptionID() uint     { return a.subscriptionID }
func (a *Attempt) Outcome() Outcome         { return a.outcome }
func (a *Attempt) OfferAccepted() *string   { return a.offerAccepted }
func (a *Attempt) CancelReason() *string    { return a.cancelReason }
func (a *Attempt) RevenueSavedCents() int64 { return a.revenueSavedCents }
func (a *Attempt) StartedAt() time.Time     { return a.startedAt }
func (a *Attempt) CompletedAt() *time.Time  { return a.completedAt }

func (a *Attempt) SetSID(sid string) { a.sid = sid }

// SetIDFromStore sets the attempt ID after insert (persistence layer use only).
func (a *Attempt) SetIDFromStore(id uint) {
	if a.id == 0 {
		a.id = id
	}
}

// IsCompleted reports whether the attempt already left the pending state.
func (a *Attempt) IsCompleted() bool {
	return a.completedAt != nil
}

// Complete stamps the attempt's terminal state. Completed attempts are
// append-only; a second completion is rejected.
func (a *Attempt) Complete(outcome Outcome, offerAccepted, cancelReason *string, revenueSavedCents int64) error {
	if a.IsCompleted() {
		return ErrAttemptCompleted
	}
	if outcome == OutcomePending || !ValidOutcomes[outcome] {
		return fmt.Errorf("invalid completion outcome: %s", outcome)
	}
	if revenueSavedCents < 0 {
		return errors.New("revenue saved cannot be negative")
	}

	now := time.Now().UTC()
	a.outcome = outcome
	a.offerAccepted = offerAccepted
	a.cancelReason = cancelReason
	a.completedAt = &now
	if outcome == OutcomeSaved {
		a.revenueSavedCents = revenueSavedCents
	}
	return nil
}
