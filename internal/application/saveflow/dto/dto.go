package dto

import (
	"time"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/shared/mapper"
)

// FlowDTO is the API representation of a save flow, including its
// effectiveness counters.
type FlowDTO struct {
	SID         string `json:"sid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority"`
	Enabled     bool   `json:"enabled"`

	Trigger saveflow.TriggerConditions `json:"trigger"`
	Steps   saveflow.StepList          `json:"steps"`
	Offers  saveflow.OfferList         `json:"offers"`

	TotalTriggered    int     `json:"total_triggered"`
	TotalSaved        int     `json:"total_saved"`
	RevenueSavedCents int64   `json:"revenue_saved_cents"`
	SaveRate          float64 `json:"save_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttemptDTO is the API representation of a save attempt.
type AttemptDTO struct {
	SID               string     `json:"sid"`
	FlowSID           string     `json:"flow_sid,omitempty"`
	SubscriptionSID   string     `json:"subscription_sid,omitempty"`
	Outcome           string     `json:"outcome"`
	OfferAccepted     *string    `json:"offer_accepted,omitempty"`
	CancelReason      *string    `json:"cancel_reason,omitempty"`
	RevenueSavedCents int64      `json:"revenue_saved_cents"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// FlowStatsDTO summarizes one flow's effectiveness for the analytics view.
type FlowStatsDTO struct {
	FlowSID           string  `json:"flow_sid"`
	FlowName          string  `json:"flow_name"`
	Enabled           bool    `json:"enabled"`
	TotalTriggered    int     `json:"total_triggered"`
	TotalSaved        int     `json:"total_saved"`
	RevenueSavedCents int64   `json:"revenue_saved_cents"`
	SaveRate          float64 `json:"save_rate"`
}

// OfferAcceptanceDTO is one row of the offer-acceptance breakdown.
type OfferAcceptanceDTO struct {
	Offer             string `json:"offer"`
	Accepted          int    `json:"accepted"`
	RevenueSavedCents int64  `json:"revenue_saved_cents"`
}

// AnalyticsDTO is the full save-flow analytics payload.
type AnalyticsDTO struct {
	TotalTriggered    int                  `json:"total_triggered"`
	TotalSaved        int                  `json:"total_saved"`
	RevenueSavedCents int64                `json:"revenue_saved_cents"`
	OverallSaveRate   float64              `json:"overall_save_rate"`
	Flows             []FlowStatsDTO       `json:"flows"`
	OfferAcceptance   []OfferAcceptanceDTO `json:"offer_acceptance"`
}

func ToFlowDTO(f *saveflow.SaveFlow) *FlowDTO {
	if f == nil {
		return nil
	}
	return &FlowDTO{
		SID:               f.SID(),
		Name:              f.Name(),
		Description:       f.Description(),
		Priority:          f.Priority(),
		Enabled:           f.Enabled(),
		Trigger:           f.Trigger(),
		Steps:             f.Steps(),
		Offers:            f.Offers(),
		TotalTriggered:    f.TotalTriggered(),
		TotalSaved:        f.TotalSaved(),
		RevenueSavedCents: f.RevenueSavedCents(),
		SaveRate:          f.SaveRate(),
		CreatedAt:         f.CreatedAt(),
		UpdatedAt:         f.UpdatedAt(),
	}
}

func ToFlowDTOs(flows []*saveflow.SaveFlow) []*FlowDTO {
	return mapper.MapSlice(flows, ToFlowDTO)
}

func ToAttemptDTO(a *saveflow.Attempt) *AttemptDTO {
	if a == nil {
		return nil
	}
	return &AttemptDTO{
		SID:               a.SID(),
		Outcome:           string(a.Outcome()),
		OfferAccepted:     a.OfferAccepted(),
		CancelReason:      a.CancelReason(),
		RevenueSavedCents: a.RevenueSavedCents(),
		StartedAt:         a.StartedAt(),
		CompletedAt:       a.CompletedAt(),
	}
}

func ToAttemptDTOs(attempts []*saveflow.Attempt) []*AttemptDTO {
	return mapper.MapSlice(attempts, ToAttemptDTO)
}
