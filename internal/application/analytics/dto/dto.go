package dto

import "time"

// RevenueDTO is the recurring-revenue snapshot for a tenant.
type RevenueDTO struct {
	MRRCents            int64     `json:"mrr_cents"`
	ARRCents            int64     `json:"arr_cents"`
	ActiveSubscriptions int       `json:"active_subscriptions"`
	Currency            string    `json:"currency"`
	ComputedAt          time.Time `json:"computed_at"`
}

// ChurnDTO summarizes cancellations over a window.
type ChurnDTO struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Cancelled   int64     `json:"cancelled"`
	ActiveAtEnd int64     `json:"active_at_end"`
	ChurnRate   float64   `json:"churn_rate"`
}

// CohortDTO is one signup-month bucket of the retention report.
type CohortDTO struct {
	Month         string  `json:"month"`
	Size          int64   `json:"size"`
	Retained      int64   `json:"retained"`
	RetentionRate float64 `json:"retention_rate"`
}

// CohortReportDTO groups the population by signup month.
type CohortReportDTO struct {
	Months     int         `json:"months"`
	ComputedAt time.Time   `json:"computed_at"`
	Cohorts    []CohortDTO `json:"cohorts"`
}

// StatusCountsDTO is the subscription population broken down by status.
type StatusCountsDTO struct {
	Active    int64 `json:"active"`
	Paused    int64 `json:"paused"`
	Cancelled int64 `json:"cancelled"`
	Expired   int64 `json:"expired"`
	Total     int64 `json:"total"`
}
