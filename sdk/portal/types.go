// Package portal provides a Go SDK for the Retain customer portal API.
package portal

import (
	"encoding/json"
	"time"
)

// Subscription represents a subscription as returned by the portal API.
type Subscription struct {
	SID               string     `json:"sid"`
	Provider          string     `json:"provider"`
	CustomerID        string     `json:"customer_id"`
	CustomerEmail     string     `json:"customer_email,omitempty"`
	CustomerName      string     `json:"customer_name,omitempty"`
	ProductID         string     `json:"product_id"`
	VariantID         string     `json:"variant_id,omitempty"`
	Quantity          int        `json:"quantity"`
	PriceCents        int64      `json:"price_cents"`
	DiscountCents     int64      `json:"discount_cents"`
	Currency          string     `json:"currency"`
	Frequency         string     `json:"frequency"`
	FrequencyInterval int        `json:"frequency_interval"`
	Status            string     `json:"status"`
	PauseReason       *string    `json:"pause_reason,omitempty"`
	CancelReason      *string    `json:"cancel_reason,omitempty"`
	AutoResumeAt      *time.Time `json:"auto_resume_at,omitempty"`
	NextBillingDate   *time.Time `json:"next_billing_date,omitempty"`
	SellingPlanName   *string    `json:"selling_plan_name,omitempty"`
	SkippedOrders     int        `json:"skipped_orders"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PauseRequest carries the optional pause parameters.
type PauseRequest struct {
	Reason       string     `json:"reason,omitempty"`
	AutoResumeAt *time.Time `json:"auto_resume_at,omitempty"`
}

// TriggerSaveFlowRequest starts a save flow session for a subscription.
type TriggerSaveFlowRequest struct {
	SubscriptionSID string `json:"subscription_sid"`
	Event           string `json:"event,omitempty"`
}

// SaveFlow describes the retention flow the customer is walked through.
type SaveFlow struct {
	SID         string          `json:"sid"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Steps       json.RawMessage `json:"steps"`
	Offers      json.RawMessage `json:"offers"`
}

// SaveAttempt represents one pass of a customer through a save flow.
type SaveAttempt struct {
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

// SaveFlowSession is returned when a save flow is triggered.
type SaveFlowSession struct {
	Flow    *SaveFlow    `json:"flow"`
	Attempt *SaveAttempt `json:"attempt"`
}

// CompleteAttemptRequest records the outcome of a save flow session.
// Outcome is "saved" or "cancelled". AcceptedOfferIndex points into the
// flow's offer list when the customer took an offer.
type CompleteAttemptRequest struct {
	Outcome            string  `json:"outcome"`
	AcceptedOfferIndex *int    `json:"accepted_offer_index,omitempty"`
	CancelReason       *string `json:"cancel_reason,omitempty"`
}

// apiResponse represents the standard API response structure.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
