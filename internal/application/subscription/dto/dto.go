package dto

import (
	"time"

	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/shared/mapper"
)

type SubscriptionDTO struct {
	SID                    string     `json:"sid"`
	Provider               string     `json:"provider"`
	ProviderSubscriptionID string     `json:"provider_subscription_id,omitempty"`
	CustomerID             string     `json:"customer_id"`
	CustomerEmail          string     `json:"customer_email,omitempty"`
	CustomerName           string     `json:"customer_name,omitempty"`
	ProductID              string     `json:"product_id"`
	VariantID              string     `json:"variant_id,omitempty"`
	Quantity               int        `json:"quantity"`
	PriceCents             int64      `json:"price_cents"`
	DiscountCents          int64      `json:"discount_cents"`
	Currency               string     `json:"currency"`
	Frequency              string     `json:"frequency"`
	FrequencyInterval      int        `json:"frequency_interval"`
	Status                 string     `json:"status"`
	PauseReason            *string    `json:"pause_reason,omitempty"`
	CancelReason           *string    `json:"cancel_reason,omitempty"`
	PausedAt               *time.Time `json:"paused_at,omitempty"`
	CancelledAt            *time.Time `json:"cancelled_at,omitempty"`
	AutoResumeAt           *time.Time `json:"auto_resume_at,omitempty"`
	NextBillingDate        *time.Time `json:"next_billing_date,omitempty"`
	LastBillingDate        *time.Time `json:"last_billing_date,omitempty"`
	SellingPlanName        *string    `json:"selling_plan_name,omitempty"`
	CardLast4              string     `json:"card_last4,omitempty"`
	CardBrand              string     `json:"card_brand,omitempty"`
	CardExpMonth           int        `json:"card_exp_month,omitempty"`
	CardExpYear            int        `json:"card_exp_year,omitempty"`
	TotalOrders            int        `json:"total_orders"`
	TotalSpentCents        int64      `json:"total_spent_cents"`
	SkippedOrders          int        `json:"skipped_orders"`
	Version                int        `json:"version"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type OrderDTO struct {
	SID            string     `json:"sid"`
	SubscriptionID uint       `json:"subscription_id"`
	Status         string     `json:"status"`
	AmountCents    int64      `json:"amount_cents"`
	Currency       string     `json:"currency"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	FailureReason  *string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ActivityDTO struct {
	SID          string                 `json:"sid"`
	ActivityType string                 `json:"activity_type"`
	Description  string                 `json:"description,omitempty"`
	ActorType    string                 `json:"actor_type"`
	ActorID      string                 `json:"actor_id,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	card := sub.PaymentCard()
	return &SubscriptionDTO{
		SID:                    sub.SID(),
		Provider:               sub.Provider().String(),
		ProviderSubscriptionID: sub.ProviderSubscriptionID(),
		CustomerID:             sub.CustomerID(),
		CustomerEmail:          sub.CustomerEmail(),
		CustomerName:           sub.CustomerName(),
		ProductID:              sub.ProductID(),
		VariantID:              sub.VariantID(),
		Quantity:               sub.Quantity(),
		PriceCents:             sub.PriceCents(),
		DiscountCents:          sub.DiscountCents(),
		Currency:               sub.Currency(),
		Frequency:              sub.Frequency().String(),
		FrequencyInterval:      sub.FrequencyInterval(),
		Status:                 sub.Status().String(),
		PauseReason:            sub.PauseReason(),
		CancelReason:           sub.CancelReason(),
		PausedAt:               sub.PausedAt(),
		CancelledAt:            sub.CancelledAt(),
		AutoResumeAt:           sub.AutoResumeAt(),
		NextBillingDate:        sub.NextBillingDate(),
		LastBillingDate:        sub.LastBillingDate(),
		SellingPlanName:        sub.SellingPlanName(),
		CardLast4:              card.Last4,
		CardBrand:              card.Brand,
		CardExpMonth:           card.ExpMonth,
		CardExpYear:            card.ExpYear,
		TotalOrders:            sub.TotalOrders(),
		TotalSpentCents:        sub.TotalSpentCents(),
		SkippedOrders:          sub.SkippedOrders(),
		Version:                sub.Version(),
		CreatedAt:              sub.CreatedAt(),
		UpdatedAt:              sub.UpdatedAt(),
	}
}

func ToSubscriptionDTOs(subs []*subscription.Subscription) []*SubscriptionDTO {
	return mapper.MapSlice(subs, ToSubscriptionDTO)
}

func ToOrderDTO(order *subscription.Order) *OrderDTO {
	if order == nil {
		return nil
	}

	return &OrderDTO{
		SID:            order.SID(),
		SubscriptionID: order.SubscriptionID(),
		Status:         order.Status().String(),
		AmountCents:    order.AmountCents(),
		Currency:       order.Currency(),
		ScheduledAt:    order.ScheduledAt(),
		ProcessedAt:    order.ProcessedAt(),
		FailureReason:  order.FailureReason(),
		CreatedAt:      order.CreatedAt(),
	}
}

func ToOrderDTOs(orders []*subscription.Order) []*OrderDTO {
	return mapper.MapSlice(orders, ToOrderDTO)
}

func ToActivityDTO(activity *subscription.Activity) *ActivityDTO {
	if activity == nil {
		return nil
	}

	return &ActivityDTO{
		SID:          activity.SID(),
		ActivityType: activity.ActivityType(),
		Description:  activity.Description(),
		ActorType:    string(activity.ActorType()),
		ActorID:      activity.ActorID(),
		Metadata:     activity.Metadata(),
		CreatedAt:    activity.CreatedAt(),
	}
}

func ToActivityDTOs(activities []*subscription.Activity) []*ActivityDTO {
	return mapper.MapSlice(activities, ToActivityDTO)
}
