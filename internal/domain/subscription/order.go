package subscription

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus tracks a scheduled or billed charge.
type OrderStatus string

const (
	OrderStatusScheduled  OrderStatus = "scheduled"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusSkipped    OrderStatus = "skipped"
)

var ValidOrderStatuses = map[OrderStatus]bool{
	OrderStatusScheduled:  true,
	OrderStatusProcessing: true,
	OrderStatusCompleted:  true,
	OrderStatusFailed:     true,
	OrderStatusSkipped:    true,
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is one scheduled or billed charge owned by a subscription.
type Order struct {
	id             uint
	sid            string
	tenantID       uint
	subscriptionID uint
	status         OrderStatus
	amountCents    int64
	currency       string
	scheduledAt    time.Time
	processedAt    *time.Time
	failureReason  *string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewOrder creates a scheduled order for a subscription.
func NewOrder(tenantID, subscriptionID uint, amountCents int64, currency string, scheduledAt time.Time) (*Order, error) {
	if subscriptionID == 0 {
		return nil, errors.New("subscription ID cannot be zero")
	}
	if amountCents < 0 {
		return nil, errors.New("order amount cannot be negative")
	}

	now := time.Now().UTC()
	return &Order{
		tenantID:       tenantID,
		subscriptionID: subscriptionID,
		status:         OrderStatusScheduled,
		amountCents:    amountCents,
		currency:       currency,
		scheduledAt:    scheduledAt.UTC(),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructOrder rebuilds an order from persistence.
func ReconstructOrder(
	id uint,
	sid string,
	tenantID, subscriptionID uint,
	status OrderStatus,
	amountCents int64,
	currency string,
	scheduledAt time.Time,
	processedAt *time.Time,
	failureReason *string,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if id == 0 {
		return nil, errors.New("order ID cannot be zero")
	}
	if !ValidOrderStatuses[status] {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	return &Order{
		id:             id,
		sid:            sid,
		tenantID:       tenantID,
		subscriptionID: subscriptionID,
		status:         status,
		amountCents:    amountCents,
		currency:       currency,
		scheduledAt:    scheduledAt,
		processedAt:    processedAt,
		failureReason:  failureReason,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (o *Order) ID() uint              { return o.id }
func (o *Order) SID() string           { return o.sid }
func (o *Order) TenantID() uint        { return o.tenantID }
func (o *Order) SubscriptionID() uint  { return o.subscriptionID }
func (o *Order) Status() OrderStatus   { return o.status }
func (o *Order) AmountCents() int64    { return o.amountCents }
func (o *Order) Currency() string      { return o.currency }
func (o *Order) ScheduledAt() time.Time { return o.scheduledAt }
func (o *Order) ProcessedAt() *time.Time { return o.processedAt }
func (o *Order) FailureReason() *string  { return o.failureReason }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }

func (o *Order) SetSID(sid string) { o.sid = sid }

// Skip marks the order skipped. Only scheduled orders can be skipped.
func (o *Order) Skip() error {
	if o.status != OrderStatusScheduled {
		return fmt.Errorf("cannot skip order with status %s", o.status)
	}
	o.status = OrderStatusSkipped
	o.updatedAt = time.Now().UTC()
	return nil
}

// SetIDFromStore sets the order ID after insert (persistence layer use only).
func (o *Order) SetIDFromStore(id uint) {
	if o.id == 0 {
		o.id = id
	}
}
