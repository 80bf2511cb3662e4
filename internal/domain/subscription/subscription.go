package subscription

import (
	"fmt"
	"time"

	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

// Subscription is the aggregate root for a recurring-revenue subscription.
//
// Lifecycle transitions are deliberately permissive at this layer: Pause
// re-stamps timestamps when already paused, Resume succeeds regardless of the
// prior status (including cancelled), and Cancel is terminal in intent only.
// Callers that need stricter semantics enforce them above the domain layer.
type Subscription struct {
	id       uint
	sid      string
	tenantID uint

	provider               vo.Provider
	providerSubscriptionID string

	customerID    string
	customerEmail string
	customerName  string

	productID     string
	variantID     string
	quantity      int
	priceCents    int64
	discountCents int64
	currency      string

	frequency         vo.Frequency
	frequencyInterval int

	status       vo.Status
	pauseReason  *string
	cancelReason *string
	pausedAt     *time.Time
	cancelledAt  *time.Time
	autoResumeAt *time.Time

	nextBillingDate  *time.Time
	lastBillingDate  *time.Time
	billingAnchorDay int

	sellingPlanID   *uint
	sellingPlanName *string

	paymentCard vo.PaymentCard

	totalOrders     int
	totalSpentCents int64
	skippedOrders   int

	lastSyncedAt *time.Time
	syncError    *string

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// Params carries every persisted field of a Subscription. It is shared by
// NewSubscription (which ignores identity/audit fields) and Reconstruct.
type Params struct {
	ID       uint
	SID      string
	TenantID uint

	Provider               vo.Provider
	ProviderSubscriptionID string

	CustomerID    string
	CustomerEmail string
	CustomerName  string

	ProductID     string
	VariantID     string
	Quantity      int
	PriceCents    int64
	DiscountCents int64
	Currency      string

	Frequency         vo.Frequency
	FrequencyInterval int

	Status       vo.Status
	PauseReason  *string
	CancelReason *string
	PausedAt     *time.Time
	CancelledAt  *time.Time
	AutoResumeAt *time.Time

	NextBillingDate  *time.Time
	LastBillingDate  *time.Time
	BillingAnchorDay int

	SellingPlanID   *uint
	SellingPlanName *string

	PaymentCard vo.PaymentCard

	TotalOrders     int
	TotalSpentCents int64
	SkippedOrders   int

	LastSyncedAt *time.Time
	SyncError    *string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSubscription creates a subscription from provider sync or manual entry.
// Status defaults to pending when not provided.
func NewSubscription(p Params) (*Subscription, error) {
	if p.TenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !p.Provider.IsValid() {
		return nil, fmt.Errorf("invalid provider: %s", p.Provider)
	}
	if p.CustomerID == "" {
		return nil, fmt.Errorf("customer ID is required")
	}
	if p.ProductID == "" {
		return nil, fmt.Errorf("product ID is required")
	}

	status := p.Status
	if status == "" {
		status = vo.StatusPending
	}
	if status != vo.StatusPending && status != vo.StatusActive {
		return nil, fmt.Errorf("new subscriptions must be pending or active, got %s", status)
	}

	interval := p.FrequencyInterval
	if interval == 0 {
		interval = 1
	}

	now := time.Now().UTC()
	s := &Subscription{
		sid:                    p.SID,
		tenantID:               p.TenantID,
		provider:               p.Provider,
		providerSubscriptionID: p.ProviderSubscriptionID,
		customerID:             p.CustomerID,
		customerEmail:          p.CustomerEmail,
		customerName:           p.CustomerName,
		productID:              p.ProductID,
		variantID:              p.VariantID,
		quantity:               p.Quantity,
		priceCents:             p.PriceCents,
		discountCents:          p.DiscountCents,
		currency:               p.Currency,
		frequency:              p.Frequency,
		frequencyInterval:      interval,
		status:                 status,
		nextBillingDate:        p.NextBillingDate,
		billingAnchorDay:       p.BillingAnchorDay,
		sellingPlanID:          p.SellingPlanID,
		sellingPlanName:        p.SellingPlanName,
		paymentCard:            p.PaymentCard,
		version:                1,
		createdAt:              now,
		updatedAt:              now,
	}
	if s.quantity == 0 {
		s.quantity = 1
	}
	if s.currency == "" {
		s.currency = "USD"
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconstruct rebuilds a subscription from persistence.
func Reconstruct(p Params) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.TenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:                     p.ID,
		sid:                    p.SID,
		tenantID:               p.TenantID,
		provider:               p.Provider,
		providerSubscriptionID: p.ProviderSubscriptionID,
		customerID:             p.CustomerID,
		customerEmail:          p.CustomerEmail,
		customerName:           p.CustomerName,
		productID:              p.ProductID,
		variantID:              p.VariantID,
		quantity:               p.Quantity,
		priceCents:             p.PriceCents,
		discountCents:          p.DiscountCents,
		currency:               p.Currency,
		frequency:              p.Frequency,
		frequencyInterval:      p.FrequencyInterval,
		status:                 p.Status,
		pauseReason:            p.PauseReason,
		cancelReason:           p.CancelReason,
		pausedAt:               p.PausedAt,
		cancelledAt:            p.CancelledAt,
		autoResumeAt:           p.AutoResumeAt,
		nextBillingDate:        p.NextBillingDate,
		lastBillingDate:        p.LastBillingDate,
		billingAnchorDay:       p.BillingAnchorDay,
		sellingPlanID:          p.SellingPlanID,
		sellingPlanName:        p.SellingPlanName,
		paymentCard:            p.PaymentCard,
		totalOrders:            p.TotalOrders,
		totalSpentCents:        p.TotalSpentCents,
		skippedOrders:          p.SkippedOrders,
		lastSyncedAt:           p.LastSyncedAt,
		syncError:              p.SyncError,
		version:                p.Version,
		createdAt:              p.CreatedAt,
		updatedAt:              p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                       { return s.id }
func (s *Subscription) SID() string                    { return s.sid }
func (s *Subscription) TenantID() uint                 { return s.tenantID }
func (s *Subscription) Provider() vo.Provider          { return s.provider }
func (s *Subscription) ProviderSubscriptionID() string { return s.providerSubscriptionID }
func (s *Subscription) CustomerID() string             { return s.customerID }
func (s *Subscription) CustomerEmail() string          { return s.customerEmail }
func (s *Subscription) CustomerName() string           { return s.customerName }
func (s *Subscription) ProductID() string              { return s.productID }
func (s *Subscription) VariantID() string              { return s.variantID }
func (s *Subscription) Quantity() int                  { return s.quantity }
func (s *Subscription) PriceCents() int64              { return s.priceCents }
func (s *Subscription) DiscountCents() int64           { return s.discountCents }
func (s *Subscription) Currency() string               { return s.currency }
func (s *Subscription) Frequency() vo.Frequency        { return s.frequency }
func (s *Subscription) FrequencyInterval() int         { return s.frequencyInterval }
func (s *Subscription) Status() vo.Status              { return s.status }
func (s *Subscription) PauseReason() *string           { return s.pauseReason }
func (s *Subscription) CancelReason() *string          { return s.cancelReason }
func (s *Subscription) PausedAt() *time.Time           { return s.pausedAt }
func (s *Subscription) CancelledAt() *time.Time        { return s.cancelledAt }
func (s *Subscription) AutoResumeAt() *time.Time       { return s.autoResumeAt }
func (s *Subscription) NextBillingDate() *time.Time    { return s.nextBillingDate }
func (s *Subscription) LastBillingDate() *time.Time    { return s.lastBillingDate }
func (s *Subscription) BillingAnchorDay() int          { return s.billingAnchorDay }
func (s *Subscription) SellingPlanID() *uint           { return s.sellingPlanID }
func (s *Subscription) SellingPlanName() *string       { return s.sellingPlanName }
func (s *Subscription) PaymentCard() vo.PaymentCard    { return s.paymentCard }
func (s *Subscription) TotalOrders() int               { return s.totalOrders }
func (s *Subscription) TotalSpentCents() int64         { return s.totalSpentCents }
func (s *Subscription) SkippedOrders() int             { return s.skippedOrders }
func (s *Subscription) LastSyncedAt() *time.Time       { return s.lastSyncedAt }
func (s *Subscription) SyncError() *string             { return s.syncError }
func (s *Subscription) Version() int                   { return s.version }
func (s *Subscription) CreatedAt() time.Time           { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time           { return s.updatedAt }

// SetID sets the subscription ID (persistence layer use only).
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Pause moves the subscription to paused. Calling Pause on an already-paused
// subscription re-stamps pausedAt without error.
func (s *Subscription) Pause(reason string, resumeAt *time.Time) {
	now := time.Now().UTC()
	s.status = vo.StatusPaused
	s.pauseReason = &reason
	s.pausedAt = &now
	s.autoResumeAt = resumeAt
	s.cancelReason = nil
	s.cancelledAt = nil
	s.touch()
}

// Resume moves the subscription back to active and clears pause and cancel
// state. There is no prior-status check: resuming an already-active
// subscription is a no-op re-stamp, and resuming a cancelled subscription
// reactivates it.
func (s *Subscription) Resume() {
	s.status = vo.StatusActive
	s.pauseReason = nil
	s.pausedAt = nil
	s.autoResumeAt = nil
	s.cancelReason = nil
	s.cancelledAt = nil
	s.touch()
}

// Cancel moves the subscription to cancelled and stamps cancelledAt.
func (s *Subscription) Cancel(reason string) {
	now := time.Now().UTC()
	s.status = vo.StatusCancelled
	s.cancelReason = &reason
	s.cancelledAt = &now
	s.pauseReason = nil
	s.pausedAt = nil
	s.autoResumeAt = nil
	s.touch()
}

// MarkExpired moves the subscription to expired.
func (s *Subscription) MarkExpired() {
	s.status = vo.StatusExpired
	s.touch()
}

// RecordSkip increments the skipped-orders counter. The matching
// order-row transition is handled by the order repository.
func (s *Subscription) RecordSkip() {
	s.skippedOrders++
	s.touch()
}

// UpdateFrequency changes the billing cadence. The next billing date is NOT
// recomputed here; recomputation is an opt-in validation auto-fix.
func (s *Subscription) UpdateFrequency(frequency vo.Frequency, interval int) error {
	if !frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %s", frequency)
	}
	if !vo.ValidInterval(interval) {
		return fmt.Errorf("frequency interval must be between %d and %d, got %d",
			vo.MinFrequencyInterval, vo.MaxFrequencyInterval, interval)
	}

	s.frequency = frequency
	s.frequencyInterval = interval
	s.touch()
	return nil
}

// UpdateQuantity changes the ordered quantity.
func (s *Subscription) UpdateQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	s.quantity = quantity
	s.touch()
	return nil
}

// UpdatePricing changes price and discount together so the
// discount <= price invariant can be checked atomically.
func (s *Subscription) UpdatePricing(priceCents, discountCents int64) error {
	if priceCents < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if discountCents < 0 || discountCents > priceCents {
		return fmt.Errorf("discount must be between 0 and price")
	}
	s.priceCents = priceCents
	s.discountCents = discountCents
	s.touch()
	return nil
}

// SetNextBillingDate overwrites the next billing date (validation auto-fix).
func (s *Subscription) SetNextBillingDate(t time.Time) {
	utc := t.UTC()
	s.nextBillingDate = &utc
	s.touch()
}

// RecordBilledOrder advances billing bookkeeping after a completed charge.
// Counters are monotonically non-decreasing and owned by this mutation.
func (s *Subscription) RecordBilledOrder(amountCents int64, billedAt time.Time) {
	utc := billedAt.UTC()
	s.lastBillingDate = &utc
	next := s.frequency.NextBillingDate(utc, s.frequencyInterval)
	s.nextBillingDate = &next
	s.totalOrders++
	s.totalSpentCents += amountCents
	s.touch()
}

// AttachSellingPlan links the subscription to a selling plan. The plan name
// is denormalized so the link survives plan deletion.
func (s *Subscription) AttachSellingPlan(planID uint, planName string) {
	s.sellingPlanID = &planID
	s.sellingPlanName = &planName
	s.touch()
}

// UpdatePaymentCard replaces the denormalized payment snapshot.
func (s *Subscription) UpdatePaymentCard(card vo.PaymentCard) {
	s.paymentCard = card
	s.touch()
}

// MarkSynced records a successful provider sync and clears any sync error.
func (s *Subscription) MarkSynced(at time.Time) {
	utc := at.UTC()
	s.lastSyncedAt = &utc
	s.syncError = nil
	s.touch()
}

// SetSyncError records a provider sync failure.
func (s *Subscription) SetSyncError(message string) {
	s.syncError = &message
	s.touch()
}

// MonthlyEquivalentCents normalizes this subscription's recurring charge to a
// monthly-equivalent amount using the fixed per-frequency factor table.
func (s *Subscription) MonthlyEquivalentCents() float64 {
	perCharge := float64(s.priceCents-s.discountCents) * float64(s.quantity)
	interval := s.frequencyInterval
	if interval < 1 {
		interval = 1
	}
	return perCharge * s.frequency.MonthlyFactor() / float64(interval)
}

// Validate performs domain-level validation.
func (s *Subscription) Validate() error {
	if s.tenantID == 0 {
		return fmt.Errorf("tenant ID is required")
	}
	if !s.provider.IsValid() {
		return fmt.Errorf("invalid provider: %s", s.provider)
	}
	if !s.status.IsValid() {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if !s.frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %s", s.frequency)
	}
	if !vo.ValidInterval(s.frequencyInterval) {
		return fmt.Errorf("frequency interval must be between %d and %d, got %d",
			vo.MinFrequencyInterval, vo.MaxFrequencyInterval, s.frequencyInterval)
	}
	if s.quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if s.priceCents < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if s.discountCents < 0 || s.discountCents > s.priceCents {
		return fmt.Errorf("discount must be between 0 and price")
	}
	return nil
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now().UTC()
	s.version++
}
