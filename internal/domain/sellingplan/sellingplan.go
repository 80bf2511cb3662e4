package sellingplan

import (
	"errors"
	"fmt"
	"time"

	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

// SellingPlan bundles a billing cadence with a discount configuration.
// Products reference plans weakly by ID; deleting a plan never cascades into
// subscriptions, which keep only the denormalized plan name.
type SellingPlan struct {
	id          uint
	sid         string
	tenantID    uint
	name        string
	description string

	frequency         vo.Frequency
	frequencyInterval int

	discountType  DiscountType
	discountValue int64

	productIDs []string
	enabled    bool

	createdAt time.Time
	updatedAt time.Time
}

// NewSellingPlan creates an enabled selling plan.
func NewSellingPlan(tenantID uint, name string, frequency vo.Frequency, interval int, discountType DiscountType, discountValue int64) (*SellingPlan, error) {
	if tenantID == 0 {
		return nil, errors.New("tenant ID is required")
	}
	if name == "" {
		return nil, errors.New("plan name is required")
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid frequency: %s", frequency)
	}
	if interval == 0 {
		interval = 1
	}
	if !vo.ValidInterval(interval) {
		return nil, fmt.Errorf("frequency interval out of range: %d", interval)
	}
	if !discountType.IsValid() {
		return nil, fmt.Errorf("invalid discount type: %s", discountType)
	}
	if discountValue < 0 {
		return nil, errors.New("discount value cannot be negative")
	}

	now := time.Now().UTC()
	return &SellingPlan{
		tenantID:          tenantID,
		name:              name,
		frequency:         frequency,
		frequencyInterval: interval,
		discountType:      discountType,
		discountValue:     discountValue,
		productIDs:        []string{},
		enabled:           true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructSellingPlan rebuilds a plan from persistence.
func ReconstructSellingPlan(
	id uint,
	sid string,
	tenantID uint,
	name, description string,
	frequency vo.Frequency,
	interval int,
	discountType DiscountType,
	discountValue int64,
	productIDs []string,
	enabled bool,
	createdAt, updatedAt time.Time,
) (*SellingPlan, error) {
	if id == 0 {
		return nil, errors.New("selling plan ID cannot be zero")
	}
	if productIDs == nil {
		productIDs = []string{}
	}

	return &SellingPlan{
		id:                id,
		sid:               sid,
		tenantID:          tenantID,
		name:              name,
		description:       description,
		frequency:         frequency,
		frequencyInterval: interval,
		discountType:      discountType,
		discountValue:     discountValue,
		productIDs:        productIDs,
		enabled:           enabled,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (p *SellingPlan) ID() uint                    { return p.id }
func (p *SellingPlan) SID() string                 { return p.sid }
func (p *SellingPlan) TenantID() uint              { return p.tenantID }
func (p *SellingPlan) Name() string                { return p.name }
func (p *SellingPlan) Description() string         { return p.description }
func (p *SellingPlan) Frequency() vo.Frequency     { return p.frequency }
func (p *SellingPlan) FrequencyInterval() int      { return p.frequencyInterval }
func (p *SellingPlan) DiscountType() DiscountType  { return p.discountType }
func (p *SellingPlan) DiscountValue() int64        { return p.discountValue }
func (p *SellingPlan) Enabled() bool               { return p.enabled }
func (p *SellingPlan) CreatedAt() time.Time        { return p.createdAt }
func (p *SellingPlan) UpdatedAt() time.Time        { return p.updatedAt }

func (p *SellingPlan) ProductIDs() []string {
	out := make([]string, len(p.productIDs))
	copy(out, p.productIDs)
	return out
}

func (p *SellingPlan) SetSID(sid string) { p.sid = sid }

// SetIDFromStore sets the plan ID after insert (persistence layer use only).
func (p *SellingPlan) SetIDFromStore(id uint) {
	if p.id == 0 {
		p.id = id
	}
}

func (p *SellingPlan) UpdateName(name string) error {
	if name == "" {
		return errors.New("plan name is required")
	}
	p.name = name
	p.touch()
	return nil
}

func (p *SellingPlan) UpdateDescription(description string) {
	p.description = description
	p.touch()
}

func (p *SellingPlan) UpdateCadence(frequency vo.Frequency, interval int) error {
	if !frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %s", frequency)
	}
	if !vo.ValidInterval(interval) {
		return fmt.Errorf("frequency interval out of range: %d", interval)
	}
	p.frequency = frequency
	p.frequencyInterval = interval
	p.touch()
	return nil
}

func (p *SellingPlan) UpdateDiscount(discountType DiscountType, value int64) error {
	if !discountType.IsValid() {
		return fmt.Errorf("invalid discount type: %s", discountType)
	}
	if value < 0 {
		return errors.New("discount value cannot be negative")
	}
	p.discountType = discountType
	p.discountValue = value
	p.touch()
	return nil
}

func (p *SellingPlan) SetProductIDs(ids []string) {
	p.productIDs = make([]string, len(ids))
	copy(p.productIDs, ids)
	p.touch()
}

// Toggle flips the enabled flag and returns the new state.
func (p *SellingPlan) Toggle() bool {
	p.enabled = !p.enabled
	p.touch()
	return p.enabled
}

func (p *SellingPlan) touch() {
	p.updatedAt = time.Now().UTC()
}
