package saveflow

import (
	"encoding/json"
	"fmt"

	"github.com/retain-hq/retain/internal/domain/sellingplan"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
)

// OfferType is the closed set of retention offer kinds.
type OfferType string

const (
	OfferDiscount        OfferType = "discount"
	OfferPause           OfferType = "pause"
	OfferSkip            OfferType = "skip"
	OfferFrequencyChange OfferType = "frequency_change"
	OfferFreeShipping    OfferType = "free_shipping"
	OfferGift            OfferType = "gift"
)

// Offer is a tagged union over the six offer kinds, analogous to Step.
type Offer struct {
	Type            OfferType             `json:"type"`
	Label           string                `json:"label,omitempty"`
	Discount        *DiscountOffer        `json:"discount,omitempty"`
	Pause           *PauseOffer           `json:"pause,omitempty"`
	Skip            *SkipOffer            `json:"skip,omitempty"`
	FrequencyChange *FrequencyChangeOffer `json:"frequency_change,omitempty"`
	FreeShipping    *FreeShippingOffer    `json:"free_shipping,omitempty"`
	Gift            *GiftOffer            `json:"gift,omitempty"`
}

// DiscountOffer reduces the subscription price, optionally for a limited
// number of billing cycles.
type DiscountOffer struct {
	DiscountType   sellingplan.DiscountType `json:"discount_type"`
	Value          int64                    `json:"value"`
	DurationCycles int                      `json:"duration_cycles,omitempty"`
}

// PauseOffer proposes pausing instead of cancelling.
type PauseOffer struct {
	MaxDays int `json:"max_days"`
}

// SkipOffer proposes skipping upcoming orders.
type SkipOffer struct {
	Count int `json:"count"`
}

// FrequencyChangeOffer proposes a slower cadence.
type FrequencyChangeOffer struct {
	Frequency vo.Frequency `json:"frequency"`
	Interval  int          `json:"interval"`
}

// FreeShippingOffer waives shipping, optionally for a limited number of
// cycles.
type FreeShippingOffer struct {
	DurationCycles int `json:"duration_cycles,omitempty"`
}

// GiftOffer adds a free product to the next order.
type GiftOffer struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
}

func (o *Offer) Validate() error {
	switch o.Type {
	case OfferDiscount:
		if o.Discount == nil {
			return fmt.Errorf("discount offer missing config")
		}
		if !o.Discount.DiscountType.IsValid() {
			return fmt.Errorf("discount offer has invalid discount type %q", o.Discount.DiscountType)
		}
	case OfferPause:
		if o.Pause == nil {
			return fmt.Errorf("pause offer missing config")
		}
	case OfferSkip:
		if o.Skip == nil {
			return fmt.Errorf("skip offer missing config")
		}
		if o.Skip.Count < 1 {
			return fmt.Errorf("skip offer requires a positive count")
		}
	case OfferFrequencyChange:
		if o.FrequencyChange == nil {
			return fmt.Errorf("frequency_change offer missing config")
		}
		if !o.FrequencyChange.Frequency.IsValid() {
			return fmt.Errorf("frequency_change offer has invalid frequency %q", o.FrequencyChange.Frequency)
		}
		if !vo.ValidInterval(o.FrequencyChange.Interval) {
			return fmt.Errorf("frequency_change offer interval out of range: %d", o.FrequencyChange.Interval)
		}
	case OfferFreeShipping:
		// Config is optional; a nil FreeShipping means indefinite.
	case OfferGift:
		if o.Gift == nil || o.Gift.ProductID == "" {
			return fmt.Errorf("gift offer requires a product ID")
		}
	default:
		return fmt.Errorf("unknown offer type: %q", o.Type)
	}
	return nil
}

// UnmarshalJSON decodes an offer and rejects unknown kinds.
func (o *Offer) UnmarshalJSON(data []byte) error {
	type alias Offer
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = Offer(a)
	return o.Validate()
}

// OfferList is the ordered offer configuration stored as a JSON column.
type OfferList []Offer

func (l OfferList) Validate() error {
	for i := range l {
		if err := l[i].Validate(); err != nil {
			return fmt.Errorf("offer %d: %w", i, err)
		}
	}
	return nil
}
