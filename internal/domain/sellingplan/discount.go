package sellingplan

import "math"

// DiscountType selects how a plan adjusts a base price.
type DiscountType string

const (
	// DiscountPercentage reduces the price by a percentage of itself.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed subtracts a fixed cent amount, floored at zero.
	DiscountFixed DiscountType = "fixed"
	// DiscountPriceOverride replaces the price entirely. Despite the stored
	// value "price" this is an override, not a discount; keep the distinction
	// when adding new call sites.
	DiscountPriceOverride DiscountType = "price"
)

func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountPercentage, DiscountFixed, DiscountPriceOverride:
		return true
	}
	return false
}

func (d DiscountType) String() string {
	return string(d)
}

// CalculateDiscountedPrice applies a discount to a price in cents.
//
// Percentage rounds to the nearest cent and clamps at zero, so a value over
// 100 yields a free product rather than a negative price. Fixed subtracts and
// floors at zero. Price override ignores priceCents and returns the value
// as-is.
func CalculateDiscountedPrice(priceCents int64, discountType DiscountType, discountValue int64) int64 {
	switch discountType {
	case DiscountPercentage:
		discounted := math.Round(float64(priceCents) * (1 - float64(discountValue)/100))
		if discounted < 0 {
			return 0
		}
		return int64(discounted)
	case DiscountFixed:
		discounted := priceCents - discountValue
		if discounted < 0 {
			return 0
		}
		return discounted
	case DiscountPriceOverride:
		return discountValue
	default:
		return priceCents
	}
}
