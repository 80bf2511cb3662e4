package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrOrderNotFound        = errors.New("subscription order not found")
	ErrInvalidStatus        = errors.New("invalid subscription status")
	ErrInvalidFrequency     = errors.New("invalid billing frequency")
	ErrInvalidInterval      = errors.New("frequency interval out of range")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrDiscountExceedsPrice = errors.New("discount cannot exceed price")
	ErrOrderNotSkippable    = errors.New("only scheduled orders can be skipped")
	ErrNoScheduledOrders    = errors.New("subscription has no scheduled orders")
)
