package valueobjects

import "time"

// PaymentCard is a denormalized snapshot of the customer's payment method.
// It is display/validation data only, never a payment credential.
type PaymentCard struct {
	Last4    string
	Brand    string
	ExpMonth int
	ExpYear  int
}

// IsZero reports whether no snapshot has been recorded.
func (c PaymentCard) IsZero() bool {
	return c.Last4 == "" && c.Brand == "" && c.ExpMonth == 0 && c.ExpYear == 0
}

// HasExpiry reports whether the snapshot carries a usable expiry date.
func (c PaymentCard) HasExpiry() bool {
	return c.ExpMonth >= 1 && c.ExpMonth <= 12 && c.ExpYear > 0
}

// expiresAt returns the last instant of the card's expiry month.
func (c PaymentCard) expiresAt() time.Time {
	return time.Date(c.ExpYear, time.Month(c.ExpMonth), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// IsExpired reports whether the card has already expired at the given time.
func (c PaymentCard) IsExpired(now time.Time) bool {
	if !c.HasExpiry() {
		return false
	}
	return c.expiresAt().Before(now.UTC())
}

// IsExpiringSoon reports whether the card is expired or expires within the
// next calendar month of now.
func (c PaymentCard) IsExpiringSoon(now time.Time) bool {
	if !c.HasExpiry() {
		return false
	}
	now = now.UTC()
	endOfNextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 2, 0).Add(-time.Nanosecond)
	return !c.expiresAt().After(endOfNextMonth)
}
