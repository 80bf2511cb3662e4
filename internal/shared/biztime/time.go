// Package biztime centralizes time handling for business logic.
// All persisted timestamps are UTC; formatting for display happens at the edges.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first instant of t's month in UTC.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfNextMonth returns the last instant of the month after t's month.
// Used for payment-expiry windows that look one calendar month ahead.
func EndOfNextMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 2, 0).Add(-time.Nanosecond)
}
