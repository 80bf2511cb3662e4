package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyWeekly       Frequency = "weekly"
	FrequencyBiweekly     Frequency = "biweekly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencyBimonthly    Frequency = "bimonthly"
	FrequencyQuarterly    Frequency = "quarterly"
	FrequencySemiannually Frequency = "semiannually"
	FrequencyAnnually     Frequency = "annually"
)

var ValidFrequencies = map[Frequency]bool{
	FrequencyWeekly:       true,
	FrequencyBiweekly:     true,
	FrequencyMonthly:      true,
	FrequencyBimonthly:    true,
	FrequencyQuarterly:    true,
	FrequencySemiannually: true,
	FrequencyAnnually:     true,
}

// Interval bounds for frequency_interval.
const (
	MinFrequencyInterval = 1
	MaxFrequencyInterval = 12
)

// monthlyFactors converts one charge at a given frequency to a
// monthly-equivalent amount. The weekly and biweekly factors embed the
// "weeks per month ≈ 4.33" assumption rather than exact calendar math;
// dashboards already rely on these exact numbers.
var monthlyFactors = map[Frequency]float64{
	FrequencyWeekly:       4.33,
	FrequencyBiweekly:     2.17,
	FrequencyMonthly:      1,
	FrequencyBimonthly:    1.0 / 2,
	FrequencyQuarterly:    1.0 / 3,
	FrequencySemiannually: 1.0 / 6,
	FrequencyAnnually:     1.0 / 12,
}

func ParseFrequency(value string) (Frequency, error) {
	normalized := Frequency(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", fmt.Errorf("frequency cannot be empty")
	}
	if !ValidFrequencies[normalized] {
		return "", fmt.Errorf("invalid frequency: %s", value)
	}
	return normalized, nil
}

func (f Frequency) String() string {
	return string(f)
}

func (f Frequency) IsValid() bool {
	return ValidFrequencies[f]
}

// MonthlyFactor returns the monthly-equivalent multiplier for one charge at
// this frequency. Unknown frequencies count as monthly.
func (f Frequency) MonthlyFactor() float64 {
	if factor, ok := monthlyFactors[f]; ok {
		return factor
	}
	return 1
}

// NextBillingDate advances from the given date by interval periods.
// Unrecognized frequencies fall back to one month per interval, matching the
// billing-date auto-fix behavior.
func (f Frequency) NextBillingDate(from time.Time, interval int) time.Time {
	if interval < MinFrequencyInterval {
		interval = MinFrequencyInterval
	}

	switch f {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7*interval)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14*interval)
	case FrequencyMonthly:
		return from.AddDate(0, interval, 0)
	case FrequencyBimonthly:
		return from.AddDate(0, 2*interval, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3*interval, 0)
	case FrequencySemiannually:
		return from.AddDate(0, 6*interval, 0)
	case FrequencyAnnually:
		return from.AddDate(interval, 0, 0)
	default:
		return from.AddDate(0, interval, 0)
	}
}

// ValidInterval reports whether interval is inside the allowed [1,12] range.
func ValidInterval(interval int) bool {
	return interval >= MinFrequencyInterval && interval <= MaxFrequencyInterval
}
