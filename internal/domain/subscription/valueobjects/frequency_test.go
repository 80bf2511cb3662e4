package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Frequency
		wantErr bool
	}{
		{name: "weekly", input: "weekly", want: FrequencyWeekly},
		{name: "monthly", input: "monthly", want: FrequencyMonthly},
		{name: "annually", input: "annually", want: FrequencyAnnually},
		{name: "unknown", input: "fortnightly", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthlyFactor(t *testing.T) {
	tests := []struct {
		freq Frequency
		want float64
	}{
		{FrequencyWeekly, 4.33},
		{FrequencyBiweekly, 2.17},
		{FrequencyMonthly, 1},
		{FrequencyBimonthly, 1.0 / 2},
		{FrequencyQuarterly, 1.0 / 3},
		{FrequencySemiannually, 1.0 / 6},
		{FrequencyAnnually, 1.0 / 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.freq.MonthlyFactor(), 1e-9)
		})
	}

	// Unknown frequencies fall back to the monthly factor instead of
	// zeroing out revenue.
	assert.Equal(t, 1.0, Frequency("bogus").MonthlyFactor())
}

func TestNextBillingDate(t *testing.T) {
	from := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		freq     Frequency
		interval int
		want     time.Time
	}{
		{"weekly x1", FrequencyWeekly, 1, from.AddDate(0, 0, 7)},
		{"weekly x2", FrequencyWeekly, 2, from.AddDate(0, 0, 14)},
		{"biweekly x1", FrequencyBiweekly, 1, from.AddDate(0, 0, 14)},
		{"monthly x1", FrequencyMonthly, 1, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"monthly x3", FrequencyMonthly, 3, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"bimonthly x1", FrequencyBimonthly, 1, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)},
		{"quarterly x1", FrequencyQuarterly, 1, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"semiannually x1", FrequencySemiannually, 1, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		{"annually x1", FrequencyAnnually, 1, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"unknown falls back to monthly", Frequency("bogus"), 2, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.freq.NextBillingDate(from, tt.interval))
		})
	}
}

func TestValidInterval(t *testing.T) {
	assert.True(t, ValidInterval(1))
	assert.True(t, ValidInterval(12))
	assert.False(t, ValidInterval(0))
	assert.False(t, ValidInterval(13))
	assert.False(t, ValidInterval(-1))
}
