package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDepreciation(t *testing.T) {
	asOf := date(2024, time.January, 1)

	tests := []struct {
		name       string
		cost       int64
		received   *time.Time
		usefulLife int
		want       float64
	}{
		{name: "no received date", cost: 1000, received: nil, usefulLife: 5, want: 0},
		{name: "received today", cost: 1000, received: &asOf, usefulLife: 5, want: 0},
		{name: "received in the future", cost: 1000, received: ptrTime(date(2025, time.January, 1)), usefulLife: 5, want: 0},
		// 365 days / 365.25 * 200
		{name: "one calendar year", cost: 1000, received: ptrTime(date(2023, time.January, 1)), usefulLife: 5, want: 199.86},
		{name: "three years of six", cost: 1200, received: ptrTime(date(2021, time.January, 1)), usefulLife: 6, want: 599.59},
		{name: "clamped to cost", cost: 1000, received: ptrTime(date(2010, time.January, 1)), usefulLife: 5, want: 1000},
		{name: "non-positive useful life uses default", cost: 1000, received: ptrTime(date(2023, time.January, 1)), usefulLife: 0, want: 199.86},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDepreciation(tt.cost, tt.received, tt.usefulLife, asOf)
			assert.InDelta(t, tt.want, got, 0.001)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, float64(tt.cost))
		})
	}
}

func TestComputeDepreciation_IgnoresTimeOfDay(t *testing.T) {
	received := time.Date(2023, time.January, 1, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2024, time.January, 1, 0, 1, 0, 0, time.UTC)

	assert.InDelta(t, 199.86, ComputeDepreciation(1000, &received, 5, asOf), 0.001)
}

func TestCurrentValue(t *testing.T) {
	assert.InDelta(t, 800.14, CurrentValue(1000, 199.86), 0.001)
	assert.Zero(t, CurrentValue(1000, 1000))
}

func ptrTime(t time.Time) *time.Time { return &t }
