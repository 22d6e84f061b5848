package services

import (
	"math"
	"time"

	"asset-system/pkg/constants"
)

const daysPerYear = 365.25

// ComputeDepreciation returns the straight-line depreciation accrued between
// receivedDate and asOf, rounded to cents and clamped to [0, cost].
func ComputeDepreciation(cost int64, receivedDate *time.Time, usefulLife int, asOf time.Time) float64 {
	if receivedDate == nil || cost <= 0 {
		return 0
	}
	if usefulLife <= 0 {
		usefulLife = constants.DefaultUsefulLifeYears
	}

	days := calendarDays(*receivedDate, asOf)
	if days <= 0 {
		return 0
	}
	years := float64(days) / daysPerYear
	annual := float64(cost) / float64(usefulLife)

	raw := math.Round(annual*years*100) / 100
	return math.Min(raw, float64(cost))
}

// CurrentValue is the book value left after depreciation.
func CurrentValue(cost int64, depreciation float64) float64 {
	return math.Round((float64(cost)-depreciation)*100) / 100
}

// calendarDays counts whole days between the dates of from and to, ignoring
// the time of day.
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
