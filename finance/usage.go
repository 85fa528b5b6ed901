// Package finance holds the pure budget and goal calculators. Every function
// here is total over its documented inputs, touches no storage and keeps no
// state, so callers may invoke them from any goroutine.
package finance

import (
	"time"

	"grana/models"
)

// Usage is the derived consumption picture of a single budget.
type Usage struct {
	Spent      float64 `json:"spent"`
	Limit      float64 `json:"limit"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Exceeded   bool    `json:"exceeded"`
}

// Projection is a linear day-weighted extrapolation of period-end spend.
type Projection struct {
	TotalDays       int        `json:"totalDays"`
	DaysPassed      int        `json:"daysPassed"`
	DaysRemaining   int        `json:"daysRemaining"`
	DailyAverage    float64    `json:"dailyAverage"`
	ProjectedTotal  float64    `json:"projectedTotal"`
	WillExceed      bool       `json:"willExceed"`
	ExceedDate      *time.Time `json:"exceedDate,omitempty"`
	ProjectedExcess float64    `json:"projectedExcess"`
}

// CalculateUsage computes spend versus limit. Budget validation guarantees
// limit > 0 upstream; a non-positive limit still resolves the percentage to
// 0 instead of NaN.
func CalculateUsage(spent, limit float64) Usage {
	u := Usage{
		Spent:     spent,
		Limit:     limit,
		Remaining: limit - spent,
		Exceeded:  spent > limit,
	}
	if limit > 0 {
		u.Percentage = spent / limit * 100
	}
	return u
}

// AlertLevel classifies a usage percentage, highest tier first.
// Boundaries are inclusive: 100 is exceeded, 80 warning, 50 caution.
func AlertLevel(percentage float64) string {
	switch {
	case percentage >= 100:
		return models.AlertExceeded
	case percentage >= 80:
		return models.AlertWarning
	case percentage >= 50:
		return models.AlertCaution
	default:
		return models.AlertSafe
	}
}

// CalculateProjection extrapolates period-end spend from the pace so far.
// Day counting is inclusive: the start day counts as day 1. The model is
// deliberately a straight line, no smoothing or outlier rejection.
func CalculateProjection(now, start, end time.Time, spent, limit float64) Projection {
	p := Projection{
		TotalDays:  daysBetween(start, end) + 1,
		DaysPassed: daysBetween(start, now) + 1,
	}

	p.DaysRemaining = p.TotalDays - p.DaysPassed
	if p.DaysRemaining < 0 {
		p.DaysRemaining = 0
	}
	// DaysPassed goes negative before the window starts; the remainder
	// never exceeds the window itself.
	if p.DaysRemaining > p.TotalDays {
		p.DaysRemaining = p.TotalDays
	}

	// Before the window starts there is no pace to project from.
	if p.DaysPassed > 0 {
		p.DailyAverage = spent / float64(p.DaysPassed)
	}
	p.ProjectedTotal = p.DailyAverage * float64(p.TotalDays)
	p.WillExceed = p.ProjectedTotal > limit

	if p.WillExceed {
		p.ProjectedExcess = p.ProjectedTotal - limit
		if p.DailyAverage > 0 {
			daysToLimit := limit / p.DailyAverage
			exceed := start.Add(time.Duration(daysToLimit * 24 * float64(time.Hour)))
			p.ExceedDate = &exceed
		}
	}
	return p
}

// daysBetween floors the elapsed time between two instants to whole days.
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		// integer division truncates toward zero; force floor for
		// dates before the window start
		return -int((-d + 24*time.Hour - 1) / (24 * time.Hour))
	}
	return int(d / (24 * time.Hour))
}
