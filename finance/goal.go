package finance

import (
	"math"
	"time"
)

// Progress is a goal's completion picture. Percentage may exceed 100 when a
// goal is overfunded; Remaining never goes below zero.
type Progress struct {
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
}

// CompletionEstimate projects when a goal will be reached at the planned
// monthly contribution pace.
type CompletionEstimate struct {
	Date         time.Time `json:"date"`
	MonthsNeeded int       `json:"monthsNeeded"`
	IsOnTrack    bool      `json:"isOnTrack"`
}

// DeadlineStatus reports the time left until a goal's deadline.
type DeadlineStatus struct {
	Days      int  `json:"days"`
	IsOverdue bool `json:"isOverdue"`
}

// CalculateProgress computes how far along a goal is. Goal validation
// guarantees target > 0; a non-positive target resolves the percentage to 0.
func CalculateProgress(current, target float64) Progress {
	p := Progress{Remaining: target - current}
	if p.Remaining < 0 {
		p.Remaining = 0
	}
	if target > 0 {
		p.Percentage = current / target * 100
	}
	return p
}

// EstimateCompletion projects the completion date from the monthly
// contribution plan. Returns nil when no contribution plan is set, since
// there is nothing to extrapolate from.
func EstimateCompletion(current, target, monthlyContribution float64, deadline *time.Time, now time.Time) *CompletionEstimate {
	if monthlyContribution <= 0 {
		return nil
	}

	missing := target - current
	months := 0
	if missing > 0 {
		months = int(math.Ceil(missing / monthlyContribution))
	}

	est := &CompletionEstimate{
		Date:         now.AddDate(0, months, 0),
		MonthsNeeded: months,
		IsOnTrack:    true,
	}
	if deadline != nil && est.Date.After(*deadline) {
		est.IsOnTrack = false
	}
	return est
}

// DaysRemaining counts the days until the deadline, rounding partial days
// up. Returns nil when the goal has no deadline.
func DaysRemaining(deadline *time.Time, now time.Time) *DeadlineStatus {
	if deadline == nil {
		return nil
	}
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	return &DeadlineStatus{Days: days, IsOverdue: days < 0}
}
