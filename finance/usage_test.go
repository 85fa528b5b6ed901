package finance

import (
	"testing"
	"time"

	"grana/models"
)

func TestCalculateUsageWarningScenario(t *testing.T) {
	u := CalculateUsage(850, 1000)

	if u.Percentage != 85 {
		t.Errorf("expected percentage 85, got %v", u.Percentage)
	}
	if u.Remaining != 150 {
		t.Errorf("expected remaining 150, got %v", u.Remaining)
	}
	if u.Exceeded {
		t.Error("expected exceeded to be false")
	}
	if level := AlertLevel(u.Percentage); level != models.AlertWarning {
		t.Errorf("expected alert level %q, got %q", models.AlertWarning, level)
	}
}

func TestCalculateUsageExceededScenario(t *testing.T) {
	u := CalculateUsage(600, 500)

	if !u.Exceeded {
		t.Error("expected exceeded to be true")
	}
	if u.Remaining != -100 {
		t.Errorf("expected remaining -100, got %v", u.Remaining)
	}
	if u.Percentage != 120 {
		t.Errorf("expected percentage 120, got %v", u.Percentage)
	}
	if level := AlertLevel(u.Percentage); level != models.AlertExceeded {
		t.Errorf("expected alert level %q, got %q", models.AlertExceeded, level)
	}
}

func TestCalculateUsageZeroLimitGuard(t *testing.T) {
	u := CalculateUsage(100, 0)
	if u.Percentage != 0 {
		t.Errorf("percentage with zero limit must be 0, got %v", u.Percentage)
	}
}

func TestCalculateUsageIsPure(t *testing.T) {
	a := CalculateUsage(850, 1000)
	b := CalculateUsage(850, 1000)
	if a != b {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", a, b)
	}
}

func TestAlertLevelBoundaries(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{0, models.AlertSafe},
		{49.99, models.AlertSafe},
		{50, models.AlertCaution},
		{79.99, models.AlertCaution},
		{80, models.AlertWarning},
		{99.99, models.AlertWarning},
		{100, models.AlertExceeded},
		{250, models.AlertExceeded},
	}

	for _, tt := range tests {
		if got := AlertLevel(tt.percentage); got != tt.want {
			t.Errorf("AlertLevel(%v) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}

func TestCalculateProjection(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// 500 spent over 10 days of a 31-day window with a 1000 limit:
	// 50/day projects to 1550.
	p := CalculateProjection(now, start, end, 500, 1000)

	if p.TotalDays != 31 {
		t.Errorf("expected 31 total days, got %d", p.TotalDays)
	}
	if p.DaysPassed != 10 {
		t.Errorf("expected 10 days passed, got %d", p.DaysPassed)
	}
	if p.DaysRemaining != 21 {
		t.Errorf("expected 21 days remaining, got %d", p.DaysRemaining)
	}
	if p.DailyAverage != 50 {
		t.Errorf("expected daily average 50, got %v", p.DailyAverage)
	}
	if p.ProjectedTotal != 1550 {
		t.Errorf("expected projected total 1550, got %v", p.ProjectedTotal)
	}
	if !p.WillExceed {
		t.Error("expected willExceed true")
	}
	if p.ProjectedExcess != 550 {
		t.Errorf("expected projected excess 550, got %v", p.ProjectedExcess)
	}
	if p.ExceedDate == nil {
		t.Fatal("expected an exceed date")
	}
	// limit/dailyAverage = 20 days from start
	wantExceed := start.Add(20 * 24 * time.Hour)
	if !p.ExceedDate.Equal(wantExceed) {
		t.Errorf("expected exceed date %v, got %v", wantExceed, *p.ExceedDate)
	}
}

func TestCalculateProjectionUnderPace(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	p := CalculateProjection(now, start, end, 200, 1000)

	if p.WillExceed {
		t.Error("expected willExceed false")
	}
	if p.ExceedDate != nil {
		t.Errorf("expected no exceed date, got %v", *p.ExceedDate)
	}
	if p.ProjectedExcess != 0 {
		t.Errorf("expected zero projected excess, got %v", p.ProjectedExcess)
	}
}

func TestCalculateProjectionBeforeWindowStart(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	// now is before the window start: daysPassed <= 0 must never divide.
	p := CalculateProjection(now, start, end, 500, 1000)

	if p.DaysPassed > 0 {
		t.Errorf("expected non-positive days passed, got %d", p.DaysPassed)
	}
	if p.DaysRemaining != p.TotalDays {
		t.Errorf("expected remaining days clamped to %d, got %d", p.TotalDays, p.DaysRemaining)
	}
	if p.DailyAverage != 0 {
		t.Errorf("expected zero daily average, got %v", p.DailyAverage)
	}
	if p.ProjectedTotal != 0 {
		t.Errorf("expected zero projected total, got %v", p.ProjectedTotal)
	}
}

func TestCalculateProjectionSingleDayWindow(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p := CalculateProjection(day, day, day, 100, 50)

	if p.TotalDays != 1 || p.DaysPassed != 1 {
		t.Errorf("expected 1/1 days, got %d/%d", p.DaysPassed, p.TotalDays)
	}
	if p.DailyAverage != 100 {
		t.Errorf("expected daily average 100, got %v", p.DailyAverage)
	}
	if !p.WillExceed {
		t.Error("expected willExceed true")
	}
}
