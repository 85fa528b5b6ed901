package finance

import (
	"math"

	"grana/models"
)

// DefaultSuggestionMargin is the safety factor applied on top of the
// historical average when proposing a budget.
const DefaultSuggestionMargin = 1.1

// Suggestion assessments relative to an existing budget.
const (
	AssessmentAdequate = "adequate"
	AssessmentIncrease = "consider increasing"
	AssessmentReduce   = "consider reducing"
)

// SuggestBudget proposes a budget amount from a historical spending average,
// rounded up to the next whole unit.
func SuggestBudget(historicalAverage, margin float64) float64 {
	return math.Ceil(historicalAverage * margin)
}

// ClassifySuggestion compares a suggested amount against an existing budget.
// Changes under 5% of the existing amount are considered adequate.
func ClassifySuggestion(suggested, existing float64) (difference float64, assessment string) {
	difference = suggested - existing

	var percentChange float64
	if existing > 0 {
		percentChange = difference / existing * 100
	}

	switch {
	case math.Abs(percentChange) < 5:
		assessment = AssessmentAdequate
	case difference > 0:
		assessment = AssessmentIncrease
	default:
		assessment = AssessmentReduce
	}
	return difference, assessment
}

// PartitionAlerts splits budgets into alert tiers by usage percentage.
// Budgets under 50% usage are filtered out entirely; that threshold is the
// intended alert floor, not an omission.
func PartitionAlerts(budgets []models.BudgetUsage) models.BudgetAlerts {
	var alerts models.BudgetAlerts
	for _, b := range budgets {
		switch {
		case b.Percentage >= 100:
			alerts.Exceeded = append(alerts.Exceeded, b)
		case b.Percentage >= 80:
			alerts.Warning = append(alerts.Warning, b)
		case b.Percentage >= 50:
			alerts.Caution = append(alerts.Caution, b)
		}
	}
	return alerts
}
