package models

import "time"

type Budget struct {
	ID         int       `json:"id"`
	UserID     string    `json:"userId"`
	CategoryID int       `json:"categoryId"`
	Amount     float64   `json:"amount"`
	Period     string    `json:"period"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	// Rollover is stored and surfaced but carries no balance forward;
	// the flag is a declared no-op.
	Rollover  bool      `json:"rollover"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BudgetUsage is a budget joined with its derived spend and usage figures.
type BudgetUsage struct {
	Budget
	CategoryName string  `json:"categoryName"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	Exceeded     bool    `json:"exceeded"`
	AlertLevel   string  `json:"alertLevel"`
}

// BudgetAlerts partitions a user's budgets into alert tiers. Budgets under
// 50% usage are deliberately absent.
type BudgetAlerts struct {
	Exceeded []BudgetUsage `json:"exceeded"`
	Warning  []BudgetUsage `json:"warning"`
	Caution  []BudgetUsage `json:"caution"`
}

// BudgetSuggestion is a proposed budget amount derived from historical
// spending plus a safety margin.
type BudgetSuggestion struct {
	CategoryID        int     `json:"categoryId"`
	CategoryName      string  `json:"categoryName"`
	HistoricalAverage float64 `json:"historicalAverage"`
	SuggestedAmount   float64 `json:"suggestedAmount"`
	ExistingAmount    float64 `json:"existingAmount,omitempty"`
	Difference        float64 `json:"difference,omitempty"`
	Assessment        string  `json:"assessment,omitempty"`
}
