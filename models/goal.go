package models

import "time"

type Goal struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"userId"`
	Name                string     `json:"name"`
	TargetAmount        float64    `json:"targetAmount"`
	CurrentAmount       float64    `json:"currentAmount"`
	MonthlyContribution float64    `json:"monthlyContribution,omitempty"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	Status              string     `json:"status"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// GoalContribution is one entry of a goal's append-only ledger. Positive
// amounts are deposits, negative amounts withdrawals; zero is rejected.
type GoalContribution struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goalId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
