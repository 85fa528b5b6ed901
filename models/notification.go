package models

import "time"

// Notification is written by the alert sweep when a budget crosses into the
// warning or exceeded tier.
type Notification struct {
	ID         int       `json:"id"`
	UserID     string    `json:"userId"`
	BudgetID   int       `json:"budgetId"`
	AlertLevel string    `json:"alertLevel"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
