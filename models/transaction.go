package models

import "time"

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CategoryID  int       `json:"categoryId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TransactionWithCategory is the JOIN view the report aggregator consumes.
// The category columns are explicit fields instead of ad-hoc attachments so
// the calculators never depend on a SQL row shape.
type TransactionWithCategory struct {
	Transaction
	CategoryName  string `json:"categoryName"`
	CategoryType  string `json:"categoryType"`
	CategoryIcon  string `json:"categoryIcon,omitempty"`
	CategoryColor string `json:"categoryColor,omitempty"`
}
