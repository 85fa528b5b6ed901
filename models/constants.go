package models

// Transaction and category types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Budget period kinds
const (
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"
	PeriodCustom  = "custom"
)

// Budget alert levels, ordered from calmest to loudest
const (
	AlertSafe     = "safe"
	AlertCaution  = "caution"
	AlertWarning  = "warning"
	AlertExceeded = "exceeded"
)

// Goal lifecycle states
const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalCancelled = "cancelled"
)

// Report types
const (
	ReportMonthly     = "monthly"
	ReportCategory    = "category"
	ReportEvolution   = "evolution"
	ReportTop         = "top"
	ReportComparative = "comparative"
	ReportPattern     = "pattern"
)

// MaxDescriptionLength caps transaction descriptions.
const MaxDescriptionLength = 200
