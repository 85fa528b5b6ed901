package reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"grana/models"
)

// PeriodSummary is one period's totals inside a comparative report.
type PeriodSummary struct {
	Period  models.Period `json:"period"`
	Income  float64       `json:"income"`
	Expense float64       `json:"expense"`
	Balance float64       `json:"balance"`
}

// VariationSet holds absolute diffs and percentage variations between the
// two compared periods. Variations are relative to the prior period and
// resolve to 0 when the prior value is 0.
type VariationSet struct {
	IncomeDiff       float64 `json:"incomeDiff"`
	ExpenseDiff      float64 `json:"expenseDiff"`
	BalanceDiff      float64 `json:"balanceDiff"`
	IncomeVariation  float64 `json:"incomeVariation"`
	ExpenseVariation float64 `json:"expenseVariation"`
	BalanceVariation float64 `json:"balanceVariation"`
}

// CategoryVariation is one category's change between the two periods,
// reported sorted by absolute difference.
type CategoryVariation struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Prior      float64 `json:"prior"`
	Current    float64 `json:"current"`
	Difference float64 `json:"difference"`
	Variation  float64 `json:"variation"`
}

// ComparativeData is the payload of a comparative report.
type ComparativeData struct {
	Prior      PeriodSummary       `json:"prior"`
	Current    PeriodSummary       `json:"current"`
	Variation  VariationSet        `json:"variation"`
	Categories []CategoryVariation `json:"categories"`
	Insights   []string            `json:"insights"`
}

// Comparative builds two independent period summaries plus derived diffs,
// category-level variation and textual insights.
func Comparative(prior, current models.Period, priorRows, currentRows []models.TransactionWithCategory) models.Report {
	data := ComparativeData{
		Prior:      summarizePeriod(prior, priorRows),
		Current:    summarizePeriod(current, currentRows),
		Categories: categoryVariations(priorRows, currentRows),
	}

	data.Variation = VariationSet{
		IncomeDiff:  data.Current.Income - data.Prior.Income,
		ExpenseDiff: data.Current.Expense - data.Prior.Expense,
		BalanceDiff: data.Current.Balance - data.Prior.Balance,
	}
	data.Variation.IncomeVariation = percentVariation(data.Variation.IncomeDiff, data.Prior.Income)
	data.Variation.ExpenseVariation = percentVariation(data.Variation.ExpenseDiff, data.Prior.Expense)
	data.Variation.BalanceVariation = percentVariation(data.Variation.BalanceDiff, data.Prior.Balance)

	data.Insights = comparativeInsights(data.Variation)

	return models.Report{
		Type: models.ReportComparative,
		Period: models.Period{
			Start: prior.Start,
			End:   current.End,
			Label: fmt.Sprintf("%s vs %s", prior.Label, current.Label),
		},
		Data: data,
		Summary: fmt.Sprintf("income %+.1f%%, expenses %+.1f%%, balance %+.1f%%",
			data.Variation.IncomeVariation,
			data.Variation.ExpenseVariation,
			data.Variation.BalanceVariation),
		GeneratedAt: time.Now(),
	}
}

func summarizePeriod(period models.Period, rows []models.TransactionWithCategory) PeriodSummary {
	s := PeriodSummary{Period: period}
	for _, r := range rows {
		switch r.Type {
		case models.TypeIncome:
			s.Income += r.Amount
		case models.TypeExpense:
			s.Expense += r.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

func percentVariation(diff, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return diff / prior * 100
}

func categoryVariations(priorRows, currentRows []models.TransactionWithCategory) []CategoryVariation {
	type key struct {
		name   string
		txType string
	}
	totals := map[key]*CategoryVariation{}

	add := func(rows []models.TransactionWithCategory, current bool) {
		for _, r := range rows {
			k := key{r.CategoryName, r.Type}
			v, ok := totals[k]
			if !ok {
				v = &CategoryVariation{Name: r.CategoryName, Type: r.Type}
				totals[k] = v
			}
			if current {
				v.Current += r.Amount
			} else {
				v.Prior += r.Amount
			}
		}
	}
	add(priorRows, false)
	add(currentRows, true)

	out := make([]CategoryVariation, 0, len(totals))
	for _, v := range totals {
		v.Difference = v.Current - v.Prior
		v.Variation = percentVariation(v.Difference, v.Prior)
		out = append(out, *v)
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := math.Abs(out[i].Difference), math.Abs(out[j].Difference)
		if di != dj {
			return di > dj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// comparativeInsights emits a sentence per significant swing: over 10% for
// income and expenses, over 15% for the balance.
func comparativeInsights(v VariationSet) []string {
	var insights []string

	if math.Abs(v.IncomeVariation) > 10 {
		direction := "grew"
		if v.IncomeVariation < 0 {
			direction = "fell"
		}
		insights = append(insights, fmt.Sprintf("income %s %.1f%% against the prior period", direction, math.Abs(v.IncomeVariation)))
	}
	if math.Abs(v.ExpenseVariation) > 10 {
		direction := "grew"
		if v.ExpenseVariation < 0 {
			direction = "fell"
		}
		insights = append(insights, fmt.Sprintf("expenses %s %.1f%% against the prior period", direction, math.Abs(v.ExpenseVariation)))
	}
	if math.Abs(v.BalanceVariation) > 15 {
		direction := "improved"
		if v.BalanceVariation < 0 {
			direction = "worsened"
		}
		insights = append(insights, fmt.Sprintf("balance %s %.1f%% against the prior period", direction, math.Abs(v.BalanceVariation)))
	}
	return insights
}
