package reports

import (
	"fmt"
	"sort"
	"time"

	"grana/models"
)

// TopEntry is one ranked transaction with its share of the type's period
// total.
type TopEntry struct {
	Transaction models.TransactionWithCategory `json:"transaction"`
	Percentage  float64                        `json:"percentage"`
}

// TopData holds the independent income and expense rankings.
type TopData struct {
	Income  []TopEntry `json:"income"`
	Expense []TopEntry `json:"expense"`
}

// Top ranks the N largest transactions per type within the period.
func Top(period models.Period, n int, rows []models.TransactionWithCategory) models.Report {
	if n < 1 {
		n = 1
	}

	data := TopData{
		Income:  topOfType(rows, models.TypeIncome, n),
		Expense: topOfType(rows, models.TypeExpense, n),
	}

	return models.Report{
		Type:   models.ReportTop,
		Period: period,
		Data:   data,
		Summary: fmt.Sprintf("top %d transactions per type between %s and %s",
			n,
			period.Start.Format("2006-01-02"),
			period.End.Format("2006-01-02")),
		GeneratedAt: time.Now(),
	}
}

func topOfType(rows []models.TransactionWithCategory, txType string, n int) []TopEntry {
	var matching []models.TransactionWithCategory
	var total float64
	for _, r := range rows {
		if r.Type == txType {
			matching = append(matching, r)
			total += r.Amount
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		if matching[i].Amount != matching[j].Amount {
			return matching[i].Amount > matching[j].Amount
		}
		return matching[i].Date.Before(matching[j].Date)
	})
	if len(matching) > n {
		matching = matching[:n]
	}

	entries := make([]TopEntry, 0, len(matching))
	for _, m := range matching {
		e := TopEntry{Transaction: m}
		if total > 0 {
			e.Percentage = m.Amount / total * 100
		}
		entries = append(entries, e)
	}
	return entries
}
