// Package reports turns already-fetched transaction rows into the report
// bundles the HTTP layer and exporters consume. All aggregation here is pure
// grouping and summation; fetching the rows is the storage layer's job.
package reports

import (
	"fmt"
	"sort"
	"time"

	"grana/currency"
	"grana/models"
)

// TypeSummary is the sum/count/average triple for one transaction type.
type TypeSummary struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// CategorySlice is one category's share of a period.
type CategorySlice struct {
	CategoryID int     `json:"categoryId"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DayAmount pairs a calendar day with its expense total.
type DayAmount struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DailyStats summarizes expense behavior across the days of a month.
// The average only counts days that actually had spend.
type DailyStats struct {
	ActiveDays       int        `json:"activeDays"`
	ActiveDayAverage float64    `json:"activeDayAverage"`
	MaxExpenseDay    *DayAmount `json:"maxExpenseDay,omitempty"`
	MinExpenseDay    *DayAmount `json:"minExpenseDay,omitempty"`
}

// MonthlyData is the payload of a monthly report.
type MonthlyData struct {
	Income     TypeSummary     `json:"income"`
	Expense    TypeSummary     `json:"expense"`
	Balance    float64         `json:"balance"`
	Categories []CategorySlice `json:"categories"`
	Daily      DailyStats      `json:"daily"`
}

// Monthly aggregates one calendar month of rows.
func Monthly(year int, month time.Month, rows []models.TransactionWithCategory) models.Report {
	data := MonthlyData{
		Income:     summarizeType(rows, models.TypeIncome),
		Expense:    summarizeType(rows, models.TypeExpense),
		Categories: categorySlices(rows),
		Daily:      dailyStats(rows),
	}
	data.Balance = data.Income.Total - data.Expense.Total

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return models.Report{
		Type: models.ReportMonthly,
		Period: models.Period{
			Start: start,
			End:   end,
			Label: start.Format("January 2006"),
		},
		Data: data,
		Summary: fmt.Sprintf("%s: income %s, expenses %s, balance %s",
			start.Format("January 2006"),
			currency.FormatFloat(data.Income.Total),
			currency.FormatFloat(data.Expense.Total),
			currency.FormatFloat(data.Balance)),
		GeneratedAt: time.Now(),
	}
}

// ByCategory aggregates an arbitrary period of rows per category.
func ByCategory(period models.Period, rows []models.TransactionWithCategory) models.Report {
	slices := categorySlices(rows)
	return models.Report{
		Type:   models.ReportCategory,
		Period: period,
		Data:   slices,
		Summary: fmt.Sprintf("%d categories with activity between %s and %s",
			len(slices),
			period.Start.Format("2006-01-02"),
			period.End.Format("2006-01-02")),
		GeneratedAt: time.Now(),
	}
}

func summarizeType(rows []models.TransactionWithCategory, txType string) TypeSummary {
	var s TypeSummary
	for _, r := range rows {
		if r.Type != txType {
			continue
		}
		s.Total += r.Amount
		s.Count++
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}

// categorySlices groups rows by category; each slice's percentage is its
// share of that transaction type's total, 0 when the type total is 0.
func categorySlices(rows []models.TransactionWithCategory) []CategorySlice {
	typeTotals := map[string]float64{}
	byCategory := map[int]*CategorySlice{}

	for _, r := range rows {
		typeTotals[r.Type] += r.Amount
		slice, ok := byCategory[r.CategoryID]
		if !ok {
			slice = &CategorySlice{
				CategoryID: r.CategoryID,
				Name:       r.CategoryName,
				Type:       r.Type,
			}
			byCategory[r.CategoryID] = slice
		}
		slice.Total += r.Amount
		slice.Count++
	}

	slices := make([]CategorySlice, 0, len(byCategory))
	for _, s := range byCategory {
		if total := typeTotals[s.Type]; total > 0 {
			s.Percentage = s.Total / total * 100
		}
		slices = append(slices, *s)
	}

	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Total != slices[j].Total {
			return slices[i].Total > slices[j].Total
		}
		return slices[i].Name < slices[j].Name
	})
	return slices
}

func dailyStats(rows []models.TransactionWithCategory) DailyStats {
	byDay := map[time.Time]float64{}
	for _, r := range rows {
		if r.Type != models.TypeExpense {
			continue
		}
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] += r.Amount
	}

	var stats DailyStats
	var total float64
	for day, amount := range byDay {
		if amount == 0 {
			continue
		}
		total += amount
		stats.ActiveDays++
		if stats.MaxExpenseDay == nil || amount > stats.MaxExpenseDay.Amount {
			stats.MaxExpenseDay = &DayAmount{Date: day, Amount: amount}
		}
		if stats.MinExpenseDay == nil || amount < stats.MinExpenseDay.Amount {
			stats.MinExpenseDay = &DayAmount{Date: day, Amount: amount}
		}
	}
	if stats.ActiveDays > 0 {
		stats.ActiveDayAverage = total / float64(stats.ActiveDays)
	}
	return stats
}
