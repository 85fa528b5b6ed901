package reports

import (
	"fmt"
	"sort"
	"time"

	"grana/models"
)

// WeekdayStat is a day-of-week expense bucket. Weekday follows time.Weekday
// numbering, 0 = Sunday.
type WeekdayStat struct {
	Weekday int     `json:"weekday"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
}

// CategoryFrequency ranks categories by how often they appear.
type CategoryFrequency struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TicketStats describes the distribution of individual transaction amounts.
type TicketStats struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// ThirdsSplit sums expenses across the early (days 1-10), mid (11-20) and
// late (21 onward) thirds of the month.
type ThirdsSplit struct {
	Early float64 `json:"early"`
	Mid   float64 `json:"mid"`
	Late  float64 `json:"late"`
}

// PatternData is the payload of a spending-pattern report.
type PatternData struct {
	Weekdays          [7]WeekdayStat      `json:"weekdays"`
	CategoryFrequency []CategoryFrequency `json:"categoryFrequency"`
	IncomeTicket      TicketStats         `json:"incomeTicket"`
	ExpenseTicket     TicketStats         `json:"expenseTicket"`
	MonthThirds       ThirdsSplit         `json:"monthThirds"`
}

// Pattern derives behavioral statistics from a period of rows.
func Pattern(period models.Period, rows []models.TransactionWithCategory) models.Report {
	var data PatternData
	for i := range data.Weekdays {
		data.Weekdays[i].Weekday = i
	}

	for _, r := range rows {
		if r.Type == models.TypeExpense {
			wd := int(r.Date.Weekday())
			data.Weekdays[wd].Total += r.Amount
			data.Weekdays[wd].Count++

			switch day := r.Date.Day(); {
			case day <= 10:
				data.MonthThirds.Early += r.Amount
			case day <= 20:
				data.MonthThirds.Mid += r.Amount
			default:
				data.MonthThirds.Late += r.Amount
			}
		}
	}

	data.CategoryFrequency = categoryFrequencies(rows)
	data.IncomeTicket = ticketStats(rows, models.TypeIncome)
	data.ExpenseTicket = ticketStats(rows, models.TypeExpense)

	return models.Report{
		Type:   models.ReportPattern,
		Period: period,
		Data:   data,
		Summary: fmt.Sprintf("spending patterns for %s to %s across %d transactions",
			period.Start.Format("2006-01-02"),
			period.End.Format("2006-01-02"),
			len(rows)),
		GeneratedAt: time.Now(),
	}
}

// categoryFrequencies counts appearances per category; percentage is the
// share of all rows, 0 when there are none.
func categoryFrequencies(rows []models.TransactionWithCategory) []CategoryFrequency {
	type key struct {
		name   string
		txType string
	}
	counts := map[key]int{}
	for _, r := range rows {
		counts[key{r.CategoryName, r.Type}]++
	}

	out := make([]CategoryFrequency, 0, len(counts))
	for k, c := range counts {
		f := CategoryFrequency{Name: k.name, Type: k.txType, Count: c}
		if len(rows) > 0 {
			f.Percentage = float64(c) / float64(len(rows)) * 100
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func ticketStats(rows []models.TransactionWithCategory, txType string) TicketStats {
	var amounts []float64
	for _, r := range rows {
		if r.Type == txType {
			amounts = append(amounts, r.Amount)
		}
	}
	if len(amounts) == 0 {
		return TicketStats{}
	}

	sort.Float64s(amounts)
	var sum float64
	for _, a := range amounts {
		sum += a
	}

	stats := TicketStats{
		Mean: sum / float64(len(amounts)),
		Min:  amounts[0],
		Max:  amounts[len(amounts)-1],
	}
	mid := len(amounts) / 2
	if len(amounts)%2 == 1 {
		stats.Median = amounts[mid]
	} else {
		stats.Median = (amounts[mid-1] + amounts[mid]) / 2
	}
	return stats
}
