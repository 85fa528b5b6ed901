package reports

import (
	"fmt"
	"math"
	"time"

	"grana/models"
)

// Trend classifications for the evolution report.
const (
	TrendGrowing   = "growing"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// EvolutionPoint is one monthly bucket of the trailing window. Months with
// no activity are present with zero values, never omitted.
type EvolutionPoint struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Label       string  `json:"label"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Balance     float64 `json:"balance"`
	Accumulated float64 `json:"accumulated"`
}

// EvolutionData is the payload of an evolution report.
type EvolutionData struct {
	Points    []EvolutionPoint `json:"points"`
	Trend     string           `json:"trend"`
	Variation float64          `json:"variation"`
}

// Evolution buckets the trailing months window ending at now's month and
// classifies the balance trend by comparing the first half of the window
// against the second.
func Evolution(now time.Time, months int, rows []models.TransactionWithCategory) models.Report {
	if months < 1 {
		months = 1
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	points := make([]EvolutionPoint, months)
	index := map[string]int{}
	for i := range points {
		m := first.AddDate(0, i, 0)
		points[i] = EvolutionPoint{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: m.Format("2006-01"),
		}
		index[points[i].Label] = i
	}

	for _, r := range rows {
		i, ok := index[r.Date.Format("2006-01")]
		if !ok {
			continue // outside the window
		}
		switch r.Type {
		case models.TypeIncome:
			points[i].Income += r.Amount
		case models.TypeExpense:
			points[i].Expense += r.Amount
		}
	}

	var accumulated float64
	for i := range points {
		points[i].Balance = points[i].Income - points[i].Expense
		accumulated += points[i].Balance
		points[i].Accumulated = accumulated
	}

	variation := balanceVariation(points)
	trend := TrendStable
	switch {
	case variation > 10:
		trend = TrendGrowing
	case variation < -10:
		trend = TrendDeclining
	}

	data := EvolutionData{Points: points, Trend: trend, Variation: variation}
	end := first.AddDate(0, months, -1)

	return models.Report{
		Type: models.ReportEvolution,
		Period: models.Period{
			Start: first,
			End:   end,
			Label: fmt.Sprintf("last %d months", months),
		},
		Data:        data,
		Summary:     fmt.Sprintf("balance trend over %d months: %s (%.1f%%)", months, trend, variation),
		GeneratedAt: time.Now(),
	}
}

// balanceVariation compares the mean balance of the window's first half to
// the second half, as a percentage of the first half's magnitude. A zero
// first-half mean yields 0, never a division error.
func balanceVariation(points []EvolutionPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	half := len(points) / 2
	firstMean := meanBalance(points[:half])
	secondMean := meanBalance(points[half:])

	if firstMean == 0 {
		return 0
	}
	return (secondMean - firstMean) / math.Abs(firstMean) * 100
}

func meanBalance(points []EvolutionPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Balance
	}
	return sum / float64(len(points))
}
