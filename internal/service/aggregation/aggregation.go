// Package aggregation derives dashboard views from production records.
//
// Every function is a pure read over the slice it receives; nothing is cached
// and an empty input yields zero values, never an error.
package aggregation

import (
	"sort"
	"time"

	"github.com/mamadbah2/packhouse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// DailyTotals sums weight, headcount and waste of the records dated exactly date.
func DailyTotals(records []models.ProductionRecord, date string) models.Totals {
	totals := models.Totals{Date: date}
	for _, r := range records {
		if r.Date != date {
			continue
		}
		totals.WeightKg += r.TotalWeightKg
		totals.Employees += r.EmployeeCount
		totals.WasteKg += r.WasteKg
		totals.Count++
	}
	return totals
}

// Productivity returns kilograms per employee for date, or 0 without staff.
func Productivity(records []models.ProductionRecord, date string) float64 {
	return ratio(DailyTotals(records, date))
}

// TrendFor compares the weight of date with the previous calendar day.
// Equal weights count as UP.
func TrendFor(records []models.ProductionRecord, date string) models.Trend {
	current := DailyTotals(records, date).WeightKg
	return compare(current, previousWeight(records, date))
}

// TimeSeries groups records by date and returns the n most recent days that
// have at least one record, oldest first. Missing days are not filled.
func TimeSeries(records []models.ProductionRecord, n int) []models.SeriesPoint {
	if n <= 0 || len(records) == 0 {
		return []models.SeriesPoint{}
	}

	grouped := make(map[string]*models.SeriesPoint)
	for _, r := range records {
		point, ok := grouped[r.Date]
		if !ok {
			point = &models.SeriesPoint{Date: r.Date}
			grouped[r.Date] = point
		}
		point.WeightKg += r.TotalWeightKg
		point.Employees += r.EmployeeCount
		point.Count++
	}

	series := make([]models.SeriesPoint, 0, len(grouped))
	for _, point := range grouped {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return dateLess(series[i].Date, series[j].Date)
	})

	if len(series) > n {
		series = series[len(series)-n:]
	}
	return series
}

// Dashboard computes the hero metrics shown for today.
func Dashboard(records []models.ProductionRecord, today string) models.Metrics {
	totals := DailyTotals(records, today)
	previous := previousWeight(records, today)
	return models.Metrics{
		Totals:       totals,
		Productivity: ratio(totals),
		Trend:        compare(totals.WeightKg, previous),
		PreviousKg:   previous,
	}
}

// WeightByProduct sums the weight of date per product name.
func WeightByProduct(records []models.ProductionRecord, date string) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		if r.Date == date {
			out[r.ProductName] += r.TotalWeightKg
		}
	}
	return out
}

// PreviousDay returns the calendar day before date, or false when date is not
// a valid YYYY-MM-DD string.
func PreviousDay(date string) (string, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, -1).Format(dateLayout), true
}

func previousWeight(records []models.ProductionRecord, date string) float64 {
	prev, ok := PreviousDay(date)
	if !ok {
		return 0
	}
	return DailyTotals(records, prev).WeightKg
}

func ratio(t models.Totals) float64 {
	if t.Employees == 0 {
		return 0
	}
	return t.WeightKg / float64(t.Employees)
}

func compare(current, previous float64) models.Trend {
	if current >= previous {
		return models.TrendUp
	}
	return models.TrendDown
}

// dateLess orders by calendar date. Unparseable dates sort first, by string.
func dateLess(a, b string) bool {
	ta, errA := time.Parse(dateLayout, a)
	tb, errB := time.Parse(dateLayout, b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return true
	case errB != nil:
		return false
	default:
		return ta.Before(tb)
	}
}
