package services

import (
	"math"

	"github.com/devdev758/indiainflation/internal/core/domain"
)

// Recipe parameterizes synthetic series generation. Identical recipes
// produce byte-identical output, which keeps fixtures reproducible.
type Recipe struct {
	// Base is the index level at the start month.
	Base float64

	// Growth is the linear monthly drift.
	Growth float64

	// Offset is the per-region level shift.
	Offset float64

	// Volatility is the amplitude of the 12-month seasonal sinusoid.
	Volatility float64

	// Start is the first generated month.
	Start domain.Month

	// Months is the number of points to generate.
	Months int
}

// GenerateSeries derives a chronological point sequence and its
// metadata from a recipe.
//
// The index level for month i is
//
//	base + i*growth + offset + volatility*sin(2π*(i mod 12)/12)
//
// rounded to 2 decimal places. The seasonal period is fixed at 12
// months regardless of the calendar start offset.
func GenerateSeries(recipe Recipe) ([]domain.SeriesPoint, domain.SeriesMetadata) {
	if recipe.Months <= 0 {
		return nil, domain.SeriesMetadata{}
	}

	rows := make([]Observation, 0, recipe.Months)
	for i := 0; i < recipe.Months; i++ {
		seasonal := recipe.Volatility * math.Sin(2*math.Pi*float64(i%12)/12)
		value := domain.Round2(recipe.Base + float64(i)*recipe.Growth + recipe.Offset + seasonal)
		rows = append(rows, Observation{Date: recipe.Start.AddMonths(i), Value: value})
	}
	return ComputeSeriesMetrics(rows)
}

// Observation is one dated raw index value prior to derivation.
type Observation struct {
	Date  domain.Month
	Value float64
}

// ComputeSeriesMetrics derives MoM/YoY percentage changes and summary
// metadata for a dated value sequence. The sequence must be in
// chronological order.
//
// MoM is defined only when the prior point is exactly one calendar
// month earlier and nonzero. YoY looks up the (year-1, month) key in
// the history seen so far, so it tolerates gaps in the sequence.
func ComputeSeriesMetrics(rows []Observation) ([]domain.SeriesPoint, domain.SeriesMetadata) {
	history := make(map[domain.Month]float64, len(rows))
	series := make([]domain.SeriesPoint, 0, len(rows))

	var prev *Observation
	for i := range rows {
		row := rows[i]
		history[row.Date] = row.Value

		point := domain.SeriesPoint{Date: row.Date, IndexValue: row.Value}

		if ref, ok := history[row.Date.YearEarlier()]; ok && ref != 0 {
			yoy := domain.Round3((row.Value/ref - 1) * 100)
			point.YoYPct = &yoy
		}
		if prev != nil && prev.Value != 0 && row.Date.DeltaMonths(prev.Date) == 1 {
			mom := domain.Round3((row.Value/prev.Value - 1) * 100)
			point.MoMPct = &mom
		}

		series = append(series, point)
		prev = &rows[i]
	}

	return series, domain.ComputeMetadata(series)
}
