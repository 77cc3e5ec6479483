package domain

import "math"

// SeriesPoint is one dated index observation. IndexValue is always
// present; the derived percentage changes are nil when no comparable
// prior point exists.
type SeriesPoint struct {
	// Date is the observation month (serialized as a first-of-month
	// ISO date).
	Date Month `json:"date"`

	// IndexValue is the price index level, rounded to 2 decimal places.
	IndexValue float64 `json:"index_value"`

	// YoYPct is the percentage change versus the same calendar month
	// one year earlier, rounded to 3 decimal places.
	YoYPct *float64 `json:"yoy_pct"`

	// MoMPct is the percentage change versus the immediately preceding
	// calendar month, rounded to 3 decimal places.
	MoMPct *float64 `json:"mom_pct"`
}

// SeriesMetadata summarizes a SeriesPoint sequence. All fields are
// derivable from the sequence; ComputeMetadata must reproduce a stored
// metadata block exactly.
type SeriesMetadata struct {
	FirstDate         *Month   `json:"first_date"`
	LastDate          *Month   `json:"last_date"`
	Count             int      `json:"count"`
	LastIndexValue    *float64 `json:"last_index_value"`
	AverageIndexValue *float64 `json:"average_index_value"`
}

// IsZero reports whether the metadata block carries no information,
// i.e. it was absent from a source payload.
func (m SeriesMetadata) IsZero() bool {
	return m.Count == 0 && m.FirstDate == nil && m.LastDate == nil &&
		m.LastIndexValue == nil && m.AverageIndexValue == nil
}

// ComputeMetadata derives SeriesMetadata from a point sequence.
// The average is rounded to 3 decimal places.
func ComputeMetadata(series []SeriesPoint) SeriesMetadata {
	if len(series) == 0 {
		return SeriesMetadata{}
	}

	total := 0.0
	for _, point := range series {
		total += point.IndexValue
	}

	first := series[0].Date
	last := series[len(series)-1].Date
	lastValue := series[len(series)-1].IndexValue
	avg := Round3(total / float64(len(series)))

	return SeriesMetadata{
		FirstDate:         &first,
		LastDate:          &last,
		Count:             len(series),
		LastIndexValue:    &lastValue,
		AverageIndexValue: &avg,
	}
}

// Round2 rounds to 2 decimal places, used for index levels.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places, used for derived percentages
// and averages.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
