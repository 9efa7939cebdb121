package profile

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"luft/internal/inference"
	"luft/internal/rows"
)

// NumericStats summarizes a numeric or integer column with population
// statistics. Order statistics come from a full sort; the quartile invariant
// Min <= P5 <= Q1 <= Median <= Q3 <= P95 <= Max may collapse under ties.
type NumericStats struct {
	Count           int     `json:"count"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	Range           float64 `json:"range"`
	Mean            float64 `json:"mean"`
	Median          float64 `json:"median"`
	StdDev          float64 `json:"std_dev"`
	Variance        float64 `json:"variance"`
	P5              float64 `json:"p5"`
	Q1              float64 `json:"q1"`
	Q3              float64 `json:"q3"`
	P95             float64 `json:"p95"`
	IQR             float64 `json:"iqr"`
	Outliers        int     `json:"outliers"`
	ExtremeOutliers int     `json:"extreme_outliers"`
	Skewness        float64 `json:"skewness"`
}

// ValueCount is one entry of a categorical top-value list.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoricalStats summarizes a non-numeric column.
type CategoricalStats struct {
	UniqueCount int          `json:"unique_count"`
	Cardinality float64      `json:"cardinality"`
	TopValues   []ValueCount `json:"top_values"`
}

// Column is the profile of a single column, discriminated by kind: exactly
// one of Numeric or Categorical is set. A numeric column with no parseable
// values carries a NumericStats with Count=0 and nothing else.
type Column struct {
	Kind        inference.Kind    `json:"type"`
	Confidence  float64           `json:"confidence"`
	Missing     int               `json:"missing"`
	Invalid     int               `json:"invalid,omitempty"`
	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
}

// Profile is the per-column statistical summary of one table.
type Profile struct {
	TotalRecords int               `json:"total_records"`
	Fields       []string          `json:"fields"`
	Columns      map[string]Column `json:"columns"`
}

// topValueLimit bounds the reported categorical top-value list.
const topValueLimit = 10

// Build computes a Profile for the table given the inferred column types.
// Values that fail to parse in numeric columns are excluded from the numeric
// set and counted as Invalid; missing values are tracked for every column.
func Build(table *rows.Table, types map[string]inference.Descriptor) Profile {
	profile := Profile{
		TotalRecords: table.RowCount(),
		Fields:       append([]string(nil), table.Fields...),
		Columns:      make(map[string]Column, table.ColumnCount()),
	}

	for _, field := range table.Fields {
		desc := types[field]
		column := Column{
			Kind:       desc.Kind,
			Confidence: desc.Confidence,
		}

		present := make([]string, 0, table.RowCount())
		for _, row := range table.Records {
			if value, ok := row.Value(field); ok {
				present = append(present, value)
			}
		}
		column.Missing = table.RowCount() - len(present)

		if desc.Kind.IsNumeric() {
			numbers := make([]float64, 0, len(present))
			for _, value := range present {
				num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
				if err != nil {
					column.Invalid++
					continue
				}
				numbers = append(numbers, num)
			}
			column.Numeric = numericStats(numbers)
		} else {
			column.Categorical = categoricalStats(present, table.RowCount())
		}

		profile.Columns[field] = column
	}

	return profile
}

// QualityScore is the completeness metric driving the primary validation
// gate: 1 minus the ratio of missing cells to total cells.
func (p Profile) QualityScore() float64 {
	totalCells := p.TotalRecords * len(p.Columns)
	if totalCells == 0 {
		return 0
	}
	missing := 0
	for _, column := range p.Columns {
		missing += column.Missing
	}
	return 1 - float64(missing)/float64(totalCells)
}

// TotalMissing sums missing cells across all columns.
func (p Profile) TotalMissing() int {
	missing := 0
	for _, column := range p.Columns {
		missing += column.Missing
	}
	return missing
}

func numericStats(values []float64) *NumericStats {
	n := len(values)
	if n == 0 {
		return &NumericStats{}
	}

	var sum float64
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	stdDev := math.Sqrt(variance)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := sorted[n/4]
	median := sorted[n/2]
	q3 := sorted[3*n/4]
	iqr := q3 - q1

	outliers, extreme := 0, 0
	lowFence, highFence := q1-1.5*iqr, q3+1.5*iqr
	lowExtreme, highExtreme := q1-3*iqr, q3+3*iqr
	for _, v := range values {
		if v < lowFence || v > highFence {
			outliers++
		}
		if v < lowExtreme || v > highExtreme {
			extreme++
		}
	}

	skewness := 0.0
	if stdDev > 0 {
		var cubed float64
		for _, v := range values {
			d := v - mean
			cubed += d * d * d
		}
		skewness = cubed / (float64(n) * stdDev * stdDev * stdDev)
	}

	return &NumericStats{
		Count:           n,
		Min:             minVal,
		Max:             maxVal,
		Range:           maxVal - minVal,
		Mean:            mean,
		Median:          median,
		StdDev:          stdDev,
		Variance:        variance,
		P5:              percentile(sorted, 0.05),
		Q1:              q1,
		Q3:              q3,
		P95:             percentile(sorted, 0.95),
		IQR:             iqr,
		Outliers:        outliers,
		ExtremeOutliers: extreme,
		Skewness:        skewness,
	}
}

// percentile indexes the sorted slice at floor(fraction*n), clamped to the
// valid range.
func percentile(sorted []float64, fraction float64) float64 {
	n := len(sorted)
	idx := int(fraction * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func categoricalStats(present []string, totalRows int) *CategoricalStats {
	counts := make(map[string]int, len(present))
	order := make([]string, 0, len(present))
	for _, value := range present {
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	limit := len(order)
	if limit > topValueLimit {
		limit = topValueLimit
	}
	top := make([]ValueCount, 0, limit)
	for _, value := range order[:limit] {
		percentage := 0.0
		if totalRows > 0 {
			percentage = float64(counts[value]) / float64(totalRows) * 100
		}
		top = append(top, ValueCount{Value: value, Count: counts[value], Percentage: percentage})
	}

	cardinality := 0.0
	if len(present) > 0 {
		cardinality = float64(len(counts)) / float64(len(present))
	}

	return &CategoricalStats{
		UniqueCount: len(counts),
		Cardinality: cardinality,
		TopValues:   top,
	}
}
