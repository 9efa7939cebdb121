package inference

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"luft/internal/rows"
)

// Kind classifies a column.
type Kind string

const (
	KindNumeric         Kind = "numeric"
	KindInteger         Kind = "integer"
	KindBoolean         Kind = "boolean"
	KindDatetime        Kind = "datetime"
	KindCategorical     Kind = "categorical"
	KindCategoricalHigh Kind = "categorical_high"
	KindMixed           Kind = "mixed"
	KindEmpty           Kind = "empty"
)

// IsNumeric reports whether the kind participates in numeric profiling.
func (k Kind) IsNumeric() bool {
	return k == KindNumeric || k == KindInteger
}

// Descriptor is the inferred type of one column. Confidence is the ratio that
// triggered the classification decision.
type Descriptor struct {
	Kind        Kind    `json:"type"`
	Confidence  float64 `json:"confidence"`
	SampleCount int     `json:"sample_count"`
}

// sampleLimit bounds the per-column sample used for classification.
const sampleLimit = 100

var booleanTokens = map[string]struct{}{
	"true": {}, "false": {},
	"yes": {}, "no": {},
	"0": {}, "1": {},
	"t": {}, "f": {},
	"y": {}, "n": {},
}

// Infer classifies every column of the table from a bounded sample of its
// non-empty values, in row order. It returns one descriptor per field plus
// advisory warnings for empty and mixed-type columns.
func Infer(table *rows.Table) (map[string]Descriptor, []string) {
	descriptors := make(map[string]Descriptor, table.ColumnCount())
	var warnings []string

	for _, field := range table.Fields {
		sample := sampleColumn(table, field)
		if len(sample) == 0 {
			descriptors[field] = Descriptor{Kind: KindEmpty, Confidence: 1.0}
			warnings = append(warnings, fmt.Sprintf("column %q is empty", field))
			continue
		}

		desc, mixed := classify(sample)
		descriptors[field] = desc
		if mixed {
			warnings = append(warnings, fmt.Sprintf("column %q has mixed types", field))
		}
	}

	return descriptors, warnings
}

func sampleColumn(table *rows.Table, field string) []string {
	sample := make([]string, 0, sampleLimit)
	for _, row := range table.Records {
		value, ok := row.Value(field)
		if !ok {
			continue
		}
		sample = append(sample, value)
		if len(sample) == sampleLimit {
			break
		}
	}
	return sample
}

func classify(sample []string) (Descriptor, bool) {
	var numericCount, integerCount, dateCount, booleanCount int

	for _, value := range sample {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if _, ok := booleanTokens[normalized]; ok {
			booleanCount++
		}
		if num, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			numericCount++
			if num == math.Trunc(num) {
				integerCount++
			}
		}
		if len(value) >= 8 && strings.ContainsAny(value, "-/.") {
			dateCount++
		}
	}

	n := float64(len(sample))
	numericRatio := float64(numericCount) / n
	integerRatio := float64(integerCount) / n
	dateRatio := float64(dateCount) / n
	booleanRatio := float64(booleanCount) / n

	desc := Descriptor{SampleCount: len(sample)}
	switch {
	case booleanRatio > 0.9:
		desc.Kind = KindBoolean
		desc.Confidence = booleanRatio
	case dateRatio > 0.8:
		desc.Kind = KindDatetime
		desc.Confidence = dateRatio
	case integerRatio > 0.9:
		desc.Kind = KindInteger
		desc.Confidence = integerRatio
	case numericRatio > 0.8:
		desc.Kind = KindNumeric
		desc.Confidence = numericRatio
	case numericRatio > 0.3:
		desc.Kind = KindMixed
		desc.Confidence = 0.5
		return desc, true
	default:
		unique := make(map[string]struct{}, len(sample))
		for _, value := range sample {
			unique[value] = struct{}{}
		}
		if float64(len(unique))/n > 0.9 {
			desc.Kind = KindCategoricalHigh
		} else {
			desc.Kind = KindCategorical
		}
		desc.Confidence = 1 - numericRatio
	}
	return desc, false
}
