package validate

import (
	"fmt"
	"strconv"
	"strings"

	"luft/internal/config"
	"luft/internal/profile"
	"luft/internal/rows"
)

// Level grades a validation message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one leveled entry of a validation verdict.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Verdict is the outcome of validating a profile against thresholds. The
// message order is fixed and part of the contract: sample size, completeness,
// outlier ratio, then domain-range issues.
type Verdict struct {
	Passed   bool      `json:"passed"`
	Messages []Message `json:"messages"`
}

// Warnings returns the warning-level messages.
func (v Verdict) Warnings() []Message { return v.filter(LevelWarning) }

// Errors returns the error-level messages.
func (v Verdict) Errors() []Message { return v.filter(LevelError) }

// Infos returns the info-level messages.
func (v Verdict) Infos() []Message { return v.filter(LevelInfo) }

func (v Verdict) filter(level Level) []Message {
	var out []Message
	for _, msg := range v.Messages {
		if msg.Level == level {
			out = append(out, msg)
		}
	}
	return out
}

// Run evaluates the profile against the configured thresholds. Only the
// sample-size and completeness checks are required and can fail the verdict;
// the outlier-ratio and domain-range checks are advisory and always leave the
// pass/fail flag untouched. Bad data is a reportable outcome, never an error.
func Run(table *rows.Table, p profile.Profile, cfg *config.Config) Verdict {
	verdict := Verdict{Passed: true}
	dq := cfg.DataQuality

	// Sample-size check (required).
	if p.TotalRecords < dq.MinSampleSize {
		verdict.Passed = false
		verdict.append(LevelWarning, fmt.Sprintf("sample size %d below minimum %d", p.TotalRecords, dq.MinSampleSize))
	} else {
		verdict.append(LevelInfo, fmt.Sprintf("sample size adequate: %d", p.TotalRecords))
	}

	// Completeness check (required).
	quality := p.QualityScore()
	if quality >= dq.MinCompleteness {
		verdict.append(LevelInfo, fmt.Sprintf("data quality %.2f%% (threshold %.2f%%)", quality*100, dq.MinCompleteness*100))
	} else {
		verdict.Passed = false
		verdict.append(LevelError, fmt.Sprintf("data quality %.2f%% below threshold %.2f%%", quality*100, dq.MinCompleteness*100))
	}

	// Outlier-ratio check (advisory). Skipped when no numeric values exist.
	totalOutliers, numericCount := 0, 0
	for _, column := range p.Columns {
		if column.Kind.IsNumeric() && column.Numeric != nil {
			totalOutliers += column.Numeric.Outliers
			numericCount += column.Numeric.Count
		}
	}
	if numericCount > 0 {
		ratio := float64(totalOutliers) / float64(numericCount)
		if ratio <= dq.MaxOutlierRatio {
			verdict.append(LevelInfo, fmt.Sprintf("outlier ratio %.2f%% (threshold %.2f%%)", ratio*100, dq.MaxOutlierRatio*100))
		} else {
			verdict.append(LevelWarning, fmt.Sprintf("high outlier ratio %.2f%% (threshold %.2f%%)", ratio*100, dq.MaxOutlierRatio*100))
		}
	}

	// Domain-range checks (advisory).
	if cfg.Validation.NumericRangeCheck {
		for _, issue := range rangeIssues(table, p, cfg) {
			verdict.append(LevelWarning, issue)
		}
	}

	return verdict
}

func (v *Verdict) append(level Level, text string) {
	v.Messages = append(v.Messages, Message{Level: level, Text: text})
}

// rangeIssues re-parses numeric columns whose names match domain keywords and
// counts values outside the configured ranges, in field order. Invalid-value
// counts from profiling surface here as well.
func rangeIssues(table *rows.Table, p profile.Profile, cfg *config.Config) []string {
	var issues []string

	for _, field := range p.Fields {
		column, ok := p.Columns[field]
		if !ok || !column.Kind.IsNumeric() {
			continue
		}

		if column.Invalid > 0 {
			issues = append(issues, fmt.Sprintf("%s: %d invalid numeric values", field, column.Invalid))
		}

		values := numericValues(table, field)
		if len(values) == 0 {
			continue
		}

		name := strings.ToLower(field)

		if strings.Contains(name, "frequency") || strings.Contains(name, "freq") {
			minHz, maxHz := cfg.RadioFrequency.MinFrequencyHz, cfg.RadioFrequency.MaxFrequencyHz
			if n := countOutside(values, minHz, maxHz); n > 0 {
				issues = append(issues, fmt.Sprintf("%s: %d values outside valid frequency range [%.2e, %.2e] Hz", field, n, minHz, maxHz))
			}
		}

		if strings.Contains(name, "energy") {
			negative := 0
			for _, v := range values {
				if v < 0 {
					negative++
				}
			}
			if negative > 0 {
				issues = append(issues, fmt.Sprintf("%s: %d negative energy values (physically invalid)", field, negative))
			}
		}

		if strings.Contains(name, "lattice") || strings.Contains(name, "constant") {
			minLC, maxLC := cfg.LatticeParameters.MinLatticeConstant, cfg.LatticeParameters.MaxLatticeConstant
			if n := countOutside(values, minLC, maxLC); n > 0 {
				issues = append(issues, fmt.Sprintf("%s: %d lattice constant values outside typical range [%g, %g]", field, n, minLC, maxLC))
			}
		}
	}

	return issues
}

func numericValues(table *rows.Table, field string) []float64 {
	values := make([]float64, 0, table.RowCount())
	for _, row := range table.Records {
		raw, ok := row.Value(field)
		if !ok {
			continue
		}
		if num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			values = append(values, num)
		}
	}
	return values
}

func countOutside(values []float64, low, high float64) int {
	count := 0
	for _, v := range values {
		if v < low || v > high {
			count++
		}
	}
	return count
}
