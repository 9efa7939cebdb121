package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"luft/internal/config"
	"luft/internal/inference"
	"luft/internal/intake"
	"luft/internal/services"
	"luft/internal/validate"
)

// auditVersion tags generated audit capsules with the profiling schema they
// were produced under.
const auditVersion = config.SchemaVersion

// truncatedErrorLimit caps how many row errors an audit capsule lists.
const truncatedErrorLimit = 20

// WriteAudit renders the full markdown audit capsule for a run into the
// capsules directory and returns the file path. The filename carries the
// schema version and a second-resolution timestamp.
func WriteAudit(result *intake.Result, cfg *config.Config) (string, error) {
	if err := os.MkdirAll(cfg.Paths.CapsulesDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrStore, "report", "audit", "create capsules directory", err)
	}

	name := fmt.Sprintf("capsule_audit_v%s_%s.md", auditVersion, result.FinishedAt.Format("20060102_150405"))
	path := filepath.Join(cfg.Paths.CapsulesDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", services.Wrap(services.ErrStore, "report", "audit", "create "+path, err)
	}
	defer file.Close()

	if err := RenderAudit(file, result, cfg); err != nil {
		return "", err
	}
	return path, nil
}

// RenderAudit writes the audit capsule markdown to w.
func RenderAudit(w io.Writer, result *intake.Result, cfg *config.Config) error {
	printer := message.NewPrinter(language.English)
	b := &strings.Builder{}

	fmt.Fprintf(b, "# LUFT Comprehensive Data Capsule v%s\n\n---\n\n", auditVersion)

	writeSessionMetadata(b, printer, result)
	writeProcessingStatus(b, result)
	writeDatasetOverview(b, printer, result)
	writeValidationResults(b, result.Verdict)
	writeColumnAnalysis(b, printer, result)
	writeThresholds(b, cfg)

	fmt.Fprintf(b, "---\n\n## System Information\n\n")
	fmt.Fprintf(b, "- **Schema Version:** %s\n", auditVersion)
	fmt.Fprintf(b, "- **Processing Complete:** %s\n", result.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(b, "- **Capsule Type:** Comprehensive Audit\n\n---\n")

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return services.Wrap(services.ErrStore, "report", "audit", "write audit capsule", err)
	}
	return nil
}

func writeSessionMetadata(b *strings.Builder, printer *message.Printer, result *intake.Result) {
	verdict := "FAILED"
	if result.Verdict.Passed {
		verdict = "PASSED"
	}
	quality := result.Profile.QualityScore()

	fmt.Fprintf(b, "## Session Metadata\n\n")
	fmt.Fprintf(b, "| Property | Value |\n|----------|-------|\n")
	fmt.Fprintf(b, "| **Run ID** | `%s` |\n", result.RunID)
	fmt.Fprintf(b, "| **Timestamp** | %s |\n", result.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(b, "| **Input File** | `%s` |\n", result.Source)
	fmt.Fprintf(b, "| **File Hash** | `%s` |\n", result.FileHash)
	fmt.Fprintf(b, "| **Validation** | %s |\n", verdict)
	fmt.Fprintf(b, "| **Quality Score** | %.4f (%s%%) |\n\n", quality, printer.Sprintf("%.2f", quality*100))
}

func writeProcessingStatus(b *strings.Builder, result *intake.Result) {
	if len(result.RowErrors) == 0 && len(result.Warnings) == 0 {
		return
	}
	fmt.Fprintf(b, "## Processing Status\n\n")
	if len(result.RowErrors) > 0 {
		fmt.Fprintf(b, "### Errors (%d)\n\n", len(result.RowErrors))
		for i, msg := range result.RowErrors {
			if i == truncatedErrorLimit {
				fmt.Fprintf(b, "\n_...and %d more errors_\n", len(result.RowErrors)-truncatedErrorLimit)
				break
			}
			fmt.Fprintf(b, "- %s\n", msg)
		}
		b.WriteString("\n")
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(b, "### Warnings (%d)\n\n", len(result.Warnings))
		for _, msg := range result.Warnings {
			fmt.Fprintf(b, "- %s\n", msg)
		}
		b.WriteString("\n")
	}
}

func writeDatasetOverview(b *strings.Builder, printer *message.Printer, result *intake.Result) {
	p := result.Profile
	fmt.Fprintf(b, "## Dataset Overview\n\n")
	fmt.Fprintf(b, "| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(b, "| Total Records | %s |\n", printer.Sprintf("%d", p.TotalRecords))
	fmt.Fprintf(b, "| Total Columns | %d |\n", len(p.Fields))
	fmt.Fprintf(b, "| Total Missing Values | %s |\n", printer.Sprintf("%d", p.TotalMissing()))
	fmt.Fprintf(b, "| Quality Score | %.4f |\n", p.QualityScore())
	fmt.Fprintf(b, "| Completeness | %.2f%% |\n\n", p.QualityScore()*100)
}

func writeValidationResults(b *strings.Builder, verdict validate.Verdict) {
	if len(verdict.Messages) == 0 {
		return
	}
	fmt.Fprintf(b, "## Validation Results\n\n")
	sections := []struct {
		title    string
		messages []validate.Message
	}{
		{"### Errors", verdict.Errors()},
		{"### Warnings", verdict.Warnings()},
		{"### Checks Passed", verdict.Infos()},
	}
	for _, section := range sections {
		if len(section.messages) == 0 {
			continue
		}
		fmt.Fprintf(b, "%s\n\n", section.title)
		for _, msg := range section.messages {
			fmt.Fprintf(b, "- %s\n", msg.Text)
		}
		b.WriteString("\n")
	}
}

func writeColumnAnalysis(b *strings.Builder, printer *message.Printer, result *intake.Result) {
	p := result.Profile
	fmt.Fprintf(b, "## Detailed Column Analysis\n\n")

	var numeric, categorical, other []string
	for _, field := range p.Fields {
		column := p.Columns[field]
		switch {
		case column.Kind.IsNumeric():
			numeric = append(numeric, field)
		case column.Categorical != nil:
			categorical = append(categorical, field)
		default:
			other = append(other, field)
		}
	}

	if len(numeric) > 0 {
		fmt.Fprintf(b, "### Numeric Columns (%d)\n\n", len(numeric))
		for _, field := range numeric {
			column := p.Columns[field]
			fmt.Fprintf(b, "#### %s\n\n", field)
			fmt.Fprintf(b, "**Type:** %s (Confidence: %.2f%%)\n\n", column.Kind, column.Confidence*100)
			stats := column.Numeric
			if stats == nil || stats.Count == 0 {
				fmt.Fprintf(b, "- No parseable values\n\n")
				continue
			}
			fmt.Fprintf(b, "| Statistic | Value |\n|-----------|-------|\n")
			fmt.Fprintf(b, "| Count | %s |\n", printer.Sprintf("%d", stats.Count))
			fmt.Fprintf(b, "| Missing | %s |\n", printer.Sprintf("%d", column.Missing))
			fmt.Fprintf(b, "| Min | %.6e |\n", stats.Min)
			fmt.Fprintf(b, "| 5th Percentile | %.6e |\n", stats.P5)
			fmt.Fprintf(b, "| Q1 (25th) | %.6e |\n", stats.Q1)
			fmt.Fprintf(b, "| Median (50th) | %.6e |\n", stats.Median)
			fmt.Fprintf(b, "| Mean | %.6e |\n", stats.Mean)
			fmt.Fprintf(b, "| Q3 (75th) | %.6e |\n", stats.Q3)
			fmt.Fprintf(b, "| 95th Percentile | %.6e |\n", stats.P95)
			fmt.Fprintf(b, "| Max | %.6e |\n", stats.Max)
			fmt.Fprintf(b, "| Range | %.6e |\n", stats.Range)
			fmt.Fprintf(b, "| Std Dev | %.6e |\n", stats.StdDev)
			fmt.Fprintf(b, "| Variance | %.6e |\n", stats.Variance)
			fmt.Fprintf(b, "| IQR | %.6e |\n", stats.IQR)
			fmt.Fprintf(b, "| Skewness | %.4f |\n", stats.Skewness)
			fmt.Fprintf(b, "| Outliers | %d |\n", stats.Outliers)
			fmt.Fprintf(b, "| Extreme Outliers | %d |\n\n", stats.ExtremeOutliers)
		}
	}

	if len(categorical) > 0 {
		fmt.Fprintf(b, "### Categorical Columns (%d)\n\n", len(categorical))
		for _, field := range categorical {
			column := p.Columns[field]
			stats := column.Categorical
			fmt.Fprintf(b, "#### %s\n\n", field)
			fmt.Fprintf(b, "**Type:** %s (Confidence: %.2f%%)\n\n", column.Kind, column.Confidence*100)
			fmt.Fprintf(b, "- **Unique Values:** %s\n", printer.Sprintf("%d", stats.UniqueCount))
			fmt.Fprintf(b, "- **Cardinality:** %.2f%%\n", stats.Cardinality*100)
			fmt.Fprintf(b, "- **Missing:** %s\n\n", printer.Sprintf("%d", column.Missing))
			if len(stats.TopValues) > 0 {
				fmt.Fprintf(b, "**Top Values:**\n\n")
				fmt.Fprintf(b, "| Value | Count | Percentage |\n|-------|-------|------------|\n")
				top := stats.TopValues
				if len(top) > 5 {
					top = top[:5]
				}
				for _, tv := range top {
					fmt.Fprintf(b, "| `%s` | %s | %.2f%% |\n", tv.Value, printer.Sprintf("%d", tv.Count), tv.Percentage)
				}
				b.WriteString("\n")
			}
		}
	}

	if len(other) > 0 {
		fmt.Fprintf(b, "### Other Columns (%d)\n\n", len(other))
		for _, field := range other {
			column := p.Columns[field]
			fmt.Fprintf(b, "#### %s\n\n", field)
			fmt.Fprintf(b, "**Type:** %s\n\n", kindLabel(column.Kind))
			fmt.Fprintf(b, "- **Missing:** %s\n\n", printer.Sprintf("%d", column.Missing))
		}
	}
}

func kindLabel(kind inference.Kind) string {
	if kind == "" {
		return "unknown"
	}
	return string(kind)
}

func writeThresholds(b *strings.Builder, cfg *config.Config) {
	fmt.Fprintf(b, "## Configuration\n\n### Thresholds Applied\n\n")
	entries := map[string]string{
		"data_quality.min_completeness":         fmt.Sprintf("%g", cfg.DataQuality.MinCompleteness),
		"data_quality.max_missing_values":       fmt.Sprintf("%g", cfg.DataQuality.MaxMissingValues),
		"data_quality.min_sample_size":          fmt.Sprintf("%d", cfg.DataQuality.MinSampleSize),
		"data_quality.max_outlier_ratio":        fmt.Sprintf("%g", cfg.DataQuality.MaxOutlierRatio),
		"radio_frequency.min_frequency_hz":      fmt.Sprintf("%g", cfg.RadioFrequency.MinFrequencyHz),
		"radio_frequency.max_frequency_hz":      fmt.Sprintf("%g", cfg.RadioFrequency.MaxFrequencyHz),
		"lattice_parameters.min_lattice_const":  fmt.Sprintf("%g", cfg.LatticeParameters.MinLatticeConstant),
		"lattice_parameters.max_lattice_const":  fmt.Sprintf("%g", cfg.LatticeParameters.MaxLatticeConstant),
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "```\n")
	for _, key := range keys {
		fmt.Fprintf(b, "%s = %s\n", key, entries[key])
	}
	fmt.Fprintf(b, "```\n\n")
}
