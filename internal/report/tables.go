package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"luft/internal/profile"
	"luft/internal/validate"
)

// newTableWriter builds a table writer with the house style. Styled output
// uses light box-drawing; unstyled output suits pipes and log files.
func newTableWriter(out io.Writer, styled bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	if styled {
		t.SetStyle(table.StyleLight)
	} else {
		style := table.StyleDefault
		style.Options.DrawBorder = false
		style.Options.SeparateColumns = true
		t.SetStyle(style)
	}
	return t
}

// RenderProfileTable prints a one-row-per-column summary of the profile.
func RenderProfileTable(out io.Writer, p profile.Profile, styled bool) {
	printer := message.NewPrinter(language.English)

	t := newTableWriter(out, styled)
	t.AppendHeader(table.Row{"Column", "Type", "Confidence", "Missing", "Summary"})
	for _, field := range p.Fields {
		column := p.Columns[field]
		t.AppendRow(table.Row{
			field,
			string(column.Kind),
			fmt.Sprintf("%.0f%%", column.Confidence*100),
			printer.Sprintf("%d", column.Missing),
			columnSummary(printer, column),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Confidence", Align: text.AlignRight},
		{Name: "Missing", Align: text.AlignRight},
	})
	t.Render()
}

func columnSummary(printer *message.Printer, column profile.Column) string {
	switch {
	case column.Numeric != nil && column.Numeric.Count > 0:
		s := column.Numeric
		return fmt.Sprintf("mean=%.4g median=%.4g sd=%.4g outliers=%d", s.Mean, s.Median, s.StdDev, s.Outliers)
	case column.Numeric != nil:
		return "no parseable values"
	case column.Categorical != nil:
		s := column.Categorical
		top := ""
		if len(s.TopValues) > 0 {
			top = fmt.Sprintf(" top=%q", s.TopValues[0].Value)
		}
		return printer.Sprintf("unique=%d cardinality=%.2f", s.UniqueCount, s.Cardinality) + top
	default:
		return ""
	}
}

// RenderVerdictTable prints the validation messages with their levels.
func RenderVerdictTable(out io.Writer, verdict validate.Verdict, styled bool) {
	t := newTableWriter(out, styled)
	t.AppendHeader(table.Row{"Level", "Message"})
	for _, msg := range verdict.Messages {
		t.AppendRow(table.Row{string(msg.Level), msg.Text})
	}
	t.Render()

	status := "FAILED"
	if verdict.Passed {
		status = "PASSED"
	}
	fmt.Fprintf(out, "validation %s (%d errors, %d warnings)\n",
		status, len(verdict.Errors()), len(verdict.Warnings()))
}
