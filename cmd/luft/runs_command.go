package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"luft/internal/runstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent intake runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := runstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "no runs recorded")
				return nil
			}

			t := newTable(out)
			t.AppendHeader(table.Row{"Run", "Source", "Rows", "Cols", "Quality", "Verdict", "Finished"})
			for _, record := range records {
				verdict := "fail"
				if record.Passed {
					verdict = "pass"
				}
				t.AppendRow(table.Row{
					shortID(record.ID),
					record.Source,
					record.RowCount,
					record.ColumnCount,
					fmt.Sprintf("%.4f", record.QualityScore),
					verdict,
					record.FinishedAt.Format("2006-01-02 15:04:05"),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
