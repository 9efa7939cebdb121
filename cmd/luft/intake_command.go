package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"luft/internal/intake"
	"luft/internal/preflight"
	"luft/internal/report"
	"luft/internal/runstore"
)

func newIntakeCommand(ctx *commandContext) *cobra.Command {
	var (
		audit   bool
		maxRows int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "intake <file.csv>",
		Short: "Profile and validate a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			checks := preflight.RunAll(cfg)
			if !preflight.AllPassed(checks) {
				var failed []string
				for _, check := range checks {
					if !check.Passed {
						failed = append(failed, fmt.Sprintf("%s: %s", check.Name, check.Detail))
					}
				}
				return fmt.Errorf("preflight failed:\n  %s", strings.Join(failed, "\n  "))
			}

			pipeline := intake.NewPipeline(cfg, logger)
			result, err := pipeline.Run(cmd.Context(), args[0], intake.Options{MaxRows: maxRows})
			if err != nil {
				return err
			}

			store, err := runstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			if _, err := store.SaveResult(cmd.Context(), result); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if err := writeResultJSON(out, result); err != nil {
					return err
				}
			} else {
				styled := isTerminal(out)
				fmt.Fprintf(out, "run %s  %s  sha256:%s\n\n", result.RunID, result.Source, result.FileHash)
				report.RenderProfileTable(out, result.Profile, styled)
				fmt.Fprintln(out)
				report.RenderVerdictTable(out, result.Verdict, styled)
			}

			if audit {
				path, err := report.WriteAudit(result, cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "audit capsule written to %s\n", path)
			}

			if !result.Verdict.Passed {
				return fmt.Errorf("validation failed for %s (%d errors)", args[0], len(result.Verdict.Errors()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&audit, "audit", false, "Write a markdown audit capsule to the capsules directory")
	cmd.Flags().IntVar(&maxRows, "max-rows", 0, "Read at most this many data rows (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the profile and verdict as JSON")
	return cmd
}

func writeResultJSON(out io.Writer, result *intake.Result) error {
	payload := struct {
		RunID    string `json:"run_id"`
		Source   string `json:"source"`
		FileHash string `json:"file_hash"`
		Profile  any    `json:"profile"`
		Types    any    `json:"types"`
		Verdict  any    `json:"verdict"`
	}{
		RunID:    result.RunID,
		Source:   result.Source,
		FileHash: result.FileHash,
		Profile:  result.Profile,
		Types:    result.Types,
		Verdict:  result.Verdict,
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
