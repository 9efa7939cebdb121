package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"luft/internal/config"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "luft schema v%s\n", config.SchemaVersion)
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				fmt.Fprintf(out, "build %s\n", info.Main.Version)
			}
			return nil
		},
	}
}
