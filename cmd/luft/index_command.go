package main

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"luft/internal/capsule"
	"luft/internal/manifest"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var (
		roots  []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the capsule master index from manifest files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			scanRoots := roots
			if len(scanRoots) == 0 {
				scanRoots = cfg.Paths.IndexRoots
			}
			if len(scanRoots) == 0 {
				return fmt.Errorf("no index roots configured; pass --root or set paths.index_roots")
			}
			target := output
			if target == "" {
				target = cfg.Paths.MasterIndex
			}

			// One rebuild at a time per index file. Concurrent rebuilds
			// would race on the rename.
			lock := flock.New(target + ".lock")
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire index lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another index rebuild is in progress (lock: %s)", lock.Path())
			}
			defer func() {
				_ = lock.Unlock()
				_ = os.Remove(lock.Path())
			}()

			hits, err := manifest.Scan(scanRoots)
			if err != nil {
				return err
			}
			sourced, err := manifest.LoadAll(hits)
			if err != nil {
				return err
			}

			result := capsule.Merge(sourced)
			if err := manifest.WriteIndex(result.Index, target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scanned %d manifests, %d capsules (%d rejected)\n",
				len(hits), len(sourced), len(result.Rejected))
			fmt.Fprintf(out, "master index saved to %s with %d capsules\n", target, result.Index.Len())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&roots, "root", nil, "Repository directory to scan (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Master index file path")

	cmd.AddCommand(newIndexShowCommand(ctx))
	return cmd
}

func newIndexShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current master index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(cfg.Paths.MasterIndex)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("no master index at %s; run `luft index` first", cfg.Paths.MasterIndex)
				}
				return fmt.Errorf("read master index: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
}
