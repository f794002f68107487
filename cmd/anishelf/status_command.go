package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"anishelf/internal/config"
	"anishelf/internal/library"
	"anishelf/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment and report readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				results := preflight.RunAll(cmd.Context(), cfg)
				results = append(results, preflight.CheckDatabase(cmd.Context(), store))

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath())
				failures := 0
				for _, result := range results {
					fmt.Fprintln(out, renderStatusLine(result.Name, result.Passed, result.Detail, colorize))
					if !result.Passed {
						failures++
					}
				}
				if failures > 0 {
					return fmt.Errorf("%d preflight check(s) failed", failures)
				}
				return nil
			})
		},
	}
}
