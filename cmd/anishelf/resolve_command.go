package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"anishelf/internal/config"
	"anishelf/internal/library"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <anime-id>",
		Short: "Resolve the release list for an anime, fetching on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || animeID <= 0 {
				return fmt.Errorf("invalid anime id %q", args[0])
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				resolver, err := newResolver(cfg, store)
				if err != nil {
					return err
				}
				resolved, err := resolver.Resolve(cmd.Context(), animeID)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, resolved)
				}

				out := cmd.OutOrStdout()
				if len(resolved) == 0 {
					fmt.Fprintf(out, "No releases found for anime %d\n", animeID)
					return nil
				}
				rows := make([][]string, 0, len(resolved))
				for _, release := range resolved {
					rows = append(rows, []string{
						release.ReleaseID,
						release.Title,
						release.Format,
						release.Edition,
						release.ReleaseDate,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Release", "Title", "Format", "Edition", "Date"}, rows, 1))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}
