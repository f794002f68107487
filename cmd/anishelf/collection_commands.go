package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"anishelf/internal/config"
	"anishelf/internal/library"
)

func newCollectionCommand(ctx *commandContext) *cobra.Command {
	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Track owned releases",
	}

	collectionCmd.AddCommand(newCollectionAddCommand(ctx))
	collectionCmd.AddCommand(newCollectionListCommand(ctx))
	collectionCmd.AddCommand(newCollectionRemoveCommand(ctx))

	return collectionCmd
}

func newCollectionAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <anime-id> <release-id>",
		Short: "Add an owned release to the collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || animeID <= 0 {
				return fmt.Errorf("invalid anime id %q", args[0])
			}
			releaseID := args[1]

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				resolver, err := newResolver(cfg, store)
				if err != nil {
					return err
				}
				// Resolving first guarantees the release rows exist before the
				// collection row references one.
				resolved, err := resolver.Resolve(cmd.Context(), animeID)
				if err != nil {
					return err
				}
				found := false
				for _, release := range resolved {
					if release.ReleaseID == releaseID {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("release %s not found among the %d releases of anime %d",
						releaseID, len(resolved), animeID)
				}

				entry, err := store.AddToCollection(cmd.Context(), animeID, releaseID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added release %s (anime %d) to the collection\n",
					entry.ReleaseID, entry.AnimeID)
				return nil
			})
		},
	}
}

func newCollectionListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List owned releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				entries, err := store.ListCollection(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Collection is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					title := ""
					if release, err := store.GetRelease(cmd.Context(), entry.ReleaseID); err == nil && release != nil {
						title = release.Title
					}
					rows = append(rows, []string{
						entry.ReleaseID,
						strconv.FormatInt(entry.AnimeID, 10),
						title,
						entry.AddedAt.Local().Format(time.DateOnly),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Release", "Anime", "Title", "Added"}, rows, 1, 2))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newCollectionRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <release-id>",
		Short: "Remove an owned release from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			releaseID := args[0]
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				removed, err := store.RemoveFromCollection(cmd.Context(), releaseID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("release %s is not in the collection", releaseID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed release %s from the collection\n", releaseID)
				return nil
			})
		},
	}
}
