package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"anishelf/internal/catalog"
	"anishelf/internal/config"
	"anishelf/internal/library"
	"anishelf/internal/logging"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the encyclopedia catalog",
	}

	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))

	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <reports-xml>",
		Short: "Import catalog entries from a reports XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve report path: %w", err)
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open report: %w", err)
			}
			defer file.Close()

			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				count, err := catalog.Import(cmd.Context(), store, file, logging.NewNop())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d catalog entries\n", count)
				return nil
			})
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <anime-id>",
		Short: "Display one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || animeID <= 0 {
				return fmt.Errorf("invalid anime id %q", args[0])
			}

			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				show, err := store.GetShow(cmd.Context(), animeID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, map[string]any{
						"anime_id":  show.AnimeID,
						"title":     show.Title,
						"type":      show.Type,
						"precision": show.Precision,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %d\n", show.AnimeID)
				fmt.Fprintf(out, "Title:     %s\n", show.Title)
				fmt.Fprintf(out, "Type:      %s\n", show.Type)
				fmt.Fprintf(out, "Precision: %s\n", show.Precision)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}
