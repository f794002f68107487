package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"anishelf/internal/ann"
	"anishelf/internal/library"
	"anishelf/internal/logging"
	"anishelf/internal/releases"
	"anishelf/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			lockPath := filepath.Join(cfg.Paths.LogDir, "anishelf.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another anishelf server instance is already running")
			}
			defer lock.Unlock()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := library.Open(cfg)
			if err != nil {
				logger.Error("open library store", logging.Error(err))
				return err
			}
			defer store.Close()

			client, err := ann.New(cfg.Source.BaseURL, ann.WithTimeout(cfg.SourceTimeout()))
			if err != nil {
				return fmt.Errorf("build source client: %w", err)
			}
			links := ann.NewLinks(cfg.Source.BaseURL, cfg.Source.CDNURL)
			resolver := releases.NewResolver(store, client, links, logger)

			srv, err := server.New(cfg, store, resolver, logger)
			if err != nil {
				return fmt.Errorf("create api server: %w", err)
			}
			if err := srv.Start(signalCtx); err != nil {
				return err
			}
			defer srv.Stop()

			<-signalCtx.Done()
			logger.Info("anishelf server shutting down")
			return nil
		},
	}
}
