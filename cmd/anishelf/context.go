package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"anishelf/internal/ann"
	"anishelf/internal/config"
	"anishelf/internal/library"
	"anishelf/internal/logging"
	"anishelf/internal/releases"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore runs fn against an opened library store, closing it afterwards.
func (c *commandContext) withStore(fn func(*config.Config, *library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := library.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

// newResolver builds the release resolver against the configured source.
// CLI commands run with a silent logger; serve passes its own.
func newResolver(cfg *config.Config, store *library.Store) (*releases.Resolver, error) {
	client, err := ann.New(cfg.Source.BaseURL, ann.WithTimeout(cfg.SourceTimeout()))
	if err != nil {
		return nil, err
	}
	links := ann.NewLinks(cfg.Source.BaseURL, cfg.Source.CDNURL)
	return releases.NewResolver(store, client, links, logging.NewNop()), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
