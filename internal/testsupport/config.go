package testsupport

import (
	"path/filepath"
	"testing"

	"anishelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithSourceBaseURL points the source endpoints at a test server.
func WithSourceBaseURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Source.BaseURL = baseURL
		cfg.Source.CDNURL = baseURL
	}
}
