package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.LogDir = filepath.Join(base, "logs")
	cfg.Export.OutputDir = filepath.Join(base, "exports")
	cfg.Anthropic.APIKey = "test"
	cfg.Gemini.APIKey = "test"
	cfg.YouTube.APIKey = "test"
	cfg.Transcript.ProviderURL = "http://127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSearchLimit overrides the per-idea search result limit.
func WithSearchLimit(limit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Discovery.SearchLimit = limit
	}
}

// WithExportDir overrides the export output directory.
func WithExportDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Export.OutputDir = dir
	}
}
