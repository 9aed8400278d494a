// Package config loads, normalizes, and validates the TOML configuration
// for the B-roll helper.
//
// Resolution order: an explicit --config path, then ~/.config/broll/
// config.toml, then ./broll.toml. Missing files fall back to defaults; API
// keys can come from environment variables, which take precedence over the
// file. Loaded configs always come back normalized (paths expanded,
// defaults applied) and validated.
package config
