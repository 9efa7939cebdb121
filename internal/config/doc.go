// Package config loads, validates, and defaults the threshold configuration
// for intake runs and the manifest index job.
//
// Configuration is a TOML file resolved from an explicit path, then
// ~/.config/luft/config.toml, then ./luft.toml. Missing keys fall back to
// documented defaults; the declared version is checked for compatibility with
// the supported schema version. The loaded Config is treated as read-only for
// the duration of a run.
package config
