// Package config loads and merges reviewpack configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (REVIEWPACK_MODEL, REVIEWPACK_MAX_DIFF_SIZE, etc.)
//  3. Config file ($XDG_CONFIG_HOME/reviewpack/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Init] to write a default config
// file, and [Set] to update a single key in the config file. CI job settings
// live in [CIConfig], read once from the environment by [LoadCI].
package config
