// Package config loads and merges inclint tool configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (INCLINT_FORMAT, INCLINT_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/inclint/config.json)
//  4. Built-in defaults
//
// This covers how the tool runs — output format, fail threshold, diff
// limits, cache settings. The rule definitions themselves live in the
// scanned repository's YAML rule file and are handled by the rules package.
package config
