// Package config handles loading and validation of scopecheck's own settings.
//
// Settings are read from ~/.config/scopecheck/config.toml. They only affect
// presentation; registry resolution is driven entirely by .npmrc files (see
// package npmrc).
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (--format, --theme)
//   - SCOPECHECK_FORMAT / SCOPECHECK_THEME env vars
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - format: report format, "text", "json" or "toml" (default: "text")
//   - [theme] name: color preset (default, nord, none)
//   - [theme] mode: "auto", "light" or "dark"
//   - [theme] emoji: use emoji section markers (default: true)
//   - [hints] enabled: suggest likely .npmrc typos for unmapped scopes (default: true)
package config
