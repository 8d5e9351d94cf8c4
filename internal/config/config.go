package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override file settings.
const (
	EnvFormat = "SCOPECHECK_FORMAT"
	EnvTheme  = "SCOPECHECK_THEME"
)

// DefaultFormat is the report format used when nothing else is configured.
const DefaultFormat = "text"

// ThemeConfig holds color and symbol settings for text output
type ThemeConfig struct {
	Name  string `toml:"name" json:"name"`   // preset family name
	Mode  string `toml:"mode" json:"mode"`   // "auto", "light" or "dark"
	Emoji *bool  `toml:"emoji" json:"emoji"` // nil means enabled
}

// UseEmoji returns whether emoji section markers are enabled (default: true).
func (t ThemeConfig) UseEmoji() bool {
	return t.Emoji == nil || *t.Emoji
}

// HintsConfig holds settings for near-miss scope hints
type HintsConfig struct {
	Enabled *bool `toml:"enabled" json:"enabled"` // nil means enabled
}

// IsEnabled returns whether hints are shown (default: true).
func (h HintsConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// Config holds the scopecheck settings
type Config struct {
	Format string      `toml:"format" json:"format"`
	Theme  ThemeConfig `toml:"theme" json:"theme"`
	Hints  HintsConfig `toml:"hints" json:"hints"`

	// Path is the settings file that was loaded, empty if none.
	Path string `toml:"-" json:"path,omitempty"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Format: DefaultFormat,
		Theme: ThemeConfig{
			Name: "default",
			Mode: "auto",
		},
	}
}

// Path returns the path to ~/.config/scopecheck/config.toml
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "scopecheck", "config.toml"), nil
}

// Load reads config from ~/.config/scopecheck/config.toml and applies
// environment overrides.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		// No home directory: environment overrides only
		path = ""
	}
	return LoadFrom(path, os.Getenv)
}

// LoadFrom reads config from path, then applies overrides from getenv.
// An empty path skips the file.
func LoadFrom(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		err = os.ErrNotExist
	}
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Default(), fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.Path = path
	}

	applyEnv(&cfg, getenv)
	normalize(&cfg)

	// Use defaults for empty values
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "default"
	}
	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = "auto"
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	return cfg, nil
}

// applyEnv overrides file settings with non-empty environment values.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := getenv(EnvTheme); v != "" {
		cfg.Theme.Name = v
	}
}

// normalize lower-cases enum values so "JSON" and "json" are the same format.
func normalize(cfg *Config) {
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Theme.Name = strings.ToLower(strings.TrimSpace(cfg.Theme.Name))
	cfg.Theme.Mode = strings.ToLower(strings.TrimSpace(cfg.Theme.Mode))
}

const defaultConfig = `# scopecheck configuration
#
# These settings only change how the report looks. Which registry a scope
# resolves to is read from ~/.npmrc and the .npmrc next to the lockfile.

# Report format: "text", "json" or "toml"
# Override with --format or SCOPECHECK_FORMAT
format = "text"

[theme]
# Color preset: default, nord, none
# Override with --theme or SCOPECHECK_THEME
name = "default"

# "auto" detects the terminal background, or force "light" / "dark"
mode = "auto"

# Prefix report sections with emoji markers
# emoji = true

[hints]
# Suggest a configured scope when a lockfile scope looks like a typo of it
# enabled = true
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at path.
// If force is true, overwrites existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

type ctxKey struct{}

// WithConfig returns a new context with the Config stored in it.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config from context.
// Returns a pointer to Default() if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}
