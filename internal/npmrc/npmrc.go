package npmrc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/scopecheck/internal/log"
)

// DefaultRegistryURL is the public npm registry, used unless a config file
// declares "registry = ...".
const DefaultRegistryURL = "https://registry.npmjs.org/"

// FileName is the name of both the user and the project config file.
const FileName = ".npmrc"

// EnvUserConfig relocates the user-level config file, as npm itself does.
const EnvUserConfig = "NPM_CONFIG_USERCONFIG"

// Config is the merged result of all config layers.
type Config struct {
	// Registries maps a scope ("@acme") to its registry URL.
	Registries map[string]string `json:"registries" toml:"registries"`
	// DefaultRegistry is the registry for unscoped and unmapped packages.
	DefaultRegistry string `json:"default_registry" toml:"default_registry"`
	// Files lists the config files that were read, in application order.
	Files []string `json:"files" toml:"files"`
	// Origins maps each scope to the file whose declaration won.
	Origins map[string]string `json:"-" toml:"-"`
	// DefaultOrigin is the file that set DefaultRegistry, empty for the built-in default.
	DefaultOrigin string `json:"-" toml:"-"`
}

// RegistryFor returns the registry mapped to scope.
func (c *Config) RegistryFor(scope string) (string, bool) {
	reg, ok := c.Registries[scope]
	return reg, ok
}

// IsCustom reports whether scope is mapped to a registry other than the default.
func (c *Config) IsCustom(scope string) bool {
	reg, ok := c.Registries[scope]
	return ok && reg != c.DefaultRegistry
}

// Scopes returns the mapped scope names sorted lexicographically.
func (c *Config) Scopes() []string {
	scopes := make([]string, 0, len(c.Registries))
	for s := range c.Registries {
		scopes = append(scopes, s)
	}
	slices.Sort(scopes)
	return scopes
}

// UserConfigPath returns $NPM_CONFIG_USERCONFIG if set, otherwise ~/.npmrc.
func UserConfigPath() (string, error) {
	if p := os.Getenv(EnvUserConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// LocateConfigFiles returns the existing config files for a lockfile,
// lowest precedence first: the user config, then the .npmrc in the
// lockfile's directory. Candidates that don't exist are omitted. Either
// argument may be empty to skip that layer.
func LocateConfigFiles(userConfig, lockfilePath string) []string {
	var files []string

	if userConfig != "" && isFile(userConfig) {
		files = append(files, userConfig)
	}

	if lockfilePath != "" {
		project := filepath.Join(filepath.Dir(lockfilePath), FileName)
		if isFile(project) && !samePath(project, userConfig) {
			files = append(files, project)
		}
	}

	return files
}

// ParseConfig reads paths in order and merges their declarations. A later
// path overrides an earlier one for every key it declares. Paths that no
// longer exist are skipped; any other read error is returned.
func ParseConfig(paths []string) (*Config, error) {
	cfg := &Config{
		Registries:      make(map[string]string),
		DefaultRegistry: DefaultRegistryURL,
		Origins:         make(map[string]string),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		cfg.Files = append(cfg.Files, path)
		cfg.apply(path, data)
	}

	return cfg, nil
}

// apply merges every declaration in data into c.
func (c *Config) apply(path string, data []byte) {
	for _, line := range strings.Split(string(data), "\n") {
		switch d := ParseLine(line).(type) {
		case ScopeDeclaration:
			c.Registries[d.Scope] = d.Registry
			c.Origins[d.Scope] = path
		case DefaultDeclaration:
			c.DefaultRegistry = d.Registry
			c.DefaultOrigin = path
		}
	}
}

// Resolve locates and parses the config layers that apply to lockfilePath.
func Resolve(ctx context.Context, userConfig, lockfilePath string) (*Config, error) {
	l := log.FromContext(ctx)

	files := LocateConfigFiles(userConfig, lockfilePath)
	l.Debug("located config files", "user", userConfig, "found", len(files))

	cfg, err := ParseConfig(files)
	if err != nil {
		return nil, err
	}

	for _, f := range cfg.Files {
		l.Debug("applied config", "path", f)
	}
	l.Debug("resolved registries", "default", cfg.DefaultRegistry, "scopes", len(cfg.Registries))

	return cfg, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
