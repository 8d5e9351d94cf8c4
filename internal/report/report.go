// Package report renders the scan result as text, JSON or TOML.
//
// The text format is meant for humans and uses the active theme from
// [styles]; JSON and TOML carry the same data for scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/scopecheck/internal/classify"
	"github.com/raphi011/scopecheck/internal/lockfile"
	"github.com/raphi011/scopecheck/internal/npmrc"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatTOML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be text, json or toml", s)
	}
}

// Mapping is one scope to registry declaration and the file it came from.
type Mapping struct {
	Scope    string `json:"scope" toml:"scope"`
	Registry string `json:"registry" toml:"registry"`
	Source   string `json:"source,omitempty" toml:"source,omitempty"`
}

// Report is everything the renderers need for one scan.
type Report struct {
	Lockfile        string           `json:"lockfile" toml:"lockfile"`
	LockfileVersion string           `json:"lockfile_version,omitempty" toml:"lockfile_version,omitempty"`
	ConfigFiles     []string         `json:"config_files" toml:"config_files"`
	DefaultRegistry string           `json:"default_registry" toml:"default_registry"`
	DefaultSource   string           `json:"default_source,omitempty" toml:"default_source,omitempty"`
	Mappings        []Mapping        `json:"scope_registries" toml:"scope_registries"`
	Summary         classify.Summary `json:"summary" toml:"summary"`
	Hints           []classify.Hint  `json:"hints,omitempty" toml:"hints,omitempty"`
}

// New assembles a Report from the resolved config, the scanned lockfile
// and its classification.
func New(lf *lockfile.Lockfile, cfg *npmrc.Config, summary classify.Summary, hints []classify.Hint) Report {
	r := Report{
		Lockfile:        lf.Path,
		LockfileVersion: lf.Version,
		ConfigFiles:     append([]string{}, cfg.Files...),
		DefaultRegistry: cfg.DefaultRegistry,
		DefaultSource:   cfg.DefaultOrigin,
		Mappings:        make([]Mapping, 0, len(cfg.Registries)),
		Summary:         summary,
		Hints:           hints,
	}
	for _, scope := range cfg.Scopes() {
		r.Mappings = append(r.Mappings, Mapping{
			Scope:    scope,
			Registry: cfg.Registries[scope],
			Source:   cfg.Origins[scope],
		})
	}
	return r
}

// Render writes r to w in the given format.
func Render(w io.Writer, r Report, format Format) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, renderText(r))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(r); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// PackageList returns the custom-registry packages one per line, grouped
// by registry in report order.
func PackageList(r Report) string {
	var sb strings.Builder
	for _, group := range r.Summary.Registries {
		for _, pkg := range group.Packages {
			sb.WriteString(pkg)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Totals formats the package and registry counts, e.g.
// "1 package from 1 custom registry".
func Totals(packages, registries int) string {
	return fmt.Sprintf("%d %s from %d custom %s",
		packages, plural(packages, "package", "packages"),
		registries, plural(registries, "registry", "registries"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
