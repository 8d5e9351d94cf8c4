package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/scopecheck/internal/classify"
	"github.com/raphi011/scopecheck/internal/lockfile"
	"github.com/raphi011/scopecheck/internal/npmrc"
)

const (
	r0 = "https://registry.example/"
	r1 = "https://npm.acme.example/"
)

func scenario() Report {
	cfg := &npmrc.Config{
		Registries:      map[string]string{"@a": r1, "@b": r0},
		DefaultRegistry: r0,
		Files:           []string{"/home/u/.npmrc", "/work/.npmrc"},
		Origins:         map[string]string{"@a": "/work/.npmrc", "@b": "/work/.npmrc"},
		DefaultOrigin:   "/home/u/.npmrc",
	}
	lf := &lockfile.Lockfile{
		Path:     "/work/pnpm-lock.yaml",
		Version:  "9.0",
		Packages: []string{"@a/x", "@b/y"},
	}
	classified := lf.PackagesByRegistry(cfg.Registries, cfg.DefaultRegistry)
	summary := classify.Summarize(lf.Scopes(), cfg.Registries, classified)
	return New(lf, cfg, summary, nil)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" toml ", FormatTOML, false},
		{"", FormatText, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	r := scenario()

	assert.Equal(t, "/work/pnpm-lock.yaml", r.Lockfile)
	assert.Equal(t, "9.0", r.LockfileVersion)
	assert.Equal(t, r0, r.DefaultRegistry)
	assert.Equal(t, "/home/u/.npmrc", r.DefaultSource)
	assert.Equal(t, []Mapping{
		{Scope: "@a", Registry: r1, Source: "/work/.npmrc"},
		{Scope: "@b", Registry: r0, Source: "/work/.npmrc"},
	}, r.Mappings)
	assert.Equal(t, 1, r.Summary.TotalPackages)
	assert.Equal(t, 1, r.Summary.RegistryCount)
}

func TestTotals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 package from 1 custom registry", Totals(1, 1))
	assert.Equal(t, "3 packages from 2 custom registries", Totals(3, 2))
	assert.Equal(t, "0 packages from 0 custom registries", Totals(0, 0))
}

func TestRender_Text(t *testing.T) {
	r := scenario()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText))
	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "Config files")
	assert.Contains(t, out, "/home/u/.npmrc")
	assert.Contains(t, out, "Default registry")
	assert.Contains(t, out, r0+" (from /home/u/.npmrc)")
	assert.Contains(t, out, "Scope registries")
	assert.Contains(t, out, "SCOPE")
	assert.Contains(t, out, "@a")
	assert.Contains(t, out, r1)
	assert.Contains(t, out, "Mapped scopes in lockfile: @a, @b")
	assert.Contains(t, out, "  @a/x\n")
	assert.NotContains(t, out, "@b/y")
	assert.Contains(t, out, "1 package from 1 custom registry")
	assert.NotContains(t, out, "All packages resolve to the default registry")
}

func TestRender_TextAllDefault(t *testing.T) {
	r := Report{
		Lockfile:        "/work/pnpm-lock.yaml",
		DefaultRegistry: npmrc.DefaultRegistryURL,
		Summary:         classify.Summarize(lockfile.ScopeSet{}, nil, nil),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText))
	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "none found")
	assert.Contains(t, out, "(built-in)")
	assert.Contains(t, out, "none configured")
	assert.Contains(t, out, "All packages resolve to the default registry")
	assert.NotContains(t, out, "custom registr")
}

func TestRender_TextHints(t *testing.T) {
	r := scenario()
	r.Hints = []classify.Hint{{Scope: "@acmee", Suggestion: "@acme", Registry: r1}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText))

	assert.Contains(t, ansi.Strip(buf.String()), "@acmee has no registry mapping; did you mean @acme ("+r1+")?")
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, scenario(), FormatJSON))

	var got struct {
		DefaultRegistry string           `json:"default_registry"`
		Mappings        []Mapping        `json:"scope_registries"`
		Summary         classify.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, r0, got.DefaultRegistry)
	assert.Len(t, got.Mappings, 2)
	assert.Equal(t, 1, got.Summary.TotalPackages)
	assert.Equal(t, []classify.RegistryGroup{{URL: r1, Packages: []string{"@a/x"}}}, got.Summary.Registries)
	assert.NotContains(t, buf.String(), "\x1b[", "JSON output must not contain ANSI codes")
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \""), "JSON output should be indented")
}

func TestRender_TOML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, scenario(), FormatTOML))

	var got Report
	_, err := toml.Decode(buf.String(), &got)
	require.NoError(t, err)

	assert.Equal(t, r0, got.DefaultRegistry)
	assert.Equal(t, "/work/pnpm-lock.yaml", got.Lockfile)
	assert.Equal(t, 1, got.Summary.RegistryCount)
	require.Len(t, got.Summary.Registries, 1)
	assert.Equal(t, []string{"@a/x"}, got.Summary.Registries[0].Packages)
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Render(&bytes.Buffer{}, scenario(), Format("yaml"))
	require.Error(t, err)
}

func TestPackageList(t *testing.T) {
	t.Parallel()

	r := Report{Summary: classify.Summary{Registries: []classify.RegistryGroup{
		{URL: r0, Packages: []string{"@b/one", "@b/two"}},
		{URL: r1, Packages: []string{"@a/x"}},
	}}}

	assert.Equal(t, "@b/one\n@b/two\n@a/x\n", PackageList(r))
	assert.Empty(t, PackageList(Report{}))
}
