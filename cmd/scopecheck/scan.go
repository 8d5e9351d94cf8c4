package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/scopecheck/internal/classify"
	"github.com/raphi011/scopecheck/internal/config"
	"github.com/raphi011/scopecheck/internal/lockfile"
	"github.com/raphi011/scopecheck/internal/log"
	"github.com/raphi011/scopecheck/internal/npmrc"
	"github.com/raphi011/scopecheck/internal/output"
	"github.com/raphi011/scopecheck/internal/report"
)

type scanOptions struct {
	lockfile   string
	userConfig string
	format     report.Format
	copy       bool
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// runScan resolves the registry config for a lockfile, classifies its
// packages and prints the report.
func runScan(ctx context.Context, opts scanOptions) error {
	l := log.FromContext(ctx)
	cfg := config.FromContext(ctx)
	out := output.FromContext(ctx)

	path, err := filepath.Abs(opts.lockfile)
	if err != nil {
		return fmt.Errorf("resolve lockfile path: %w", err)
	}

	rc, err := npmrc.Resolve(ctx, opts.userConfig, path)
	if err != nil {
		return err
	}

	lf, err := lockfile.Load(path)
	if err != nil {
		return err
	}

	scopes := lf.Scopes()
	classified := lf.PackagesByRegistry(rc.Registries, rc.DefaultRegistry)
	l.Debug("scanned lockfile", "path", path, "version", lf.Version, "packages", len(lf.Packages), "scopes", len(scopes))

	summary := classify.Summarize(scopes, rc.Registries, classified)

	var hints []classify.Hint
	if cfg.Hints.IsEnabled() {
		hints = classify.Hints(scopes, rc.Registries)
	}

	r := report.New(lf, rc, summary, hints)
	if err := report.Render(reportWriter(out, opts.format), r, opts.format); err != nil {
		return err
	}

	if opts.copy {
		copyPackages(l, r)
	}

	return nil
}

// reportWriter returns the destination for the report. Text written to a
// file descriptor goes through a colorprofile writer so ANSI sequences are
// downsampled or stripped to what the terminal supports.
func reportWriter(out *output.Printer, format report.Format) io.Writer {
	if format != report.FormatText {
		return out.Writer()
	}
	if f, ok := out.IsFile(); ok {
		return colorprofile.NewWriter(f, os.Environ())
	}
	return out.Writer()
}

func copyPackages(l *log.Logger, r report.Report) {
	list := report.PackageList(r)
	if list == "" {
		l.Printf("No custom-registry packages to copy\n")
		return
	}
	if err := writeClipboard(strings.TrimSuffix(list, "\n")); err != nil {
		l.Printf("Warning: failed to copy to clipboard: %v\n", err)
		return
	}
	l.Printf("Copied %d package(s) to clipboard\n", r.Summary.TotalPackages)
}

// resolveFormat applies flag > settings (file or env) precedence.
func resolveFormat(cmd *cobra.Command, opts *rootOptions) (report.Format, error) {
	if opts.jsonOutput {
		return report.FormatJSON, nil
	}
	if cmd.Flags().Changed("format") {
		return report.ParseFormat(opts.format)
	}
	return report.ParseFormat(config.FromContext(cmd.Context()).Format)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
