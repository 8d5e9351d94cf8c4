package report

import (
	"fmt"
	"strings"

	"github.com/raphi011/scopecheck/internal/ui/static"
	"github.com/raphi011/scopecheck/internal/ui/styles"
)

const indent = "  "

func renderText(r Report) string {
	sym := styles.CurrentSymbols()
	var sb strings.Builder

	header := "Lockfile " + r.Lockfile
	if r.LockfileVersion != "" {
		header += styles.MutedStyle.Render(" (v" + r.LockfileVersion + ")")
	}
	sb.WriteString(styles.Bold.Render(header) + "\n\n")

	section(&sb, sym.Config, "Config files")
	if len(r.ConfigFiles) == 0 {
		sb.WriteString(indent + styles.MutedStyle.Render("none found") + "\n")
	}
	for _, f := range r.ConfigFiles {
		sb.WriteString(indent + f + "\n")
	}
	sb.WriteString("\n")

	section(&sb, sym.Registry, "Default registry")
	source := "built-in"
	if r.DefaultSource != "" {
		source = "from " + r.DefaultSource
	}
	sb.WriteString(indent + styles.FormatRegistry(r.DefaultRegistry, true) + " " +
		styles.MutedStyle.Render("("+source+")") + "\n\n")

	section(&sb, sym.Scope, "Scope registries")
	if len(r.Mappings) == 0 {
		sb.WriteString(indent + styles.MutedStyle.Render("none configured") + "\n")
	} else {
		rows := make([][]string, 0, len(r.Mappings))
		for _, m := range r.Mappings {
			rows = append(rows, static.ScopeTableRow(m.Scope, m.Registry, m.Source, r.DefaultRegistry))
		}
		for _, line := range strings.Split(strings.TrimRight(static.RenderTable(static.ScopeTableHeaders, rows), "\n"), "\n") {
			sb.WriteString(indent + line + "\n")
		}
	}
	sb.WriteString("\n")

	if len(r.Summary.NonDefaultScopes) > 0 {
		sb.WriteString(styles.InfoStyle.Render(fmt.Sprintf("Mapped scopes in lockfile: %s",
			strings.Join(r.Summary.NonDefaultScopes, ", "))) + "\n\n")
	}

	if r.Summary.AllDefault() {
		sb.WriteString(styles.SuccessStyle.Render(sym.Success+" All packages resolve to the default registry") + "\n")
	} else {
		for _, group := range r.Summary.Registries {
			sb.WriteString(sym.Package + " " + styles.FormatRegistry(group.URL, false) + "\n")
			for _, pkg := range group.Packages {
				sb.WriteString(indent + pkg + "\n")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(styles.Bold.Render(Totals(r.Summary.TotalPackages, r.Summary.RegistryCount)) + "\n")
	}

	if len(r.Hints) > 0 {
		sb.WriteString("\n")
		for _, h := range r.Hints {
			sb.WriteString(styles.WarningStyle.Render(fmt.Sprintf("%s %s has no registry mapping; did you mean %s (%s)?",
				sym.Hint, h.Scope, h.Suggestion, h.Registry)) + "\n")
		}
	}

	return sb.String()
}

func section(sb *strings.Builder, symbol, title string) {
	sb.WriteString(symbol + " " + styles.TitleStyle.Render(title) + "\n")
}
