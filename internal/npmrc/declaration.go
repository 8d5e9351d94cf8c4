package npmrc

import (
	"regexp"
	"strings"
)

var (
	// scopeRegistryRe matches "@<scope>:registry = <value>".
	// The scope name is one or more characters other than ':' and '/',
	// so a mapping key never looks like a package path.
	scopeRegistryRe = regexp.MustCompile(`^(@[^:/]+):registry\s*=\s*(.+)$`)

	// defaultRegistryRe matches "registry = <value>" with no scope prefix.
	defaultRegistryRe = regexp.MustCompile(`^registry\s*=\s*(.+)$`)
)

// Declaration is the classification of a single config line. It is one of
// ScopeDeclaration, DefaultDeclaration or Unrecognized.
type Declaration interface {
	declaration()
}

// ScopeDeclaration maps a scope (including its leading @) to a registry.
type ScopeDeclaration struct {
	Scope    string
	Registry string
}

// DefaultDeclaration replaces the default registry.
type DefaultDeclaration struct {
	Registry string
}

// Unrecognized is any line that declares nothing scopecheck cares about,
// including blank and comment-only lines.
type Unrecognized struct{}

func (ScopeDeclaration) declaration()   {}
func (DefaultDeclaration) declaration() {}
func (Unrecognized) declaration()       {}

// ParseLine classifies one line of an .npmrc file. A declaration whose
// value is empty once the comment is removed is Unrecognized.
func ParseLine(line string) Declaration {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Unrecognized{}
	}

	if m := scopeRegistryRe.FindStringSubmatch(line); m != nil {
		return ScopeDeclaration{Scope: m[1], Registry: strings.TrimSpace(m[2])}
	}
	if m := defaultRegistryRe.FindStringSubmatch(line); m != nil {
		return DefaultDeclaration{Registry: strings.TrimSpace(m[1])}
	}
	return Unrecognized{}
}
