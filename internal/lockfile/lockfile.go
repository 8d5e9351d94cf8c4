// Package lockfile reads pnpm-lock.yaml and extracts the package keys and
// scopes it contains.
//
// Only two top-level fields are read: lockfileVersion and packages. Package
// metadata is never inspected; the keys alone ("@acme/ui@1.2.0", "lodash@4.17.21")
// are enough to tell which scope each package belongs to.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional lockfile name.
const FileName = "pnpm-lock.yaml"

var (
	// ErrLockfileNotFound is returned when the lockfile does not exist.
	ErrLockfileNotFound = errors.New("lockfile not found")

	// ErrLockfileParse matches every *ParseError via errors.Is.
	ErrLockfileParse = errors.New("failed to parse lockfile")
)

// ParseError reports a lockfile that exists but is not a YAML mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse lockfile %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLockfileParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrLockfileParse
}

// scopeRe captures the "@scope" prefix of a package key.
var scopeRe = regexp.MustCompile(`^(@[^/]+)/`)

// ScopeOf returns the scope of a package key, e.g. "@acme" for
// "@acme/ui@1.2.0". Unscoped keys return false.
func ScopeOf(pkg string) (string, bool) {
	m := scopeRe.FindStringSubmatch(pkg)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ScopeSet is a set of unique scopes.
type ScopeSet map[string]struct{}

// Has reports whether scope is in the set.
func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}

// Sorted returns the scopes in lexicographic order.
func (s ScopeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for scope := range s {
		out = append(out, scope)
	}
	slices.Sort(out)
	return out
}

// ClassifiedPackages maps a custom registry URL to the package keys that
// resolve to it, in lockfile order.
type ClassifiedPackages map[string][]string

// Lockfile is the part of pnpm-lock.yaml scopecheck needs.
type Lockfile struct {
	Path string
	// Version is the lockfileVersion field as written, empty if absent.
	Version string
	// Packages holds the keys of the packages mapping in document order.
	Packages []string
}

// Load reads and parses the lockfile at path.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLockfileNotFound, path)
		}
		return nil, fmt.Errorf("read lockfile: %w", err)
	}

	lf, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	lf.Path = path

	return lf, nil
}

// Parse decodes lockfile content. The top level must be a mapping (or
// empty). A packages field that is missing or not a mapping yields no
// packages.
func Parse(data []byte) (*Lockfile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	lf := &Lockfile{}

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return lf, nil
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return lf, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping at the top level, got %s", root.Line, kindName(root))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolve(root.Content[i+1])

		switch key.Value {
		case "lockfileVersion":
			if value.Kind == yaml.ScalarNode {
				lf.Version = value.Value
			}
		case "packages":
			lf.Packages = mappingKeys(value)
		}
	}

	return lf, nil
}

// mappingKeys returns the scalar keys of a mapping node in document order.
// Any other node kind yields nil.
func mappingKeys(n *yaml.Node) []string {
	if n.Kind != yaml.MappingNode {
		return nil
	}

	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; k.Kind == yaml.ScalarNode {
			keys = append(keys, k.Value)
		}
	}
	return keys
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return fmt.Sprintf("a scalar (%s)", n.ShortTag())
	case yaml.MappingNode:
		return "a mapping"
	default:
		return "an unsupported node"
	}
}

// Scopes returns every scope referenced by a package key.
func (lf *Lockfile) Scopes() ScopeSet {
	scopes := make(ScopeSet)
	for _, pkg := range lf.Packages {
		if scope, ok := ScopeOf(pkg); ok {
			scopes[scope] = struct{}{}
		}
	}
	return scopes
}

// PackagesByRegistry groups package keys by the custom registry their scope
// maps to. Unscoped packages, unmapped scopes and scopes mapped to exactly
// defaultRegistry are left out.
func (lf *Lockfile) PackagesByRegistry(registries map[string]string, defaultRegistry string) ClassifiedPackages {
	classified := make(ClassifiedPackages)
	for _, pkg := range lf.Packages {
		scope, ok := ScopeOf(pkg)
		if !ok {
			continue
		}
		reg, ok := registries[scope]
		if !ok || reg == defaultRegistry {
			continue
		}
		classified[reg] = append(classified[reg], pkg)
	}
	return classified
}

// ExtractScopes loads the lockfile at path and returns its scopes.
func ExtractScopes(path string) (ScopeSet, error) {
	lf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return lf.Scopes(), nil
}

// ExtractPackagesByRegistry loads the lockfile at path and groups its
// packages by custom registry.
func ExtractPackagesByRegistry(path string, registries map[string]string, defaultRegistry string) (ClassifiedPackages, error) {
	lf, err := Load(path)
	if err != nil {
		return nil, err
	}
	return lf.PackagesByRegistry(registries, defaultRegistry), nil
}
