// Package classify derives the summary scopecheck reports from the scanned
// lockfile and the merged registry configuration.
package classify

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/scopecheck/internal/lockfile"
)

// RegistryGroup is one custom registry with the packages resolved from it.
type RegistryGroup struct {
	URL      string   `json:"url" toml:"url"`
	Packages []string `json:"packages" toml:"packages"`
}

// Summary is the classification result handed to the reporter.
type Summary struct {
	// NonDefaultScopes are the lockfile scopes that have a registry mapping, sorted.
	NonDefaultScopes []string `json:"non_default_scopes" toml:"non_default_scopes"`
	// TotalPackages counts packages across all custom registries.
	TotalPackages int `json:"total_packages" toml:"total_packages"`
	// RegistryCount is the number of distinct custom registries.
	RegistryCount int `json:"registry_count" toml:"registry_count"`
	// Registries lists the custom registries sorted by URL.
	Registries []RegistryGroup `json:"registries" toml:"registries"`
}

// AllDefault reports whether no package resolves to a custom registry.
func (s Summary) AllDefault() bool {
	return s.TotalPackages == 0
}

// Summarize computes the Summary. It does not modify its inputs.
func Summarize(scopes lockfile.ScopeSet, registries map[string]string, classified lockfile.ClassifiedPackages) Summary {
	s := Summary{
		NonDefaultScopes: []string{},
		Registries:       []RegistryGroup{},
	}

	for _, scope := range scopes.Sorted() {
		if _, ok := registries[scope]; ok {
			s.NonDefaultScopes = append(s.NonDefaultScopes, scope)
		}
	}

	urls := make([]string, 0, len(classified))
	for url := range classified {
		urls = append(urls, url)
	}
	slices.Sort(urls)

	for _, url := range urls {
		pkgs := classified[url]
		s.TotalPackages += len(pkgs)
		s.Registries = append(s.Registries, RegistryGroup{
			URL:      url,
			Packages: slices.Clone(pkgs),
		})
	}
	s.RegistryCount = len(s.Registries)

	return s
}

// Hint points at a configured scope that an unmapped lockfile scope
// closely resembles, which usually means a typo in .npmrc.
type Hint struct {
	Scope      string `json:"scope" toml:"scope"`
	Suggestion string `json:"suggestion" toml:"suggestion"`
	Registry   string `json:"registry" toml:"registry"`
}

// Hints returns near-miss suggestions for every lockfile scope without a
// mapping, sorted by scope.
func Hints(scopes lockfile.ScopeSet, registries map[string]string) []Hint {
	if len(registries) == 0 {
		return nil
	}

	configured := make([]string, 0, len(registries))
	for scope := range registries {
		configured = append(configured, scope)
	}
	slices.Sort(configured)

	var hints []Hint
	for _, scope := range scopes.Sorted() {
		if _, ok := registries[scope]; ok {
			continue
		}
		if best, ok := nearMiss(scope, configured); ok {
			hints = append(hints, Hint{
				Scope:      scope,
				Suggestion: best,
				Registry:   registries[best],
			})
		}
	}
	return hints
}

// nearMiss finds the configured scope that best resembles scope. Matching
// runs in both directions so that both a dropped and an added character
// count as a near miss.
func nearMiss(scope string, configured []string) (string, bool) {
	name := strings.TrimPrefix(scope, "@")

	best, bestDist := "", -1
	consider := func(candidate string) {
		d := distance(name, strings.TrimPrefix(candidate, "@"))
		if d > maxDistance(name) {
			return
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}

	// configured scope is a subsequence of the lockfile scope ("@acme" in "@acmee")
	for _, c := range configured {
		if len(fuzzy.Find(strings.TrimPrefix(c, "@"), []string{name})) > 0 {
			consider(c)
		}
	}
	// lockfile scope is a subsequence of a configured scope ("@acm" in "@acme")
	for _, m := range fuzzy.Find(name, trimmed(configured)) {
		consider(configured[m.Index])
	}

	return best, bestDist >= 0
}

func trimmed(scopes []string) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = strings.TrimPrefix(s, "@")
	}
	return out
}

// maxDistance bounds how different two scope names may be to count as a
// near miss: one edit for short names, two from eight characters on.
func maxDistance(name string) int {
	if len(name) >= 8 {
		return 2
	}
	return 1
}

// distance is the length difference between two names where one is a
// subsequence of the other, i.e. the number of inserted characters.
func distance(a, b string) int {
	if len(a) > len(b) {
		return len(a) - len(b)
	}
	return len(b) - len(a)
}
