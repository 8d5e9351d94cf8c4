package npmrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want Declaration
	}{
		{"scope declaration", "@acme:registry = https://npm.acme.example/", ScopeDeclaration{Scope: "@acme", Registry: "https://npm.acme.example/"}},
		{"scope without spaces", "@acme:registry=https://npm.acme.example/", ScopeDeclaration{Scope: "@acme", Registry: "https://npm.acme.example/"}},
		{"scope with surrounding whitespace", "  \t@acme:registry =  https://x/  ", ScopeDeclaration{Scope: "@acme", Registry: "https://x/"}},
		{"scope with trailing comment", "@acme:registry = https://x/ # internal", ScopeDeclaration{Scope: "@acme", Registry: "https://x/"}},
		{"scope name with dots and dashes", "@my-org.io:registry = R1", ScopeDeclaration{Scope: "@my-org.io", Registry: "R1"}},
		{"default registry", "registry = https://registry.example/", DefaultDeclaration{Registry: "https://registry.example/"}},
		{"default registry without spaces", "registry=R0", DefaultDeclaration{Registry: "R0"}},
		{"carriage return", "registry = R0\r", DefaultDeclaration{Registry: "R0"}},
		{"commented scope", "# @foo:registry = https://x/", Unrecognized{}},
		{"comment only", "# just a comment", Unrecognized{}},
		{"empty", "", Unrecognized{}},
		{"whitespace", "   ", Unrecognized{}},
		{"auth token", "//npm.acme.example/:_authToken=${NPM_TOKEN}", Unrecognized{}},
		{"other key", "always-auth=true", Unrecognized{}},
		{"missing value", "registry =", Unrecognized{}},
		{"missing scope value", "@acme:registry = ", Unrecognized{}},
		{"scope value is only a comment", "@a:registry = # c", Unrecognized{}},
		{"default value is only a comment", "registry = #c", Unrecognized{}},
		{"default value is a bare comment", "registry=#", Unrecognized{}},
		{"scope containing slash", "@a/b:registry = R1", Unrecognized{}},
		{"scope without at sign", "acme:registry = R1", Unrecognized{}},
		{"empty scope name", "@:registry = R1", Unrecognized{}},
		{"prefixed registry key", "myregistry = R1", Unrecognized{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}
