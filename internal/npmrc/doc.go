// Package npmrc locates and parses the layered .npmrc files that decide which
// registry each package scope resolves to.
//
// # Layers (lowest precedence first)
//
//   - User config: $NPM_CONFIG_USERCONFIG, or ~/.npmrc
//   - Project config: .npmrc next to the lockfile
//
// Files are applied in order, so a declaration in the project config
// replaces the same declaration from the user config. Missing files
// contribute nothing and are not an error.
//
// # Recognized Lines
//
//	registry = https://registry.example.com/        # default registry
//	@acme:registry = https://npm.acme.example/      # registry for scope @acme
//
// Everything from the first # to the end of the line is a comment. Any other
// line (auth tokens, always-auth, ...) is ignored.
package npmrc
