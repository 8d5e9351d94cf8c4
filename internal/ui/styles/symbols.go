package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Symbols holds the markers placed in front of report sections
type Symbols struct {
	Config   string
	Registry string
	Scope    string
	Package  string
	Success  string
	Hint     string
}

// ErrorMarker prefixes error messages on stderr regardless of the emoji setting.
const ErrorMarker = "✗"

// Emoji symbols
var emojiSymbols = Symbols{
	Config:   "📄",
	Registry: "🌐",
	Scope:    "🔗",
	Package:  "📦",
	Success:  "✅",
	Hint:     "💡",
}

// Plain symbols for terminals and logs without emoji support
var plainSymbols = Symbols{
	Config:   "*",
	Registry: "*",
	Scope:    "*",
	Package:  "-",
	Success:  "✔",
	Hint:     "?",
}

// currentSymbols holds the active symbol set
var currentSymbols = emojiSymbols

// SetEmoji switches between the emoji and plain symbol sets
func SetEmoji(enabled bool) {
	if enabled {
		currentSymbols = emojiSymbols
	} else {
		currentSymbols = plainSymbols
	}
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// FormatRegistry renders a registry URL in the accent color as an OSC 8
// hyperlink. isDefault renders it in the normal text color instead.
func FormatRegistry(url string, isDefault bool) string {
	if url == "" {
		return ""
	}

	var style lipgloss.Style
	if isDefault {
		style = NormalStyle
	} else {
		style = AccentStyle
	}

	return ansi.SetHyperlink(url) + style.Render(url) + ansi.ResetHyperlink()
}

// FormatError renders an error message with the error marker.
func FormatError(msg string) string {
	return ErrorStyle.Render(ErrorMarker + " " + msg)
}
