package styles

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/scopecheck/internal/config"
)

// Theme defines the color palette for the report
type Theme struct {
	Primary color.Color // section titles
	Accent  color.Color // custom registries
	Success color.Color // "all default" outcome
	Error   color.Color // error messages
	Muted   color.Color // file origins, secondary text
	Normal  color.Color // standard text
	Info    color.Color // mapped scopes summary
	Warning color.Color // hints
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme // nil if no light variant
	Dark  *Theme // nil if no dark variant
}

// Preset themes
var (
	// DefaultTheme is the default color scheme (dark only)
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // section titles: teal
		Accent:  lipgloss.Color("212"), // custom registries: pink
		Success: lipgloss.Color("82"),  // all-default outcome: green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // file origins: dark gray
		Normal:  lipgloss.Color("252"), // default registry: light gray
		Info:    lipgloss.Color("244"), // mapped scopes: gray
		Warning: lipgloss.Color("214"), // typo hints: orange
	}

	// NordTheme is based on the Nord color scheme (dark)
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"), // nord6
		Info:    lipgloss.Color("#81a1c1"), // nord9
		Warning: lipgloss.Color("#ebcb8b"), // nord13
	}

	// NordLightTheme is the Nord palette tuned for light backgrounds
	NordLightTheme = Theme{
		Primary: lipgloss.Color("#5e81ac"), // nord10
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#9a9a9a"),
		Normal:  lipgloss.Color("#2e3440"), // nord0
		Info:    lipgloss.Color("#81a1c1"), // nord9
		Warning: lipgloss.Color("#d08770"), // nord12
	}

	// NoneTheme renders without any colors (uses terminal defaults).
	// Bold and italic are kept.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// themeFamilies maps theme family names to their light/dark variants
var themeFamilies = map[string]themeFamily{
	"none":    {Light: &NoneTheme, Dark: &NoneTheme},
	"default": {Dark: &DefaultTheme},
	"nord":    {Light: &NordLightTheme, Dark: &NordTheme},
}

// Init initializes the theme and symbols from config.
// Call this after loading config and before rendering the report.
func Init(cfg config.ThemeConfig) {
	applyTheme(selectTheme(cfg))
	SetEmoji(cfg.UseEmoji())
}

// selectTheme picks the appropriate theme based on config and terminal background
func selectTheme(cfg config.ThemeConfig) Theme {
	mode := cfg.Mode
	if mode == "" {
		mode = "auto"
	}

	family, ok := themeFamilies[cfg.Name]
	if !ok {
		if cfg.Name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				cfg.Name, strings.Join(config.ValidThemeNames, ", "))
		}
		family = themeFamilies["default"]
	}

	var theme *Theme
	switch mode {
	case "light":
		theme = family.Light
	case "dark":
		theme = family.Dark
	default:
		// Only query the terminal when the family actually has both variants
		if family.Light != nil && family.Dark != nil && family.Light != family.Dark {
			if lipgloss.HasDarkBackground(os.Stdin, os.Stderr) {
				theme = family.Dark
			} else {
				theme = family.Light
			}
		}
	}

	// Fall back if the requested variant doesn't exist
	if theme == nil {
		if family.Dark != nil {
			theme = family.Dark
		} else {
			theme = family.Light
		}
	}

	return *theme
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Info = t.Info
	Warning = t.Warning

	TitleStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
