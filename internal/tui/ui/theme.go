package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when no theme is configured or the configured one is unknown
const DefaultTheme = "dracula"

// ThemeProvider manages TUI themes using bubbletint
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string // sorted
}

// NewThemeProvider creates a ThemeProvider starting on initialTheme,
// falling back to DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	fallback := findTint(all, DefaultTheme)
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}

	registry := tint.NewRegistry(fallback, all...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}

	ids := registry.TintIDs()
	sort.Strings(ids)

	return &ThemeProvider{registry: registry, ids: ids}
}

func findTint(tints []tint.Tint, id string) tint.Tint {
	for _, t := range tints {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// SetTheme switches to the theme with id name and reports whether it exists
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns every theme id, sorted
func (tp *ThemeProvider) AvailableThemes() []string {
	out := make([]string, len(tp.ids))
	copy(out, tp.ids)
	return out
}

// Index returns the position of name in AvailableThemes, or -1
func (tp *ThemeProvider) Index(name string) int {
	i := sort.SearchStrings(tp.ids, name)
	if i < len(tp.ids) && tp.ids[i] == name {
		return i
	}
	return -1
}

// Styles returns the styles for the current theme
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
