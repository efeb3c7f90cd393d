package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Record list
	RecordSelected lipgloss.Style
	RecordNormal   lipgloss.Style
	RecordDate     lipgloss.Style
	RecordTitle    lipgloss.Style
	RecordCategory lipgloss.Style
	RecordLocation lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Bar       lipgloss.Style
	BarEmpty  lipgloss.Style

	// Form
	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors
type palette struct {
	primary   lipgloss.TerminalColor // tabs, titles, categories
	secondary lipgloss.TerminalColor // dates, keys
	accent    lipgloss.TerminalColor // bars, locations
	muted     lipgloss.TerminalColor // labels, inactive elements
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
	selection lipgloss.TerminalColor
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	err       lipgloss.TerminalColor
}

// DefaultStyles returns the styles used without a theme registry
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),  // Purple
		secondary: lipgloss.Color("39"),  // Cyan
		accent:    lipgloss.Color("212"), // Pink
		muted:     lipgloss.Color("240"), // Gray
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		selection: lipgloss.Color("237"),
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		err:       lipgloss.Color("196"),
	})
}

// NewStylesFromRegistry creates styles from the current bubbletint theme:
// Purple is primary, Cyan secondary, BrightPurple accent and BrightBlack muted.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		selection: r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		err:       r.Red(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		RecordSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		RecordNormal: lipgloss.NewStyle(),
		RecordDate: lipgloss.NewStyle().
			Foreground(p.secondary).
			Width(17),
		RecordTitle: lipgloss.NewStyle().
			Foreground(p.fg),
		RecordCategory: lipgloss.NewStyle().
			Foreground(p.primary),
		RecordLocation: lipgloss.NewStyle().
			Foreground(p.accent),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(18),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(p.accent),
		BarEmpty: lipgloss.NewStyle().
			Foreground(p.muted),

		FieldLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(13),
		FieldLabelFocused: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Width(13),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(56),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.err),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
