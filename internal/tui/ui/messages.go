package ui

// ThemeChangeRequestMsg asks the root model to switch themes
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// RecordsChangedMsg is broadcast after a record is created, edited or deleted,
// or after the collection is cleared, so other views reload.
type RecordsChangedMsg struct{}

// StatusMsg shows a one-line notice in the status bar
type StatusMsg struct {
	Text  string
	Error bool
}
