package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/lifelog/internal/config"
	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/tui/ui"
)

const pickerRows = 10

// themePicker is a scrolling single-choice list over the theme names.
type themePicker struct {
	names  []string
	cursor int
	offset int
	open   bool
}

func (p *themePicker) move(delta int) {
	p.cursor = max(0, min(len(p.names)-1, p.cursor+delta))
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerRows {
		p.offset = p.cursor - pickerRows + 1
	}
}

func (p *themePicker) point(i int) {
	if i >= 0 {
		p.cursor = i
	}
	p.move(0)
}

func (p themePicker) selected() (string, bool) {
	if len(p.names) == 0 {
		return "", false
	}
	return p.names[p.cursor], true
}

// ConfigModel shows the settings in effect and lets the user switch theme
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width, height int

	cfg    config.Config
	path   string
	onDisk bool
	theme  string
	picker themePicker
}

type configLoadedMsg struct {
	cfg    config.Config
	path   string
	onDisk bool
}

func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		theme:         themeProvider.CurrentName(),
		picker:        themePicker{names: themeProvider.AvailableThemes()},
	}
	m.picker.point(themeProvider.Index(m.theme))
	return m
}

func (m ConfigModel) Init() tea.Cmd {
	svc := m.services.Config
	return func() tea.Msg {
		return configLoadedMsg{cfg: svc.Get(), path: svc.GetPath(), onDisk: svc.Exists()}
	}
}

func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picker.open {
			return m.pick(msg)
		}
		if key.Matches(msg, m.keys.Select, m.keys.Theme) {
			m.picker.open = true
			m.picker.move(0)
		}

	case configLoadedMsg:
		m.cfg, m.path, m.onDisk = msg.cfg, msg.path, msg.onDisk

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.theme = msg.ThemeName
		m.picker.point(m.themeProvider.Index(m.theme))
	}
	return m, nil
}

func (m ConfigModel) pick(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.picker.move(1)
	case key.Matches(msg, m.keys.Select):
		m.picker.open = false
		if name, ok := m.picker.selected(); ok {
			return m, emit(ui.ThemeChangeRequestMsg{ThemeName: name})
		}
	case key.Matches(msg, m.keys.Back):
		m.picker.open = false
		m.picker.point(m.themeProvider.Index(m.theme))
	}
	return m, nil
}

// IsSelecting reports whether the theme picker has focus
func (m ConfigModel) IsSelecting() bool {
	return m.picker.open
}

func (m ConfigModel) View() string {
	var b strings.Builder
	hint := m.styles.StatLabel.UnsetWidth()

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n")
	b.WriteString(renderStatLine(m.styles, "Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:") + " ")
	if m.onDisk {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (run `lifelog config init`)"))
	}
	b.WriteString("\n\n")

	rows := [][2]string{
		{"backend", m.cfg.Backend},
		{"storage_key", m.cfg.StorageKey},
		{"timezone", m.cfg.Timezone},
		{"export_dir", m.services.Export.Dir()},
		{"log_level", m.cfg.LogLevel},
	}
	for _, r := range rows {
		b.WriteString(renderStatLine(m.styles, r[0], r[1]))
	}

	if !m.picker.open {
		name := m.theme
		if display := m.themeProvider.CurrentDisplayName(); display != "" && display != name {
			name += " (" + display + ")"
		}
		b.WriteString(renderStatLine(m.styles, "theme", name))
		b.WriteString("\n" + hint.Render("Press Enter or 't' to change theme"))
		return b.String()
	}

	b.WriteString(renderStatLine(m.styles, "theme", "Select a theme"))
	b.WriteString("\n")
	p := m.picker
	end := min(p.offset+pickerRows, len(p.names))
	if p.offset > 0 {
		b.WriteString(hint.Render("  ↑ more themes above") + "\n")
	}
	for i, name := range p.names[p.offset:end] {
		if p.offset+i == p.cursor {
			b.WriteString(m.styles.RecordSelected.Render("▸ " + name))
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(name))
		}
		if name == m.theme {
			b.WriteString(m.styles.Success.Render(" (current)"))
		}
		b.WriteString("\n")
	}
	if end < len(p.names) {
		b.WriteString(hint.Render("  ↓ more themes below") + "\n")
	}
	b.WriteString("\n" + hint.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

func (m *ConfigModel) SetSize(width, height int) {
	m.width, m.height = width, height
}
