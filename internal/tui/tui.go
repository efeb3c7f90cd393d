// Package tui provides the Terminal User Interface for lifelog.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/tui/ui"
	"github.com/xolan/lifelog/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabCreate Tab = iota
	TabStats
	TabProfile
	TabConfig
)

var tabNames = []string{"Create", "Stats", "Profile", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	showHelp  bool
	status    ui.StatusMsg

	createView  views.CreateModel
	statsView   views.StatsModel
	profileView views.ProfileModel
	configView  views.ConfigModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model. ctx bounds every storage call the views make.
func New(ctx context.Context, services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabCreate,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		createView:    views.NewCreateModel(ctx, services, styles, keys),
		statsView:     views.NewStatsModel(ctx, services, styles, keys),
		profileView:   views.NewProfileModel(ctx, services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.createView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ui.StatusMsg{}

		// A modal view (open form or confirmation) receives every key
		if !m.isModalInputMode() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit

			case key.Matches(msg, m.keys.Help):
				m.showHelp = !m.showHelp
				return m, nil

			case key.Matches(msg, m.keys.NextTab):
				return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

			case key.Matches(msg, m.keys.PrevTab):
				return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

			case key.Matches(msg, m.keys.Tab1):
				return m.switchTab(TabCreate)

			case key.Matches(msg, m.keys.Tab2):
				return m.switchTab(TabStats)

			case key.Matches(msg, m.keys.Tab3):
				return m.switchTab(TabProfile)

			case key.Matches(msg, m.keys.Tab4):
				return m.switchTab(TabConfig)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.createView.SetSize(m.width, contentHeight)
		m.statsView.SetSize(m.width, contentHeight)
		m.profileView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.StatusMsg:
		m.status = msg
		return m, nil

	case ui.RecordsChangedMsg:
		// Every view showing records reloads, not just the active one
		var cmds [3]tea.Cmd
		m.createView, cmds[0] = m.createView.Update(msg)
		m.statsView, cmds[1] = m.statsView.Update(msg)
		m.profileView, cmds[2] = m.profileView.Update(msg)
		return m, tea.Batch(cmds[:]...)

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.createView, _ = m.createView.Update(themeMsg)
		m.statsView, _ = m.statsView.Update(themeMsg)
		m.profileView, _ = m.profileView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)
	}

	// Update the active view
	switch m.activeTab {
	case TabCreate:
		m.createView, cmd = m.createView.Update(msg)
	case TabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case TabProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	return m, cmd
}

func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.activeTab = t
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabCreate:
		b.WriteString(m.createView.View())
	case TabStats:
		b.WriteString(m.statsView.View())
	case TabProfile:
		b.WriteString(m.profileView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the last notice, or the key hints for the active view
func (m Model) renderStatusBar() string {
	var content string
	switch {
	case m.status.Text != "" && m.status.Error:
		content = m.styles.Error.Render(m.status.Text)
	case m.status.Text != "":
		content = m.styles.Success.Render(m.status.Text)
	default:
		content = strings.Join(m.keyHints(), "  ")
	}

	// Fill to width
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

func (m Model) keyHints() []string {
	var parts []string

	if m.isModalInputMode() {
		if m.activeTab == TabCreate && !m.createView.IsConfirming() {
			return []string{
				m.renderKeyHelp("Tab", "next field"),
				m.renderKeyHelp("←/→", "category"),
				m.renderKeyHelp("Enter/Ctrl+S", "save"),
				m.renderKeyHelp("Esc", "cancel"),
			}
		}
		return []string{
			m.renderKeyHelp("y", "confirm"),
			m.renderKeyHelp("n", "cancel"),
		}
	}

	switch m.activeTab {
	case TabCreate:
		parts = append(parts,
			m.renderKeyHelp("n", "new"),
			m.renderKeyHelp("e", "edit"),
			m.renderKeyHelp("d", "delete"),
			m.renderKeyHelp("Enter", "details"))
	case TabStats:
		parts = append(parts,
			m.renderKeyHelp("w/m/y", "range"),
			m.renderKeyHelp("p", "export pdf"))
	case TabProfile:
		parts = append(parts,
			m.renderKeyHelp("J/C/Z", "export"),
			m.renderKeyHelp("X", "clear all"))
	case TabConfig:
		parts = append(parts, m.renderKeyHelp("t", "themes"))
	}

	return append(parts,
		m.renderKeyHelp("1-4", "views"),
		m.renderKeyHelp("?", "help"),
		m.renderKeyHelp("q", "quit"))
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode reports whether the active view owns the keyboard:
// an open form, a confirmation or the theme selector
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabCreate:
		return m.createView.IsInputMode()
	case TabProfile:
		return m.profileView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelecting()
	}
	return false
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabCreate:
		return m.createView.Init()
	case TabStats:
		return m.statsView.Init()
	case TabProfile:
		return m.profileView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.SetTheme(themeName); err != nil {
			return ui.StatusMsg{Text: fmt.Sprintf("Theme not saved: %v", err), Error: true}
		}
		return ui.StatusMsg{Text: "Theme: " + themeName}
	}
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n")

	help.WriteString(m.styles.StatValue.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabCreate:
		help.WriteString(m.styles.StatValue.Render("Create:"))
		help.WriteString("\n")
		help.WriteString("  n          New record\n")
		help.WriteString("  j/k        Navigate recent records\n")
		help.WriteString("  Enter      Show details\n")
		help.WriteString("  e          Edit record\n")
		help.WriteString("  d          Delete record\n")
		help.WriteString("  In the form: Tab moves between fields,\n")
		help.WriteString("  ←/→ picks the category, Ctrl+S saves\n")
	case TabStats:
		help.WriteString(m.styles.StatValue.Render("Stats:"))
		help.WriteString("\n")
		help.WriteString("  w/m/y      This week/month/year\n")
		help.WriteString("  p          Export this view as PDF\n")
		help.WriteString("  r          Refresh\n")
	case TabProfile:
		help.WriteString(m.styles.StatValue.Render("Profile:"))
		help.WriteString("\n")
		help.WriteString("  J          Export JSON\n")
		help.WriteString("  C          Export CSV\n")
		help.WriteString("  Z          Export ZIP\n")
		help.WriteString("  X          Clear all data\n")
	case TabConfig:
		help.WriteString(m.styles.StatValue.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, services *service.Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
