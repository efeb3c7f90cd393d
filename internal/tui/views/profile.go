package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/stats"
	"github.com/xolan/lifelog/internal/tui/ui"
)

// ProfileModel shows the overall totals, exports and clears the collection
type ProfileModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width        int
	height       int
	profile      *service.ProfileResult
	confirmClear bool
}

// NewProfileModel creates a new profile view model
func NewProfileModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) ProfileModel {
	return ProfileModel{
		ctx:      ctx,
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

type profileLoadedMsg struct {
	profile service.ProfileResult
}

// clearedMsg is sent when the collection has been cleared
type clearedMsg struct {
	count int
	err   error
}

// Init implements tea.Model
func (m ProfileModel) Init() tea.Cmd {
	return m.loadProfile()
}

// Update implements tea.Model
func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmClear {
			return m.handleConfirmClear(msg)
		}

		switch {
		case key.Matches(msg, m.keys.ExportJSON):
			return m, exportCmd(m.ctx, m.services, export.JSON, stats.All)
		case key.Matches(msg, m.keys.ExportCSV):
			return m, exportCmd(m.ctx, m.services, export.CSV, stats.All)
		case key.Matches(msg, m.keys.ExportZIP):
			return m, exportCmd(m.ctx, m.services, export.ZIP, stats.All)
		case key.Matches(msg, m.keys.Clear):
			if m.profile == nil || m.profile.Summary.TotalRecords == 0 {
				return m, emit(ui.StatusMsg{Text: "Nothing to clear"})
			}
			m.confirmClear = true
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadProfile()
		}

	case profileLoadedMsg:
		p := msg.profile
		m.profile = &p

	case clearedMsg:
		m.confirmClear = false
		if msg.err != nil {
			return m, emit(ui.StatusMsg{Text: fmt.Sprintf("Clear failed: %v", msg.err), Error: true})
		}
		return m, tea.Batch(
			emit(ui.RecordsChangedMsg{}),
			emit(ui.StatusMsg{Text: fmt.Sprintf("Cleared %d %s", msg.count, pluralize("record", msg.count))}),
		)

	case ui.RecordsChangedMsg:
		return m, m.loadProfile()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

func (m ProfileModel) handleConfirmClear(msg tea.KeyMsg) (ProfileModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, m.clear()
	case "n", "N", "esc":
		m.confirmClear = false
	}
	return m, nil
}

// IsInputMode reports whether the clear confirmation is open
func (m ProfileModel) IsInputMode() bool {
	return m.confirmClear
}

// View implements tea.Model
func (m ProfileModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Profile"))
	b.WriteString("\n")

	if m.profile == nil {
		b.WriteString("Loading...")
		return b.String()
	}
	s := m.profile.Summary

	first := s.FirstDate
	if first == "" {
		first = "-"
	}
	b.WriteString(renderStatLine(m.styles, "Total records:", fmt.Sprintf("%d", s.TotalRecords)))
	b.WriteString(renderStatLine(m.styles, "Days recorded:", fmt.Sprintf("%d %s", s.DistinctDays, pluralize("day", s.DistinctDays))))
	b.WriteString(renderStatLine(m.styles, "Average per day:", fmt.Sprintf("%.1f", s.AveragePerDay)))
	b.WriteString(renderStatLine(m.styles, "First record:", first))
	b.WriteString(renderStatLine(m.styles, "Storage:", m.services.Location))
	b.WriteString(renderStatLine(m.styles, "Export folder:", m.services.Export.Dir()))

	b.WriteString("\n")
	b.WriteString(m.styles.ViewTitle.Render("Recent records"))
	b.WriteString("\n")
	if len(m.profile.Recent) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No records yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderRecordList(m.profile.Recent, m.styles, RecordListOptions{Width: m.width, Cursor: -1}))
	}

	if m.confirmClear {
		b.WriteString("\n")
		b.WriteString(m.styles.Dialog.Render(
			m.styles.DialogTitle.Render("Clear all data") + "\n" +
				m.styles.Warning.Render(fmt.Sprintf("Permanently delete all %d %s? This cannot be undone.",
					s.TotalRecords, pluralize("record", s.TotalRecords))) + "\n\n" +
				m.styles.StatLabel.Render("y confirm  n cancel")))
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *ProfileModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m ProfileModel) loadProfile() tea.Cmd {
	return func() tea.Msg {
		return profileLoadedMsg{profile: m.services.Stats.Profile(m.ctx)}
	}
}

func (m ProfileModel) clear() tea.Cmd {
	return func() tea.Msg {
		n, err := m.services.Records.Clear(m.ctx)
		return clearedMsg{count: n, err: err}
	}
}
