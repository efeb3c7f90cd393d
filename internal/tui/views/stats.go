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

const (
	categoryBarWidth = 24
	trendBarWidth    = 20
)

var statsRanges = []struct {
	tr  stats.TimeRange
	key string
}{
	{stats.Week, "w"},
	{stats.Month, "m"},
	{stats.Year, "y"},
}

// StatsModel is the model for the statistics view
type StatsModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width     int
	height    int
	timeRange stats.TimeRange
	dashboard *stats.Dashboard
}

// NewStatsModel creates a new stats view model showing the current week
func NewStatsModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) StatsModel {
	return StatsModel{
		ctx:       ctx,
		services:  services,
		styles:    styles,
		keys:      keys,
		timeRange: stats.Week,
	}
}

// dashboardLoadedMsg is sent when the dashboard is computed
type dashboardLoadedMsg struct {
	dashboard stats.Dashboard
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return m.loadDashboard()
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Week):
			m.timeRange = stats.Week
			return m, m.loadDashboard()
		case key.Matches(msg, m.keys.Month):
			m.timeRange = stats.Month
			return m, m.loadDashboard()
		case key.Matches(msg, m.keys.Year):
			m.timeRange = stats.Year
			return m, m.loadDashboard()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadDashboard()
		case key.Matches(msg, m.keys.ExportPDF):
			return m, exportCmd(m.ctx, m.services, export.PDF, m.timeRange)
		}

	case dashboardLoadedMsg:
		// Drop results for a range the user already switched away from
		if msg.dashboard.Range == m.timeRange {
			d := msg.dashboard
			m.dashboard = &d
		}

	case ui.RecordsChangedMsg:
		return m, m.loadDashboard()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Statistics for " + m.timeRange.Label()))
	b.WriteString("\n")
	b.WriteString(m.renderRangeSelector())
	b.WriteString("\n\n")

	if m.dashboard == nil {
		b.WriteString("Loading...")
		return b.String()
	}
	d := m.dashboard

	b.WriteString(renderStatLine(m.styles, "Records:", fmt.Sprintf("%d", d.Categories.Total)))
	b.WriteString(renderStatLine(m.styles, "Categories:", fmt.Sprintf("%d", d.Categories.Distinct)))

	b.WriteString("\n")
	b.WriteString(m.styles.ViewTitle.Render("By category"))
	b.WriteString("\n")
	if d.Categories.Total == 0 {
		b.WriteString(m.styles.StatLabel.Render("No records in this range"))
		b.WriteString("\n")
	}
	for _, c := range d.Categories.Items {
		fmt.Fprintf(&b, "  %s %s %4d %5.1f%%\n",
			m.styles.RecordCategory.Render(padRight(c.Category.Label(), 8)),
			renderBar(m.styles, c.Bar, categoryBarWidth),
			c.Count, c.Percent)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ViewTitle.Render("Top locations"))
	b.WriteString("\n")
	if len(d.Locations) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No locations yet"))
		b.WriteString("\n")
	}
	for i, l := range d.Locations {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1,
			m.styles.RecordLocation.Render(l.Location),
			m.styles.StatLabel.Render(fmt.Sprintf("(%d)", l.Count)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ViewTitle.Render("Last 7 days"))
	b.WriteString("\n")
	for _, day := range d.Trend {
		fmt.Fprintf(&b, "  %s %s %d\n",
			m.styles.RecordDate.UnsetWidth().Render(day.Date.Format("01-02 Mon")),
			renderBar(m.styles, day.Height, trendBarWidth),
			day.Count)
	}

	return b.String()
}

func (m StatsModel) renderRangeSelector() string {
	parts := make([]string, 0, len(statsRanges))
	for _, r := range statsRanges {
		label := fmt.Sprintf("[%s] %s", r.key, r.tr)
		if r.tr == m.timeRange {
			parts = append(parts, m.styles.TabActive.UnsetPadding().Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.UnsetPadding().Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadDashboard creates a command to compute the dashboard for the current range
func (m StatsModel) loadDashboard() tea.Cmd {
	tr := m.timeRange
	return func() tea.Msg {
		return dashboardLoadedMsg{dashboard: m.services.Stats.Dashboard(m.ctx, tr)}
	}
}
