package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/tui/ui"
)

// createMode represents the current mode of the create view
type createMode int

const (
	createModeBrowse createMode = iota
	createModeForm
	createModeDetail
	createModeDelete
)

// Form fields in tab order
const (
	fieldTitle = iota
	fieldDate
	fieldTime
	fieldLocation
	fieldCategory
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Date", "Time", "Location", "Category", "Description"}

// CreateModel is the record form plus the list of recent records
type CreateModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	recent []record.Record
	cursor int
	loaded bool

	mode      createMode
	editingID string // empty while creating
	focused   int
	formErr   error

	// title, date, time and location
	inputs      [fieldLocation + 1]textinput.Model
	categories  []record.Category
	category    int
	description textarea.Model
}

// NewCreateModel creates the create view model
func NewCreateModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) CreateModel {
	m := CreateModel{
		ctx:        ctx,
		services:   services,
		styles:     styles,
		keys:       keys,
		categories: record.Categories(),
	}

	placeholders := [fieldLocation + 1]string{
		"What happened?",
		"YYYY-MM-DD",
		"HH:MM",
		"Where? (optional)",
	}
	limits := [fieldLocation + 1]int{100, 10, 5, 100}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 40
		m.inputs[i] = in
	}

	m.description = textarea.New()
	m.description.Placeholder = "Details (optional)"
	m.description.ShowLineNumbers = false
	m.description.SetWidth(50)
	m.description.SetHeight(4)

	return m
}

// recentLoadedMsg is sent when the recent records are loaded
type recentLoadedMsg struct {
	records []record.Record
}

// recordSavedMsg is sent when a create or edit finishes
type recordSavedMsg struct {
	record  record.Record
	created bool
	err     error
}

// recordDeletedMsg is sent when a delete finishes
type recordDeletedMsg struct {
	record record.Record
	err    error
}

// Init implements tea.Model
func (m CreateModel) Init() tea.Cmd {
	return m.loadRecent()
}

// Update implements tea.Model
func (m CreateModel) Update(msg tea.Msg) (CreateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case createModeForm:
			return m.handleFormMode(msg)
		case createModeDelete:
			return m.handleDeleteMode(msg)
		case createModeDetail:
			if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
				m.mode = createModeBrowse
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.recent)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if m.selected() != nil {
				m.mode = createModeDetail
			}
		case key.Matches(msg, m.keys.New):
			return m.openForm(m.services.Records.NewDraft(), "")
		case key.Matches(msg, m.keys.Edit):
			if r := m.selected(); r != nil {
				return m.openForm(r.Draft(), r.ID)
			}
		case key.Matches(msg, m.keys.Delete):
			if m.selected() != nil {
				m.mode = createModeDelete
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadRecent()
		}
		return m, nil

	case recentLoadedMsg:
		m.loaded = true
		m.recent = msg.records
		if m.cursor >= len(m.recent) {
			m.cursor = max(0, len(m.recent)-1)
		}
		return m, nil

	case recordSavedMsg:
		if msg.err != nil {
			m.formErr = msg.err
			return m, nil
		}
		m.mode = createModeBrowse
		m.blurAll()
		verb := "Updated"
		if msg.created {
			verb = "Saved"
			m.cursor = 0
		}
		return m, tea.Batch(
			emit(ui.RecordsChangedMsg{}),
			emit(ui.StatusMsg{Text: fmt.Sprintf("%s: %s", verb, msg.record.Title)}),
		)

	case recordDeletedMsg:
		m.mode = createModeBrowse
		if msg.err != nil {
			return m, emit(ui.StatusMsg{Text: fmt.Sprintf("Delete failed: %v", msg.err), Error: true})
		}
		return m, tea.Batch(
			emit(ui.RecordsChangedMsg{}),
			emit(ui.StatusMsg{Text: "Deleted: " + msg.record.Title}),
		)

	case ui.RecordsChangedMsg:
		return m, m.loadRecent()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	// Keep the cursor blinking in the focused field
	if m.mode == createModeForm {
		return m.updateFocused(msg)
	}
	return m, nil
}

func (m CreateModel) selected() *record.Record {
	if m.cursor < 0 || m.cursor >= len(m.recent) {
		return nil
	}
	return &m.recent[m.cursor]
}

// openForm fills the form from d and switches to form mode
func (m CreateModel) openForm(d record.Draft, id string) (CreateModel, tea.Cmd) {
	values := [fieldLocation + 1]string{d.Title, d.Date, d.Time, d.Location}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
	m.description.SetValue(d.Description)

	m.category = 0
	for i, c := range m.categories {
		if c == d.Category {
			m.category = i
			break
		}
	}

	m.mode = createModeForm
	m.editingID = id
	m.formErr = nil
	m.focused = fieldTitle
	cmd := m.focus()
	return m, cmd
}

func (m *CreateModel) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.description.Blur()
}

// focus moves the cursor to the focused field
func (m *CreateModel) focus() tea.Cmd {
	m.blurAll()
	switch {
	case m.focused < len(m.inputs):
		return m.inputs[m.focused].Focus()
	case m.focused == fieldDescription:
		return m.description.Focus()
	}
	return nil
}

// draft collects the form values
func (m CreateModel) draft() record.Draft {
	return record.Draft{
		Title:       m.inputs[fieldTitle].Value(),
		Date:        m.inputs[fieldDate].Value(),
		Time:        m.inputs[fieldTime].Value(),
		Location:    m.inputs[fieldLocation].Value(),
		Category:    m.categories[m.category],
		Description: m.description.Value(),
	}
}

// handleFormMode handles key events while the form is open
func (m CreateModel) handleFormMode(msg tea.KeyMsg) (CreateModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = createModeBrowse
		m.blurAll()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.save(m.draft(), m.editingID)
	case key.Matches(msg, m.keys.Select) && m.focused != fieldDescription:
		return m, m.save(m.draft(), m.editingID)
	case key.Matches(msg, m.keys.NextField):
		m.focused = (m.focused + 1) % fieldCount
		cmd := m.focus()
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
		cmd := m.focus()
		return m, cmd
	case m.focused == fieldCategory && key.Matches(msg, m.keys.Left):
		m.category = (m.category - 1 + len(m.categories)) % len(m.categories)
		return m, nil
	case m.focused == fieldCategory && key.Matches(msg, m.keys.Right):
		m.category = (m.category + 1) % len(m.categories)
		return m, nil
	}
	return m.updateFocused(msg)
}

// updateFocused passes msg to the focused field
func (m CreateModel) updateFocused(msg tea.Msg) (CreateModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focused < len(m.inputs):
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	case m.focused == fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m CreateModel) handleDeleteMode(msg tea.KeyMsg) (CreateModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if r := m.selected(); r != nil {
			return m, m.delete(r.ID)
		}
		m.mode = createModeBrowse
	case "n", "N", "esc":
		m.mode = createModeBrowse
	}
	return m, nil
}

// IsInputMode reports whether the view is capturing keystrokes
func (m CreateModel) IsInputMode() bool {
	return m.mode == createModeForm || m.mode == createModeDelete
}

// IsConfirming reports whether the delete confirmation is open
func (m CreateModel) IsConfirming() bool {
	return m.mode == createModeDelete
}

// View implements tea.Model
func (m CreateModel) View() string {
	switch m.mode {
	case createModeForm:
		return m.viewForm()
	case createModeDetail:
		if r := m.selected(); r != nil {
			return m.styles.Dialog.Render(
				m.styles.DialogTitle.Render(r.Title) + "\n" + cli.FormatRecordDetail(*r))
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Recent records"))
	b.WriteString("\n")

	switch {
	case !m.loaded:
		b.WriteString("Loading...")
	case len(m.recent) == 0:
		b.WriteString(m.styles.StatLabel.Render("No records yet. Press n to write one."))
	default:
		b.WriteString(RenderRecordList(m.recent, m.styles, RecordListOptions{Width: m.width, Cursor: m.cursor}))
	}

	if m.mode == createModeDelete {
		if r := m.selected(); r != nil {
			b.WriteString("\n")
			b.WriteString(m.styles.Dialog.Render(
				m.styles.DialogTitle.Render("Delete this record?") + "\n" +
					r.Title + "\n\n" +
					m.styles.StatLabel.Render("y confirm  n cancel")))
		}
	}
	return b.String()
}

func (m CreateModel) viewForm() string {
	var b strings.Builder

	title := "New record"
	if m.editingID != "" {
		title = "Edit record " + m.editingID
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	for i := 0; i < fieldCount; i++ {
		label := m.styles.FieldLabel
		if i == m.focused {
			label = m.styles.FieldLabelFocused
		}
		b.WriteString(label.Render(fieldLabels[i]))

		switch {
		case i < len(m.inputs):
			b.WriteString(m.inputs[i].View())
		case i == fieldCategory:
			c := m.categories[m.category]
			b.WriteString(fmt.Sprintf("◀ %s ▶", m.styles.RecordCategory.Render(cli.FormatCategory(c))))
		case i == fieldDescription:
			b.WriteString("\n")
			b.WriteString(m.description.View())
		}
		b.WriteString("\n")
	}

	if m.formErr != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(formError(m.formErr)))
		b.WriteString("\n")
	}
	return b.String()
}

// formError turns a save failure into a message for the form
func formError(err error) string {
	switch {
	case errors.Is(err, record.ErrEmptyTitle):
		return "Title is required"
	case errors.Is(err, service.ErrBusy):
		return "Another save is still running, try again"
	}
	return err.Error()
}

// SetSize sets the view dimensions
func (m *CreateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.description.SetWidth(min(60, max(20, width-20)))
}

// loadRecent creates a command to load the recent records
func (m CreateModel) loadRecent() tea.Cmd {
	return func() tea.Msg {
		return recentLoadedMsg{records: m.services.Records.Recent(m.ctx, service.RecentLimit)}
	}
}

func (m CreateModel) save(d record.Draft, id string) tea.Cmd {
	return func() tea.Msg {
		if id == "" {
			r, err := m.services.Records.Create(m.ctx, d)
			return recordSavedMsg{record: r, created: true, err: err}
		}
		r, err := m.services.Records.Replace(m.ctx, id, d)
		return recordSavedMsg{record: r, err: err}
	}
}

func (m CreateModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		r, err := m.services.Records.Delete(m.ctx, id)
		return recordDeletedMsg{record: r, err: err}
	}
}
