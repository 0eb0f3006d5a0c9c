package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"people-directory/domain/services"
	"people-directory/domain/viewmodel"
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusEdit
	focusConfirmDelete
)

// editable fields in tab order
var editFields = []viewmodel.Field{
	viewmodel.FieldGender,
	viewmodel.FieldCountry,
	viewmodel.FieldDescription,
}

type seededMsg struct{}

// Model is a bubbletea front end over one directory session.
type Model struct {
	svc       services.DirectoryService
	sessionID uuid.UUID

	view   viewmodel.View
	cursor int
	focus  focus

	search    textinput.Model
	editInput textinput.Model
	editField int

	pendingDelete int
	status        string
	err           error

	width  int
	height int
}

// NewModel opens a session on svc.
func NewModel(svc services.DirectoryService) Model {
	id, view := svc.OpenSession(context.Background())

	search := textinput.New()
	search.Placeholder = "Search by name..."
	search.Prompt = "/ "

	edit := textinput.New()
	edit.Prompt = ""

	return Model{
		svc:       svc,
		sessionID: id,
		view:      view,
		search:    search,
		editInput: edit,
	}
}

func (m Model) Init() tea.Cmd {
	seeded := m.svc.Seeded()
	return func() tea.Msg {
		<-seeded
		return seededMsg{}
	}
}

// dispatch applies one intent and keeps the returned view, which is the
// unchanged view when the intent was rejected.
func (m *Model) dispatch(intent viewmodel.Intent) bool {
	view, err := m.svc.Dispatch(context.Background(), m.sessionID, intent)
	if view.Rows != nil {
		m.view = view
	}
	m.err = err
	m.clampCursor()
	return err == nil
}

func (m *Model) refresh() {
	view, err := m.svc.View(m.sessionID)
	if err != nil {
		m.err = err
		return
	}
	m.view = view
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Rows) {
		m.cursor = len(m.view.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) current() (viewmodel.RowView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return viewmodel.RowView{}, false
	}
	return m.view.Rows[m.cursor], true
}

// editing returns the row whose pane is in edit mode.
func (m Model) editing() (viewmodel.RowView, bool) {
	for _, row := range m.view.Rows {
		if row.Details != nil && row.Details.Mode == viewmodel.PaneEdit {
			return row, true
		}
	}
	return viewmodel.RowView{}, false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case seededMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusEdit:
			return m.updateEdit(msg)
		case focusConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}

	case "/":
		m.focus = focusSearch
		m.search.SetValue(m.view.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case "enter", " ":
		if row, ok := m.current(); ok {
			m.dispatch(viewmodel.ToggleOpen{ID: row.ID})
		}

	case "m":
		m.dispatch(viewmodel.ToggleMode{})

	case "e":
		row, ok := m.current()
		if !ok || row.Details == nil || !row.Details.CanEdit {
			m.status = "Open an adult's record to edit it"
			return m, nil
		}
		if m.dispatch(viewmodel.StartEdit{ID: row.ID}) {
			m.focus = focusEdit
			m.editField = 0
			cmd := m.loadEditField()
			return m, cmd
		}

	case "d":
		row, ok := m.current()
		if !ok || row.Details == nil || !row.Details.CanDelete {
			m.status = "Open a record to delete it"
			return m, nil
		}
		m.pendingDelete = row.ID
		m.focus = focusConfirmDelete
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.focus = focusList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.Search {
		m.dispatch(viewmodel.SetSearch{Term: m.search.Value()})
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.dispatch(viewmodel.Delete{ID: m.pendingDelete, Confirmed: true}) {
			m.status = "Record deleted"
		}
	case "n", "N", "esc":
		m.dispatch(viewmodel.Delete{ID: m.pendingDelete, Confirmed: false})
	default:
		return m, nil
	}
	m.pendingDelete = 0
	m.focus = focusList
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dispatch(viewmodel.Cancel{})
		m.leaveEdit()
		return m, nil

	case tea.KeyCtrlS:
		if m.dispatch(viewmodel.Save{}) {
			m.status = "Saved"
			m.leaveEdit()
		}
		return m, nil

	case tea.KeyTab:
		m.editField = (m.editField + 1) % len(editFields)
		cmd := m.loadEditField()
		return m, cmd

	case tea.KeyShiftTab:
		m.editField = (m.editField + len(editFields) - 1) % len(editFields)
		cmd := m.loadEditField()
		return m, cmd
	}

	if editFields[m.editField] == viewmodel.FieldGender {
		switch msg.String() {
		case "left", "h":
			m.cycleGender(-1)
		case "right", "l", " ":
			m.cycleGender(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.dispatch(viewmodel.ChangeField{Field: editFields[m.editField], Value: m.editInput.Value()})
	return m, cmd
}

func (m *Model) leaveEdit() {
	m.focus = focusList
	m.editInput.Blur()
}

func (m *Model) loadEditField() tea.Cmd {
	row, ok := m.editing()
	if !ok {
		m.leaveEdit()
		return nil
	}
	switch editFields[m.editField] {
	case viewmodel.FieldCountry:
		m.editInput.SetValue(row.Details.Country)
	case viewmodel.FieldDescription:
		m.editInput.SetValue(row.Details.Description)
	default:
		m.editInput.Blur()
		return nil
	}
	m.editInput.CursorEnd()
	return m.editInput.Focus()
}

func (m *Model) cycleGender(step int) {
	row, ok := m.editing()
	if !ok || len(row.Details.GenderOptions) == 0 {
		return
	}
	options := row.Details.GenderOptions
	idx := 0
	for i, opt := range options {
		if opt.Selected {
			idx = i
			break
		}
	}
	next := options[(idx+step+len(options))%len(options)]
	m.dispatch(viewmodel.ChangeField{Field: viewmodel.FieldGender, Value: string(next.Value)})
}

// Close ends the session.
func (m Model) Close() {
	m.svc.CloseSession(m.sessionID)
}
