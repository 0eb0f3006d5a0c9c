package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"people-directory/domain/viewmodel"
)

func (m Model) View() string {
	st := stylesFor(m.view.Mode.Dark)
	var b strings.Builder

	b.WriteString(st.Title.Render(fmt.Sprintf("People Directory  (%d of %d)", len(m.view.Rows), m.view.Total)))
	b.WriteString("\n")

	if m.focus == focusSearch {
		b.WriteString(m.search.View())
	} else if m.view.Search != "" {
		b.WriteString(st.Muted.Render("search: " + m.view.Search))
	} else {
		b.WriteString(st.Muted.Render("press / to search"))
	}
	b.WriteString("\n\n")

	if len(m.view.Rows) == 0 {
		b.WriteString(st.Muted.Render("No records"))
		b.WriteString("\n")
	}
	for i, row := range m.view.Rows {
		b.WriteString(m.renderRow(st, row, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus(st))
	return b.String()
}

func (m Model) renderRow(st Styles, row viewmodel.RowView, selected bool) string {
	marker := "  "
	name := st.Row.Render(row.Name)
	if selected {
		marker = st.Cursor.Render("> ")
		name = st.Cursor.Render(row.Name)
	}
	expander := "▾"
	if row.Open {
		expander = "▴"
	}
	line := fmt.Sprintf("%s%s %s", marker, expander, name)
	if row.Details == nil {
		return line
	}
	return line + "\n" + m.renderDetails(st, row.Details)
}

func (m Model) renderDetails(st Styles, d *viewmodel.DetailsView) string {
	age := "unknown"
	if d.Age != nil {
		age = fmt.Sprintf("%d", *d.Age)
	}

	if d.Mode == viewmodel.PaneEdit {
		lines := []string{
			m.field(st, "Age", st.Muted.Render(age), false),
			m.field(st, "Gender", renderGenderOptions(st, d.GenderOptions), m.isEditing(viewmodel.FieldGender)),
			m.editableField(st, "Country", d.Country, viewmodel.FieldCountry),
			m.editableField(st, "Description", d.Description, viewmodel.FieldDescription),
		}
		actions := "[esc] cancel"
		if d.CanSave {
			actions = "[ctrl+s] save  " + actions
		}
		lines = append(lines, st.Muted.Render(actions))
		return st.Pane.Render(strings.Join(lines, "\n"))
	}

	lines := []string{
		m.field(st, "Age", st.Value.Render(age), false),
		m.field(st, "Gender", st.Value.Render(d.Gender.Label()), false),
		m.field(st, "Country", st.Value.Render(d.Country), false),
		m.field(st, "Description", st.Value.Render(d.Description), false),
	}
	var actions []string
	if d.CanEdit {
		actions = append(actions, "[e] edit")
	}
	if d.CanDelete {
		actions = append(actions, "[d] delete")
	}
	if len(actions) > 0 {
		lines = append(lines, st.Muted.Render(strings.Join(actions, "  ")))
	}
	return st.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) isEditing(field viewmodel.Field) bool {
	return m.focus == focusEdit && editFields[m.editField] == field
}

func (m Model) field(st Styles, label, value string, active bool) string {
	l := st.Label.Render(label)
	if active {
		l = st.Active.Render(label)
		l = lipgloss.NewStyle().Width(13).Render(l)
	}
	return l + value
}

func (m Model) editableField(st Styles, label, value string, field viewmodel.Field) string {
	if m.isEditing(field) {
		return m.field(st, label, m.editInput.View(), true)
	}
	return m.field(st, label, st.Value.Render(value), false)
}

func renderGenderOptions(st Styles, options []viewmodel.GenderOption) string {
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		if opt.Selected {
			parts = append(parts, st.Cursor.Render("("+opt.Label+")"))
		} else {
			parts = append(parts, st.Muted.Render(opt.Label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderStatus(st Styles) string {
	switch {
	case m.focus == focusConfirmDelete:
		name := ""
		for _, row := range m.view.Rows {
			if row.ID == m.pendingDelete {
				name = row.Name
			}
		}
		return st.Confirm.Render(fmt.Sprintf("Delete %s? (y/n)", name))
	case m.err != nil:
		return st.Error.Render(m.err.Error())
	case m.status != "":
		return st.StatusBar.Render(m.status)
	}
	return st.StatusBar.Render(fmt.Sprintf("↑/↓ move  enter open  m %s  q quit", strings.ToLower(m.view.Mode.Label)))
}
