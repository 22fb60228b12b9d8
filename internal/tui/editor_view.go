package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck-cli/internal/model"
)

func (m appModel) renderEditorModal() string {
	title := "Create new task"
	saveLabel := "Create"
	if m.editingID != "" {
		title = "Edit task"
		saveLabel = "Save"
	}

	label := func(text string, f editorFocus) string {
		if m.editorFocus == f {
			return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(text)
		}
		return styleMuted().Render(text)
	}
	sel := func(value string, f editorFocus) string {
		if m.editorFocus == f {
			return "◀ " + value + " ▶"
		}
		return "  " + value
	}

	assignee := "Unassigned"
	if m.assigneeIdx > 0 && m.assigneeIdx <= len(m.vm.Users()) {
		u := m.vm.Users()[m.assigneeIdx-1]
		assignee = u.Name
		if u.Email != "" {
			assignee += " (" + u.Email + ")"
		}
	} else if m.assigneeID != "" {
		// Assignee kept from the task itself; the directory doesn't list it.
		assignee = m.assigneeName
		if assignee == "" {
			assignee = m.assigneeID
		}
	}

	rows := []string{
		label("Title", editorFocusTitle),
		m.titleInput.View(),
		"",
		label("Description", editorFocusDescription),
		m.descInput.View(),
		"",
		label("Status", editorFocusStatus),
		sel(string(model.Statuses()[m.statusIdx]), editorFocusStatus),
		"",
		label("Priority", editorFocusPriority),
		sel(string(model.Priorities()[m.priorityIdx]), editorFocusPriority),
		"",
		label("Assign to", editorFocusAssignee),
		sel(assignee, editorFocusAssignee),
		"",
		label("Due date", editorFocusDue),
		m.dueInput.View(),
		"",
	}

	btn := func(text string, f editorFocus) string {
		st := lipgloss.NewStyle().Padding(0, 2).Background(colorControlBg).Foreground(colorSurfaceFg)
		if m.editorFocus == f {
			st = st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
		}
		return st.Render(text)
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
		btn(saveLabel, editorFocusSave), "  ", btn("Cancel", editorFocusCancel)))

	if m.statusMsg != "" {
		rows = append(rows, "", styleError().Render(m.statusMsg))
	}
	rows = append(rows, "", styleMuted().Render("tab: next field  ←/→: choose  ctrl+s: save  esc: cancel"))

	return renderModalBox(m.width, title, strings.Join(rows, "\n"))
}
