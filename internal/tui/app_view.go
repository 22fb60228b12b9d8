package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.page == pageAuth {
		return m.viewAuth()
	}

	switch m.modal {
	case modalEditor:
		return placeCentered(m.width, m.height, m.renderEditorModal())
	case modalConfirmDelete:
		body := "Are you sure you want to delete this task?"
		return placeCentered(m.width, m.height, renderConfirmModal(m.width, "Delete task", body, "Delete", "Cancel", m.confirmFocus))
	}

	var body string
	switch m.page {
	case pageDashboard:
		body = m.viewDashboard()
	case pageTasks:
		body = m.viewTasks()
	}

	return strings.Join([]string{m.header(), body, m.footer()}, "\n\n")
}

func (m appModel) header() string {
	brand := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Taskdeck")

	tab := func(label string, active bool) string {
		st := lipgloss.NewStyle().Padding(0, 1)
		if active {
			st = st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
		}
		return st.Render(label)
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		tab("1 Dashboard", m.page == pageDashboard),
		" ",
		tab("2 Tasks", m.page == pageTasks),
	)

	id := m.identity()
	who := styleMuted().Render(id.Name + " (" + string(id.Role) + ")")

	return lipgloss.JoinHorizontal(lipgloss.Top, brand, "   ", tabs, "   ", who)
}

func (m appModel) footer() string {
	var help string
	switch m.page {
	case pageDashboard:
		help = "1/2: pages  r: refresh  L: logout  q: quit"
	case pageTasks:
		help = "n: new  e/enter: edit  d: delete  f: filter  /: search  r: refresh  1/2: pages  L: logout  q: quit"
	}
	line := styleMuted().Render(help)
	if m.statusMsg != "" {
		line = styleError().Render(m.statusMsg) + "  " + line
	}
	return line
}
