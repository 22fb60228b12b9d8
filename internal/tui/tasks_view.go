package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/taskview"
)

func (m appModel) viewTasks() string {
	bodyHeight := m.height - 7
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	leftWidth := m.width / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := m.width - leftWidth - 2
	if rightWidth < 30 {
		rightWidth = 30
	}

	left := strings.Join([]string{m.filterBar(), m.taskList.View()}, "\n")

	var detail string
	if it, ok := m.taskList.SelectedItem().(taskItem); ok {
		detail = renderTaskDetail(it.task, rightWidth, bodyHeight)
	} else {
		detail = lipgloss.NewStyle().Width(rightWidth).Render(styleMuted().Render("No task selected."))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", detail)
}

func (m appModel) filterBar() string {
	var parts []string
	for i, f := range taskview.Filters() {
		label := titleCase(strings.ReplaceAll(string(f), "-", " "))
		st := lipgloss.NewStyle().Padding(0, 1)
		if i == m.filterIdx {
			st = st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
		} else {
			st = st.Foreground(colorMuted)
		}
		parts = append(parts, st.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderTaskDetail(t model.Task, width, height int) string {
	var rows []string

	rows = append(rows, lipgloss.NewStyle().Bold(true).Width(width).Render(t.Title))
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, statusBadge(t.Status), "  ", priorityBadge(t.Priority)))
	rows = append(rows, "")

	meta := func(label, value string) string {
		return styleMuted().Render(label+": ") + value
	}
	if t.AssignedTo != nil {
		rows = append(rows, meta("Assigned to", t.AssignedTo.Name))
	} else {
		rows = append(rows, meta("Assigned to", "—"))
	}
	if d := t.DueDateOnly(); d != "" {
		rows = append(rows, meta("Due", d))
	}
	rows = append(rows, meta("Created by", t.CreatedBy.Name))
	if !t.CreatedAt.IsZero() {
		rows = append(rows, meta("Created", t.CreatedAt.Format("2006-01-02")))
	}

	if strings.TrimSpace(t.Description) != "" {
		rows = append(rows, "", renderMarkdown(t.Description, width-2))
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(strings.Join(rows, "\n"))
}
