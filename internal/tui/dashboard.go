package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck-cli/internal/model"
)

func (m appModel) viewDashboard() string {
	sum, ok := m.vm.Analytics()
	if !ok {
		if m.analyticsBusy {
			return m.spin.View() + " Loading analytics…"
		}
		return styleMuted().Render("Analytics unavailable. Press r to retry.")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Tasks", sum.TotalTasks, colorAccent),
		" ",
		statCard("Completed", sum.CompletedTasks, colorStatusCompleted),
		" ",
		statCard("In Progress", sum.InProgressTasks, colorStatusInProgress),
		" ",
		statCard("To Do", sum.TodoTasks, colorStatusTodo),
	)

	chartW := m.width - 4
	if chartW > 60 {
		chartW = 60
	}
	if chartW < 30 {
		chartW = 30
	}

	statusRows := []chartRow{
		{label: "To Do", value: sum.TodoTasks, color: colorStatusTodo},
		{label: "In Progress", value: sum.InProgressTasks, color: colorStatusInProgress},
		{label: "Completed", value: sum.CompletedTasks, color: colorStatusCompleted},
	}

	var prioRows []chartRow
	for _, p := range sum.TasksByPriority {
		prioRows = append(prioRows, chartRow{
			label: titleCase(string(p.Priority)),
			value: p.Count,
			color: priorityColor(p.Priority),
		})
	}
	if len(prioRows) == 0 {
		for _, p := range model.Priorities() {
			prioRows = append(prioRows, chartRow{label: titleCase(string(p)), value: 0, color: priorityColor(p)})
		}
	}

	section := func(title, body string) string {
		return lipgloss.NewStyle().Bold(true).Render(title) + "\n" + body
	}

	return strings.Join([]string{
		cards,
		"",
		section("Tasks by Status", renderBarChart(statusRows, chartW)),
		"",
		section("Tasks by Priority", renderBarChart(prioRows, chartW)),
	}, "\n")
}

func statCard(title string, value int, color lipgloss.TerminalColor) string {
	body := styleMuted().Render(title) + "\n" +
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(strconv.Itoa(value))
	return lipgloss.NewStyle().
		Width(16).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(body)
}
