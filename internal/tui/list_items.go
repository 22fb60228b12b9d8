package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskdeck-cli/internal/model"
)

type taskItem struct {
	task model.Task
	// mine marks tasks the current identity may edit/delete (creator or admin).
	mine bool
}

func (i taskItem) FilterValue() string { return i.task.Title }
func (i taskItem) Title() string       { return i.task.Title }

func (i taskItem) Description() string {
	parts := []string{statusBadge(i.task.Status), priorityBadge(i.task.Priority)}
	if i.task.AssignedTo != nil {
		parts = append(parts, "@"+i.task.AssignedTo.Name)
	}
	if d := i.task.DueDateOnly(); d != "" {
		parts = append(parts, "due "+d)
	}
	return strings.Join(parts, "  ")
}

type taskDelegate struct {
	title    lipgloss.Style
	meta     lipgloss.Style
	selected lipgloss.Style
}

func newTaskDelegate() taskDelegate {
	return taskDelegate{
		title:    lipgloss.NewStyle(),
		meta:     styleMuted(),
		selected: lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
	}
}

func (d taskDelegate) Height() int                             { return 2 }
func (d taskDelegate) Spacing() int                            { return 1 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	title := it.task.Title
	if !it.mine {
		title += " " + styleMuted().Render("(read-only)")
	}
	titleLine := fitLine(title, contentW)
	metaLine := fitLine(it.Description(), contentW)

	if index == m.Index() {
		fmt.Fprint(w, d.selected.Render(titleLine)+"\n"+d.meta.Render(metaLine))
		return
	}
	fmt.Fprint(w, d.title.Render(titleLine)+"\n"+d.meta.Render(metaLine))
}

// fitLine pads or truncates a possibly-styled line to exactly w cells.
func fitLine(line string, w int) string {
	lw := xansi.StringWidth(line)
	if lw < w {
		return line + strings.Repeat(" ", w-lw)
	}
	if lw > w {
		return xansi.Cut(line, 0, w)
	}
	return line
}

func newTaskList() list.Model {
	l := list.New([]list.Item{}, newTaskDelegate(), 0, 0)
	l.Title = "Tasks"
	l.SetShowHelp(false)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	return l
}
