// Package tui is the interactive terminal frontend: login/signup forms, an
// analytics dashboard, and a filterable task list with a modal editor.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskdeck-cli/internal/session"
	"taskdeck-cli/internal/taskview"
)

// Run starts the interactive TUI and blocks until the user quits.
func Run(store *session.Store, vm *taskview.ViewModel, logger *log.Logger) error {
	applyColorProfilePreference()
	m := newAppModel(store, vm, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
