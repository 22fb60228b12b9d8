package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/taskview"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.authBusy && !m.analyticsBusy && !m.mutating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case authDoneMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = msg.err.Error()
			return m, nil
		}
		return m.enterAuthenticated(), tea.Batch(m.refreshCollectionsCmd(), m.refreshAnalyticsCmd(), m.spin.Tick)

	case collectionsDoneMsg:
		if api.IsAuthFailure(msg.tasksErr) || api.IsAuthFailure(msg.usersErr) {
			return m.forceLogout("Session expired. Please log in again.")
		}
		if msg.tasksErr != nil {
			m.statusMsg = "Task refresh failed: " + msg.tasksErr.Error()
		}
		m.rebuildTaskItems()
		return m, nil

	case analyticsDoneMsg:
		m.analyticsBusy = false
		if api.IsAuthFailure(msg.err) {
			return m.forceLogout("Session expired. Please log in again.")
		}
		// Analytics failures are diagnostic-only; the dashboard just keeps
		// its loading placeholder.
		return m, nil

	case mutateDoneMsg:
		m.mutating = false
		if api.IsAuthFailure(msg.err) {
			return m.forceLogout("Session expired. Please log in again.")
		}
		if msg.err != nil {
			m.statusMsg = titleCase(msg.op) + " failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMsg = "Task " + pastTense(msg.op)
		m.rebuildTaskItems()
		// Mutations invalidate the aggregate counts too.
		return m, m.refreshAnalyticsCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.modal == modalEditor:
			return m.updateEditor(msg)
		case m.modal == modalConfirmDelete:
			return m.updateConfirmDelete(msg)
		case m.page == pageAuth:
			return m.updateAuth(msg)
		default:
			return m.updateMain(msg)
		}
	}

	return m, nil
}

func (m appModel) enterAuthenticated() appModel {
	m.vm.Reset()
	m.page = pageDashboard
	m.analyticsBusy = true
	m.authErr = ""
	m.statusMsg = ""
	m.resetAuthForm()
	m.rebuildTaskItems()
	return m
}

func (m appModel) forceLogout(reason string) (tea.Model, tea.Cmd) {
	_ = m.session.Logout(context.Background())
	m.vm.Reset()
	m.page = pageAuth
	m.modal = modalNone
	m.authMode = authLogin
	m.authErr = reason
	m.resetAuthForm()
	m.authFocus = authFocusEmail
	m.emailInput.Focus()
	return m, textinput.Blink
}

func (m *appModel) resetAuthForm() {
	m.nameInput.SetValue("")
	m.nameInput.Blur()
	m.emailInput.SetValue("")
	m.emailInput.Blur()
	m.passwordInput.SetValue("")
	m.passwordInput.Blur()
	m.roleIdx = 0
	m.authBusy = false
}

// --- auth page ---

func (m appModel) authOrder() []authFocus {
	if m.authMode == authSignup {
		return []authFocus{authFocusName, authFocusEmail, authFocusPassword, authFocusRole, authFocusSubmit, authFocusSwitch}
	}
	return []authFocus{authFocusEmail, authFocusPassword, authFocusSubmit, authFocusSwitch}
}

func (m appModel) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.moveAuthFocus(1), nil
	case "shift+tab", "up":
		return m.moveAuthFocus(-1), nil
	case "left", "right":
		if m.authFocus == authFocusRole {
			m.roleIdx = (m.roleIdx + 1) % len(roles())
			return m, nil
		}
	case "enter":
		switch m.authFocus {
		case authFocusSubmit:
			return m.submitAuth()
		case authFocusSwitch:
			return m.toggleAuthMode(), textinput.Blink
		case authFocusPassword:
			// Enter in the password field submits, as the form does.
			return m.submitAuth()
		default:
			return m.moveAuthFocus(1), nil
		}
	}

	var cmd tea.Cmd
	switch m.authFocus {
	case authFocusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case authFocusEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case authFocusPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) moveAuthFocus(delta int) appModel {
	order := m.authOrder()
	idx := 0
	for i, f := range order {
		if f == m.authFocus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.authFocus = order[idx]

	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	switch m.authFocus {
	case authFocusName:
		m.nameInput.Focus()
	case authFocusEmail:
		m.emailInput.Focus()
	case authFocusPassword:
		m.passwordInput.Focus()
	}
	return m
}

func (m appModel) toggleAuthMode() appModel {
	if m.authMode == authLogin {
		m.authMode = authSignup
		m.authFocus = authFocusName
		m.resetAuthForm()
		m.nameInput.Focus()
	} else {
		m.authMode = authLogin
		m.authFocus = authFocusEmail
		m.resetAuthForm()
		m.emailInput.Focus()
	}
	m.authErr = ""
	return m
}

func (m appModel) submitAuth() (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}
	m.authErr = ""
	m.authBusy = true
	if m.authMode == authSignup {
		return m, tea.Batch(m.signupCmd(), m.spin.Tick)
	}
	return m, tea.Batch(m.loginCmd(), m.spin.Tick)
}

// --- authenticated pages ---

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter prompt is open, every key belongs to the list.
	if m.page == pageTasks && m.taskList.SettingFilter() {
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "g":
		m.page = pageDashboard
		return m, nil
	case "2", "t":
		m.page = pageTasks
		return m, nil
	case "L":
		return m.forceLogout("")
	case "r":
		m.statusMsg = ""
		if m.page == pageDashboard {
			m.analyticsBusy = true
			return m, tea.Batch(m.refreshAnalyticsCmd(), m.spin.Tick)
		}
		return m, m.refreshCollectionsCmd()
	}

	if m.page != pageTasks {
		return m, nil
	}

	switch msg.String() {
	case "f":
		m.filterIdx = (m.filterIdx + 1) % len(taskview.Filters())
		m.rebuildTaskItems()
		return m, nil
	case "n":
		return m.openEditor(nil), textinput.Blink
	case "e", "enter":
		if it, ok := m.taskList.SelectedItem().(taskItem); ok && it.mine {
			t := it.task
			return m.openEditor(&t), textinput.Blink
		}
		m.statusMsg = "Only the creator or an admin can edit this task"
		return m, nil
	case "d":
		if it, ok := m.taskList.SelectedItem().(taskItem); ok {
			if !it.mine {
				m.statusMsg = "Only the creator or an admin can delete this task"
				return m, nil
			}
			m.modal = modalConfirmDelete
			m.deleteID = it.task.ID
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

// --- delete confirmation ---

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "ctrl+g":
		m.modal = modalNone
		m.deleteID = ""
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.confirmDelete()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		m.modal = modalNone
		m.deleteID = ""
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	id := m.deleteID
	m.modal = modalNone
	m.deleteID = ""
	m.mutating = true
	return m, tea.Batch(m.deleteTaskCmd(id), m.spin.Tick)
}

// --- editor modal ---

func (m appModel) openEditor(t *model.Task) appModel {
	m.modal = modalEditor
	m.editorFocus = editorFocusTitle
	m.statusMsg = ""

	m.titleInput.SetValue("")
	m.descInput.SetValue("")
	m.dueInput.SetValue("")
	m.statusIdx = 0
	m.priorityIdx = 1 // medium, the form default
	m.assigneeIdx = 0
	m.assigneeID = ""
	m.assigneeName = ""
	m.editingID = ""

	if t != nil {
		m.editingID = t.ID
		m.titleInput.SetValue(t.Title)
		m.descInput.SetValue(t.Description)
		m.dueInput.SetValue(t.DueDateOnly())
		m.statusIdx = indexOfStatus(t.Status)
		m.priorityIdx = indexOfPriority(t.Priority)
		if t.AssignedTo != nil {
			// The id comes from the populated ref, not the directory: an
			// assignee missing from a stale directory fetch must still be
			// submitted unchanged, or the full-set update would unassign.
			m.assigneeID = t.AssignedTo.ID
			m.assigneeName = t.AssignedTo.Name
			for i, u := range m.vm.Users() {
				if u.ID == t.AssignedTo.ID {
					m.assigneeIdx = i + 1
					break
				}
			}
		}
	}

	m.titleInput.Focus()
	m.descInput.Blur()
	m.dueInput.Blur()
	return m
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.modal = modalNone
		return m, nil
	case "ctrl+s":
		return m.saveEditor()
	case "tab":
		return m.moveEditorFocus(1), nil
	case "shift+tab":
		return m.moveEditorFocus(-1), nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.editorFocus {
		case editorFocusStatus:
			m.statusIdx = wrap(m.statusIdx+delta, len(model.Statuses()))
			return m, nil
		case editorFocusPriority:
			m.priorityIdx = wrap(m.priorityIdx+delta, len(model.Priorities()))
			return m, nil
		case editorFocusAssignee:
			m.assigneeIdx = wrap(m.assigneeIdx+delta, len(m.vm.Users())+1)
			if m.assigneeIdx == 0 {
				m.assigneeID, m.assigneeName = "", ""
			} else {
				u := m.vm.Users()[m.assigneeIdx-1]
				m.assigneeID, m.assigneeName = u.ID, u.Name
			}
			return m, nil
		}
	case "enter":
		switch m.editorFocus {
		case editorFocusSave:
			return m.saveEditor()
		case editorFocusCancel:
			m.modal = modalNone
			return m, nil
		case editorFocusDescription:
			// Newline in the textarea.
		default:
			return m.moveEditorFocus(1), nil
		}
	}

	var cmd tea.Cmd
	switch m.editorFocus {
	case editorFocusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case editorFocusDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	case editorFocusDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) moveEditorFocus(delta int) appModel {
	order := []editorFocus{
		editorFocusTitle, editorFocusDescription, editorFocusStatus,
		editorFocusPriority, editorFocusAssignee, editorFocusDue,
		editorFocusSave, editorFocusCancel,
	}
	idx := 0
	for i, f := range order {
		if f == m.editorFocus {
			idx = i
			break
		}
	}
	m.editorFocus = order[wrap(idx+delta, len(order))]

	m.titleInput.Blur()
	m.descInput.Blur()
	m.dueInput.Blur()
	switch m.editorFocus {
	case editorFocusTitle:
		m.titleInput.Focus()
	case editorFocusDescription:
		m.descInput.Focus()
	case editorFocusDue:
		m.dueInput.Focus()
	}
	return m
}

func (m appModel) saveEditor() (tea.Model, tea.Cmd) {
	fields := m.collectFields()
	if strings.TrimSpace(fields.Title) == "" {
		m.statusMsg = "Title is required"
		return m, nil
	}
	id := m.editingID
	// Fire-and-forget like the rest of the mutations: the modal closes now,
	// and the completion message refreshes the list.
	m.modal = modalNone
	m.mutating = true
	if id == "" {
		return m, tea.Batch(m.createTaskCmd(fields), m.spin.Tick)
	}
	return m, tea.Batch(m.updateTaskCmd(id, fields), m.spin.Tick)
}

func (m appModel) collectFields() model.TaskFields {
	return model.TaskFields{
		Title:       strings.TrimSpace(m.titleInput.Value()),
		Description: strings.TrimSpace(m.descInput.Value()),
		Status:      model.Statuses()[m.statusIdx],
		Priority:    model.Priorities()[m.priorityIdx],
		AssignedTo:  m.assigneeID,
		DueDate:     strings.TrimSpace(m.dueInput.Value()),
	}
}

// --- shared helpers ---

func (m *appModel) rebuildTaskItems() {
	curID := ""
	if it, ok := m.taskList.SelectedItem().(taskItem); ok {
		curID = it.task.ID
	}

	id := m.identity()
	filtered := taskview.FilterByStatus(m.vm.Tasks(), taskview.Filters()[m.filterIdx])
	items := make([]list.Item, 0, len(filtered))
	for _, t := range filtered {
		items = append(items, taskItem{task: t, mine: taskview.CanModify(id, t)})
	}
	m.taskList.SetItems(items)

	if curID != "" {
		for i, it := range m.taskList.Items() {
			if ti, ok := it.(taskItem); ok && ti.task.ID == curID {
				m.taskList.Select(i)
				break
			}
		}
	}
}

func (m *appModel) resize() {
	h := m.height - 7
	if h < 8 {
		h = 8
	}
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	m.taskList.SetSize(w, h)
	m.descInput.SetWidth(modalBodyWidth(m.width))
	m.descInput.SetHeight(4)
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i%n + n) % n
}

func indexOfStatus(s model.TaskStatus) int {
	for i, st := range model.Statuses() {
		if st == s {
			return i
		}
	}
	return 0
}

func indexOfPriority(p model.TaskPriority) int {
	for i, pr := range model.Priorities() {
		if pr == p {
			return i
		}
	}
	return 0
}

func pastTense(op string) string {
	switch op {
	case "create":
		return "created"
	case "update":
		return "updated"
	case "delete":
		return "deleted"
	}
	return op
}
