package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
	"taskdeck-cli/internal/taskview"
)

type appModel struct {
	session *session.Store
	vm      *taskview.ViewModel
	logger  *log.Logger

	width  int
	height int

	page page

	// Auth form.
	authMode      authMode
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	roleIdx       int // index into model roles: member, admin
	authFocus     authFocus
	authErr       string
	authBusy      bool

	// Tasks page.
	taskList  list.Model
	filterIdx int // index into taskview.Filters()
	statusMsg string

	// Dashboard.
	analyticsBusy bool
	spin          spinner.Model

	// Modal state.
	modal        modalKind
	editingID    string // "" while creating
	titleInput   textinput.Model
	descInput    textarea.Model
	dueInput     textinput.Model
	statusIdx    int
	priorityIdx  int
	assigneeIdx  int // 0 = unassigned, 1.. = vm.Users()[i-1]
	// assigneeID is the id actually submitted. Kept separately from
	// assigneeIdx so a prefilled assignee survives a stale or failed
	// directory fetch; assigneeName is its display fallback.
	assigneeID   string
	assigneeName string
	editorFocus  editorFocus
	confirmFocus confirmModalFocus
	deleteID     string
	mutating     bool
}

func newAppModel(store *session.Store, vm *taskview.ViewModel, logger *log.Logger) appModel {
	m := appModel{
		session: store,
		vm:      vm,
		logger:  logger,
		page:    pageAuth,
	}

	m.nameInput = newInput("Full name")
	m.emailInput = newInput("you@example.com")
	m.passwordInput = newInput("password")
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.EchoCharacter = '•'

	m.titleInput = newInput("Task title")
	m.dueInput = newInput("YYYY-MM-DD")
	m.descInput = textarea.New()
	m.descInput.Placeholder = "Describe the task (markdown ok)"
	m.descInput.ShowLineNumbers = false

	m.taskList = newTaskList()

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))

	// A restored session skips the auth page entirely; the first data fetch
	// is the first network activity.
	if m.session.Authenticated() {
		m.page = pageDashboard
		m.analyticsBusy = true
		m.authFocus = authFocusEmail
	} else {
		m.authFocus = authFocusEmail
		m.emailInput.Focus()
	}
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	return ti
}

func (m appModel) Init() tea.Cmd {
	if m.session.Authenticated() {
		return tea.Batch(m.refreshCollectionsCmd(), m.refreshAnalyticsCmd(), m.spin.Tick)
	}
	return textinput.Blink
}

func (m appModel) identity() model.Identity {
	id, _ := m.session.Identity()
	return id
}

// Commands. Each runs off the update loop and reports back with a message;
// nothing here retries, and overlapping requests are last-write-wins (the
// refresh that lands last replaces the collection).

func (m appModel) loginCmd() tea.Cmd {
	email := m.emailInput.Value()
	password := m.passwordInput.Value()
	store := m.session
	return func() tea.Msg {
		return authDoneMsg{err: store.Login(context.Background(), email, password)}
	}
}

func (m appModel) signupCmd() tea.Cmd {
	name := m.nameInput.Value()
	email := m.emailInput.Value()
	password := m.passwordInput.Value()
	role := roles()[m.roleIdx]
	store := m.session
	return func() tea.Msg {
		return authDoneMsg{err: store.Signup(context.Background(), name, email, password, role)}
	}
}

func (m appModel) refreshCollectionsCmd() tea.Cmd {
	vm, token := m.vm, m.session.Token()
	return func() tea.Msg {
		tasksErr := vm.RefreshTasks(context.Background(), token)
		usersErr := vm.RefreshUsers(context.Background(), token)
		return collectionsDoneMsg{tasksErr: tasksErr, usersErr: usersErr}
	}
}

func (m appModel) refreshAnalyticsCmd() tea.Cmd {
	vm, token := m.vm, m.session.Token()
	return func() tea.Msg {
		return analyticsDoneMsg{err: vm.RefreshAnalytics(context.Background(), token)}
	}
}

func (m appModel) createTaskCmd(fields model.TaskFields) tea.Cmd {
	vm, token := m.vm, m.session.Token()
	return func() tea.Msg {
		return mutateDoneMsg{op: "create", err: vm.CreateTask(context.Background(), token, fields)}
	}
}

func (m appModel) updateTaskCmd(id string, fields model.TaskFields) tea.Cmd {
	vm, token := m.vm, m.session.Token()
	return func() tea.Msg {
		return mutateDoneMsg{op: "update", err: vm.UpdateTask(context.Background(), token, id, fields)}
	}
}

func (m appModel) deleteTaskCmd(id string) tea.Cmd {
	vm, token := m.vm, m.session.Token()
	return func() tea.Msg {
		return mutateDoneMsg{op: "delete", err: vm.DeleteTask(context.Background(), token, id)}
	}
}

func roles() []model.Role {
	return []model.Role{model.RoleMember, model.RoleAdmin}
}
