package tui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
	"taskdeck-cli/internal/taskview"
)

func testTasks() []model.Task {
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return []model.Task{
		{
			ID: "t1", Title: "Write report", Status: model.StatusTodo, Priority: model.PriorityHigh,
			CreatedBy: model.UserRef{ID: "u1", Name: "Ada"},
			DueDate:   &due,
		},
		{
			ID: "t2", Title: "Review deploy", Status: model.StatusCompleted, Priority: model.PriorityLow,
			CreatedBy:  model.UserRef{ID: "u2", Name: "Grace"},
			AssignedTo: &model.UserRef{ID: "u1", Name: "Ada"},
		},
	}
}

// newAuthedModel logs in as member u1 against a stub backend and lands on the
// tasks page with both collections fetched.
func newAuthedModel(t *testing.T) appModel {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok",
			"user":  model.Identity{ID: "u1", Name: "Ada", Email: "ada@x.dev", Role: model.RoleMember},
		})
	})
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(testTasks())
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.UserRef{
			{ID: "u1", Name: "Ada", Email: "ada@x.dev"},
			{ID: "u2", Name: "Grace", Email: "grace@x.dev"},
		})
	})
	mux.HandleFunc("/analytics", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(model.AnalyticsSummary{TotalTasks: 2, CompletedTasks: 1, TodoTasks: 1})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL)
	store, err := session.Open(t.TempDir(), client)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if err := store.Login(context.Background(), "ada@x.dev", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	vm := taskview.New(client, log.New(io.Discard))
	if err := vm.RefreshTasks(context.Background(), store.Token()); err != nil {
		t.Fatalf("refresh tasks: %v", err)
	}
	if err := vm.RefreshUsers(context.Background(), store.Token()); err != nil {
		t.Fatalf("refresh users: %v", err)
	}

	m := newAppModel(store, vm, log.New(io.Discard))
	m.width, m.height = 100, 30
	m.resize()
	m.page = pageTasks
	m.rebuildTaskItems()
	return m
}

func selectTask(t *testing.T, m *appModel, id string) {
	t.Helper()
	for i, it := range m.taskList.Items() {
		if ti, ok := it.(taskItem); ok && ti.task.ID == id {
			m.taskList.Select(i)
			return
		}
	}
	t.Fatalf("task %s not in list", id)
}

func TestTasks_EditDeniedForNonCreatorMember(t *testing.T) {
	m := newAuthedModel(t)
	selectTask(t, &m, "t2") // created by u2, we are member u1

	m, _ = applyKey(t, m, "e")
	if m.modal != modalNone {
		t.Fatalf("expected no editor for read-only task, got modal=%v", m.modal)
	}
	if !strings.Contains(m.statusMsg, "Only the creator or an admin") {
		t.Fatalf("expected denial message, got=%q", m.statusMsg)
	}
}

func TestTasks_EditOpensPrefilledEditorForOwnTask(t *testing.T) {
	m := newAuthedModel(t)
	selectTask(t, &m, "t1")

	m, _ = applyKey(t, m, "e")
	if m.modal != modalEditor {
		t.Fatalf("expected editor modal, got %v", m.modal)
	}
	if m.editingID != "t1" {
		t.Fatalf("expected editingID=t1, got %q", m.editingID)
	}
	if got := m.titleInput.Value(); got != "Write report" {
		t.Fatalf("title not prefilled, got=%q", got)
	}
	if model.Statuses()[m.statusIdx] != model.StatusTodo {
		t.Fatalf("status not prefilled, idx=%d", m.statusIdx)
	}
	if model.Priorities()[m.priorityIdx] != model.PriorityHigh {
		t.Fatalf("priority not prefilled, idx=%d", m.priorityIdx)
	}
	if got := m.dueInput.Value(); got != "2025-04-01" {
		t.Fatalf("due date not prefilled, got=%q", got)
	}
}

func TestTasks_EditKeepsAssigneeMissingFromDirectory(t *testing.T) {
	m := newAuthedModel(t)
	task := model.Task{
		ID: "t9", Title: "Orphan", Status: model.StatusTodo, Priority: model.PriorityLow,
		AssignedTo: &model.UserRef{ID: "u9", Name: "Zara"},
		CreatedBy:  model.UserRef{ID: "u1", Name: "Ada"},
	}

	m = m.openEditor(&task)
	if m.assigneeIdx != 0 {
		t.Fatalf("assignee is not in the directory, idx=%d", m.assigneeIdx)
	}
	if got := m.collectFields().AssignedTo; got != "u9" {
		t.Fatalf("assignee must survive a stale directory, submitted=%q want u9", got)
	}
	// The editor still shows who the task is assigned to, from the ref.
	if out := m.renderEditorModal(); !strings.Contains(out, "Zara") {
		t.Fatalf("expected assignee name from the populated ref; got: %q", out)
	}

	// Actively cycling the selector is the only thing that replaces it.
	m.editorFocus = editorFocusAssignee
	m, _ = applyKey(t, m, "right")
	if got := m.collectFields().AssignedTo; got != "u1" {
		t.Fatalf("expected first directory user after cycling, got=%q", got)
	}
	m, _ = applyKey(t, m, "left")
	if got := m.collectFields().AssignedTo; got != "" {
		t.Fatalf("expected unassigned after cycling back, got=%q", got)
	}
}

func TestTasks_ReloginClearsStaleStatusMessage(t *testing.T) {
	m := newAuthedModel(t)
	m.statusMsg = "Create failed: boom"

	mAny, _ := m.forceLogout("")
	m = mAny.(appModel)
	mAny, _ = m.Update(authDoneMsg{})
	m = mAny.(appModel)
	if m.statusMsg != "" {
		t.Fatalf("footer message must not leak into the next session, got=%q", m.statusMsg)
	}
}

func TestTasks_NewEditorDefaultsToMediumPriority(t *testing.T) {
	m := newAuthedModel(t)
	m, _ = applyKey(t, m, "n")
	if m.modal != modalEditor || m.editingID != "" {
		t.Fatalf("expected create editor, modal=%v editingID=%q", m.modal, m.editingID)
	}
	if model.Priorities()[m.priorityIdx] != model.PriorityMedium {
		t.Fatalf("expected medium default, idx=%d", m.priorityIdx)
	}
	if model.Statuses()[m.statusIdx] != model.StatusTodo {
		t.Fatalf("expected todo default, idx=%d", m.statusIdx)
	}
}

func TestTasks_SaveRequiresTitle(t *testing.T) {
	m := newAuthedModel(t)
	m, _ = applyKey(t, m, "n")

	mAny, cmd := m.saveEditor()
	m = mAny.(appModel)
	if cmd != nil {
		t.Fatal("empty title must not submit")
	}
	if m.modal != modalEditor {
		t.Fatal("editor must stay open on validation failure")
	}
	if m.statusMsg != "Title is required" {
		t.Fatalf("got=%q", m.statusMsg)
	}
}

func TestTasks_SaveClosesModalAndFires(t *testing.T) {
	m := newAuthedModel(t)
	m, _ = applyKey(t, m, "n")
	m.titleInput.SetValue("New thing")

	mAny, cmd := m.saveEditor()
	m = mAny.(appModel)
	if m.modal != modalNone {
		t.Fatal("save must close the modal immediately")
	}
	if !m.mutating || cmd == nil {
		t.Fatalf("expected in-flight mutation, mutating=%v cmd=%v", m.mutating, cmd)
	}
}

func TestTasks_DeleteConfirmDefaultsToCancel(t *testing.T) {
	m := newAuthedModel(t)
	selectTask(t, &m, "t1")

	m, _ = applyKey(t, m, "d")
	if m.modal != modalConfirmDelete || m.deleteID != "t1" {
		t.Fatalf("expected confirm modal for t1, modal=%v deleteID=%q", m.modal, m.deleteID)
	}
	if m.confirmFocus != confirmFocusCancel {
		t.Fatal("cancel must be the default focus")
	}

	// Enter on the default closes without deleting.
	m, cmd := applyKey(t, m, "enter")
	if m.modal != modalNone || m.deleteID != "" || cmd != nil {
		t.Fatalf("expected clean cancel, modal=%v deleteID=%q", m.modal, m.deleteID)
	}
}

func TestTasks_DeleteConfirmShortcutY(t *testing.T) {
	m := newAuthedModel(t)
	selectTask(t, &m, "t1")
	m, _ = applyKey(t, m, "d")

	m, cmd := applyKey(t, m, "y")
	if m.modal != modalNone {
		t.Fatal("confirm must close the modal")
	}
	if !m.mutating || cmd == nil {
		t.Fatalf("expected in-flight delete, mutating=%v", m.mutating)
	}
}

func TestTasks_DeleteDeniedForNonCreatorMember(t *testing.T) {
	m := newAuthedModel(t)
	selectTask(t, &m, "t2")

	m, _ = applyKey(t, m, "d")
	if m.modal != modalNone {
		t.Fatalf("expected no confirm modal, got %v", m.modal)
	}
	if !strings.Contains(m.statusMsg, "Only the creator or an admin") {
		t.Fatalf("expected denial message, got=%q", m.statusMsg)
	}
}

func TestTasks_FilterCycleNarrowsList(t *testing.T) {
	m := newAuthedModel(t)
	if got := len(m.taskList.Items()); got != 2 {
		t.Fatalf("expected 2 items under all, got=%d", got)
	}

	m, _ = applyKey(t, m, "f") // all -> todo
	if got := len(m.taskList.Items()); got != 1 {
		t.Fatalf("expected 1 todo item, got=%d", got)
	}
	it := m.taskList.Items()[0].(taskItem)
	if it.task.ID != "t1" {
		t.Fatalf("expected t1, got=%q", it.task.ID)
	}
}

func TestTasks_MutationDoneRefreshesAndReports(t *testing.T) {
	m := newAuthedModel(t)
	m.mutating = true

	mAny, cmd := m.Update(mutateDoneMsg{op: "delete"})
	m = mAny.(appModel)
	if m.mutating {
		t.Fatal("expected mutation flag cleared")
	}
	if m.statusMsg != "Task deleted" {
		t.Fatalf("got=%q", m.statusMsg)
	}
	if cmd == nil {
		t.Fatal("expected an analytics refresh after a mutation")
	}
}

func TestTasks_CredentialRejectionDropsSession(t *testing.T) {
	m := newAuthedModel(t)

	mAny, _ := m.Update(collectionsDoneMsg{tasksErr: api.ErrUnauthorized})
	m = mAny.(appModel)
	if m.page != pageAuth {
		t.Fatalf("expected return to auth page, got %v", m.page)
	}
	if m.session.Authenticated() {
		t.Fatal("expected session dropped")
	}
	if !strings.Contains(m.authErr, "Session expired") {
		t.Fatalf("expected expiry message, got=%q", m.authErr)
	}
	if m.vm.Tasks() != nil {
		t.Fatal("expected view model reset")
	}
}

func TestTasks_LogoutKeyReturnsToAuth(t *testing.T) {
	m := newAuthedModel(t)

	m, _ = applyKey(t, m, "L")
	if m.page != pageAuth {
		t.Fatalf("expected auth page, got %v", m.page)
	}
	if m.session.Authenticated() {
		t.Fatal("expected session cleared")
	}
}

func TestTasks_ViewMarksReadOnlyTasks(t *testing.T) {
	m := newAuthedModel(t)
	out := m.View()
	if !strings.Contains(out, "(read-only)") {
		t.Fatalf("expected read-only marker for t2; got: %q", out)
	}
	if !strings.Contains(out, "Write report") {
		t.Fatalf("expected task titles in list; got: %q", out)
	}
}
