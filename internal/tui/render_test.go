package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskdeck-cli/internal/model"
)

func TestRenderBarChart_ScalesToWidestRow(t *testing.T) {
	rows := []chartRow{
		{label: "To Do", value: 4, color: colorStatusTodo},
		{label: "Completed", value: 2, color: colorStatusCompleted},
		{label: "In Progress", value: 0, color: colorStatusInProgress},
	}
	out := renderBarChart(rows, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected one line per row, got %d: %q", len(lines), out)
	}

	count := func(s string) int { return strings.Count(s, "█") }
	if count(lines[0]) <= count(lines[1]) {
		t.Fatalf("widest row must have the longest bar: %q", out)
	}
	if count(lines[2]) != 0 {
		t.Fatalf("zero row must have no bar: %q", lines[2])
	}
	// Zero rows still carry label and count.
	if !strings.Contains(lines[2], "In Progress") || !strings.Contains(lines[2], "0") {
		t.Fatalf("zero row must keep label and count: %q", lines[2])
	}
}

func TestRenderBarChart_NonzeroRowGetsAtLeastOneBlock(t *testing.T) {
	rows := []chartRow{
		{label: "a", value: 100, color: colorAccent},
		{label: "b", value: 1, color: colorAccent},
	}
	out := renderBarChart(rows, 30)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "█") {
		t.Fatalf("tiny nonzero row must still show a block: %q", lines[1])
	}
}

func TestStatusBadge_ReplacesDash(t *testing.T) {
	out := statusBadge(model.StatusInProgress)
	if !strings.Contains(out, "in progress") {
		t.Fatalf("expected humanized status, got=%q", out)
	}
	if strings.Contains(out, "in-progress") {
		t.Fatalf("dash should be replaced, got=%q", out)
	}
}

func TestRenderTaskDetail_ShowsMetaRows(t *testing.T) {
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:          "t1",
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      model.StatusTodo,
		Priority:    model.PriorityHigh,
		AssignedTo:  &model.UserRef{ID: "u2", Name: "Grace"},
		DueDate:     &due,
		CreatedBy:   model.UserRef{ID: "u1", Name: "Ada"},
		CreatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	out := renderTaskDetail(task, 60, 20)
	for _, want := range []string{
		"Write report",
		"Assigned to", "Grace",
		"Due", "2025-04-01",
		"Created by", "Ada",
		"Quarterly numbers",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected detail to contain %q; got: %q", want, out)
		}
	}
}

func TestRenderTaskDetail_UnassignedShowsPlaceholder(t *testing.T) {
	task := model.Task{Title: "x", Status: model.StatusTodo, Priority: model.PriorityLow, CreatedBy: model.UserRef{Name: "Ada"}}
	out := renderTaskDetail(task, 60, 20)
	if !strings.Contains(out, "—") {
		t.Fatalf("expected placeholder for missing assignee; got: %q", out)
	}
}

func TestRenderConfirmModal_ShowsLabelsAndFocus(t *testing.T) {
	out := renderConfirmModal(80, "Delete task", "Are you sure?", "Delete", "Cancel", confirmFocusCancel)
	for _, want := range []string{"Delete task", "Are you sure?", "Delete", "Cancel"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected confirm modal to contain %q; got: %q", want, out)
		}
	}
}

func TestDashboard_LoadingAndUnavailableStates(t *testing.T) {
	m := newAuthedModel(t)
	m.page = pageDashboard

	m.analyticsBusy = true
	if out := m.viewDashboard(); !strings.Contains(out, "Loading analytics") {
		t.Fatalf("expected loading placeholder; got: %q", out)
	}

	m.analyticsBusy = false
	if out := m.viewDashboard(); !strings.Contains(out, "Press r to retry") {
		t.Fatalf("expected retry hint; got: %q", out)
	}
}

func TestDashboard_RendersCountsAndCharts(t *testing.T) {
	m := newAuthedModel(t)
	m.page = pageDashboard
	if err := m.vm.RefreshAnalytics(context.Background(), m.session.Token()); err != nil {
		t.Fatalf("refresh analytics: %v", err)
	}

	out := m.viewDashboard()
	for _, want := range []string{"Total Tasks", "Completed", "In Progress", "To Do", "Tasks by Status", "Tasks by Priority"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected dashboard to contain %q; got: %q", want, out)
		}
	}
}

func TestHeader_ShowsIdentityAndTabs(t *testing.T) {
	m := newAuthedModel(t)
	out := m.header()
	for _, want := range []string{"Taskdeck", "Dashboard", "Tasks", "Ada", "member"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected header to contain %q; got: %q", want, out)
		}
	}
}
