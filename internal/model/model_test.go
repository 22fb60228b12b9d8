package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDueDateOnly(t *testing.T) {
	if got := (Task{}).DueDateOnly(); got != "" {
		t.Fatalf("unset due date should be empty, got=%q", got)
	}
	d := time.Date(2025, 3, 9, 17, 30, 0, 0, time.UTC)
	if got := (Task{DueDate: &d}).DueDateOnly(); got != "2025-03-09" {
		t.Fatalf("got=%q", got)
	}
}

func TestTask_DecodesPopulatedRefs(t *testing.T) {
	raw := `{
		"_id": "t1",
		"title": "Plan sprint",
		"status": "in-progress",
		"priority": "high",
		"assignedTo": {"_id": "u2", "name": "Grace", "email": "g@x.dev"},
		"createdBy": {"_id": "u1", "name": "Ada"},
		"createdAt": "2025-03-01T10:00:00Z",
		"updatedAt": "2025-03-02T10:00:00Z"
	}`
	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.ID != "t1" || task.Status != StatusInProgress {
		t.Fatalf("got=%+v", task)
	}
	if task.AssignedTo == nil || task.AssignedTo.ID != "u2" {
		t.Fatalf("assignedTo not populated: %+v", task.AssignedTo)
	}
	if task.CreatedBy.Name != "Ada" {
		t.Fatalf("createdBy not populated: %+v", task.CreatedBy)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		if got, err := ParseStatus(string(s)); err != nil || got != s {
			t.Fatalf("ParseStatus(%q): got=%q err=%v", s, got, err)
		}
	}
	if _, err := ParseStatus("done"); err == nil || !strings.Contains(err.Error(), "done") {
		t.Fatalf("expected error naming the bad value, got=%v", err)
	}
}

func TestParsePriority(t *testing.T) {
	for _, p := range Priorities() {
		if got, err := ParsePriority(string(p)); err != nil || got != p {
			t.Fatalf("ParsePriority(%q): got=%q err=%v", p, got, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestParseRole(t *testing.T) {
	if got, err := ParseRole("admin"); err != nil || got != RoleAdmin {
		t.Fatalf("got=%q err=%v", got, err)
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
