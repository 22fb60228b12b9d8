package model

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Statuses lists the task statuses in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted}
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Priorities lists the task priorities in display order.
func Priorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Identity is the authenticated user's profile as returned by the auth
// endpoints. Note the backend uses "id" here but "_id" everywhere else.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserRef is a read-only directory entry, also embedded in tasks as the
// populated assignedTo/createdBy references.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssignedTo  *UserRef     `json:"assignedTo,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedBy   UserRef      `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// DueDateOnly returns the due date formatted as YYYY-MM-DD, or "" when unset.
func (t Task) DueDateOnly() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format("2006-01-02")
}

// TaskFields is the mutable field set submitted on create and update.
// AssignedTo and DueDate are ids/date strings as the backend expects them
// (assignee id, YYYY-MM-DD), not populated refs.
type TaskFields struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssignedTo  string       `json:"assignedTo"`
	DueDate     string       `json:"dueDate"`
}

// PriorityCount is one bucket of the analytics priority breakdown.
// The backend keys the bucket by "_id" (aggregation artifact).
type PriorityCount struct {
	Priority TaskPriority `json:"_id"`
	Count    int          `json:"count"`
}

type AnalyticsSummary struct {
	TotalTasks      int             `json:"totalTasks"`
	CompletedTasks  int             `json:"completedTasks"`
	InProgressTasks int             `json:"inProgressTasks"`
	TodoTasks       int             `json:"todoTasks"`
	TasksByPriority []PriorityCount `json:"tasksByPriority"`
}
