// Package taskview synchronizes a local view of the task collection, the
// user directory, and the analytics summary with backend state.
//
// The synchronization strategy is full-replace: every fetch discards the
// previous collection wholesale, and every successful mutation triggers a
// re-fetch instead of patching locally. The dataset is small and there is no
// multi-client realtime requirement, so re-fetch-after-write keeps the view
// within one round trip of server truth without any conflict handling.
package taskview

import (
	"context"

	"github.com/charmbracelet/log"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/model"
)

// StatusFilter selects tasks by status; FilterAll short-circuits to identity.
type StatusFilter string

const FilterAll StatusFilter = "all"

// Filters lists the filter choices in display order.
func Filters() []StatusFilter {
	out := []StatusFilter{FilterAll}
	for _, st := range model.Statuses() {
		out = append(out, StatusFilter(st))
	}
	return out
}

type ViewModel struct {
	client *api.Client
	logger *log.Logger

	tasks     []model.Task
	users     []model.UserRef
	analytics *model.AnalyticsSummary
}

func New(client *api.Client, logger *log.Logger) *ViewModel {
	if logger == nil {
		logger = log.Default()
	}
	return &ViewModel{client: client, logger: logger}
}

// Tasks returns the collection as of the latest successful fetch.
func (v *ViewModel) Tasks() []model.Task { return v.tasks }

// Users returns the directory as of the latest successful fetch.
func (v *ViewModel) Users() []model.UserRef { return v.users }

// Analytics returns the latest summary, or false if none has been fetched.
func (v *ViewModel) Analytics() (model.AnalyticsSummary, bool) {
	if v.analytics == nil {
		return model.AnalyticsSummary{}, false
	}
	return *v.analytics, true
}

// Reset drops all held collections. Called when the active credential
// changes (login, logout, credential rejection) so no view ever renders
// data fetched under a different identity.
func (v *ViewModel) Reset() {
	v.tasks = nil
	v.users = nil
	v.analytics = nil
}

// RefreshTasks replaces the entire task collection with the backend's
// current truth. On failure the previous collection is kept as-is.
func (v *ViewModel) RefreshTasks(ctx context.Context, token string) error {
	tasks, err := v.client.ListTasks(ctx, token)
	if err != nil {
		v.logger.Warn("task refresh failed", "err", err)
		return err
	}
	v.tasks = tasks
	return nil
}

// RefreshUsers replaces the user directory; used only to populate
// assignment choices, so a failure is diagnostic-only for the caller.
func (v *ViewModel) RefreshUsers(ctx context.Context, token string) error {
	users, err := v.client.ListUsers(ctx, token)
	if err != nil {
		v.logger.Warn("user directory refresh failed", "err", err)
		return err
	}
	v.users = users
	return nil
}

// RefreshAnalytics refetches the aggregate summary. Invoked once per
// credential change; there is no mutation path and no client-side
// aggregation.
func (v *ViewModel) RefreshAnalytics(ctx context.Context, token string) error {
	sum, err := v.client.Analytics(ctx, token)
	if err != nil {
		v.logger.Warn("analytics refresh failed", "err", err)
		return err
	}
	v.analytics = &sum
	return nil
}

// CreateTask submits the new task and, on success, re-fetches the full
// collection. The held collection is never mutated in place (no optimistic
// insert); a create whose follow-up refresh fails leaves the old view.
func (v *ViewModel) CreateTask(ctx context.Context, token string, fields model.TaskFields) error {
	if _, err := v.client.CreateTask(ctx, token, fields); err != nil {
		return err
	}
	return v.RefreshTasks(ctx, token)
}

// UpdateTask replaces the named task's mutable fields server-side. Whether
// the identity may update is the server's call; the client only hides
// affordances (see CanModify).
func (v *ViewModel) UpdateTask(ctx context.Context, token, id string, fields model.TaskFields) error {
	if _, err := v.client.UpdateTask(ctx, token, id, fields); err != nil {
		return err
	}
	return v.RefreshTasks(ctx, token)
}

// DeleteTask issues the delete and re-fetches. Callers are responsible for
// the user-confirmed intent gate before calling this.
func (v *ViewModel) DeleteTask(ctx context.Context, token, id string) error {
	if err := v.client.DeleteTask(ctx, token, id); err != nil {
		return err
	}
	return v.RefreshTasks(ctx, token)
}

// FilterByStatus is a pure, order-preserving predicate over tasks.
func FilterByStatus(tasks []model.Task, f StatusFilter) []model.Task {
	if f == FilterAll || f == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == model.TaskStatus(f) {
			out = append(out, t)
		}
	}
	return out
}

// CanModify reports whether the delete/edit affordance is exposed for id on
// t: the task's creator, or any admin. The backend enforces the real rule;
// this only gates the UI.
func CanModify(id model.Identity, t model.Task) bool {
	return id.Role == model.RoleAdmin || t.CreatedBy.ID == id.ID
}
