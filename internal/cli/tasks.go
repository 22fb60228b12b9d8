package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/taskview"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and mutate tasks",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the full task collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, token, err := openViewModel(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := vm.RefreshTasks(cmd.Context(), token); err != nil {
				return writeErr(cmd, describe(err))
			}
			tasks := vm.Tasks()
			if status != string(taskview.FilterAll) {
				st, err := model.ParseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				tasks = taskview.FilterByStatus(tasks, taskview.StatusFilter(st))
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}
	cmd.Flags().StringVar(&status, "status", string(taskview.FilterAll), "Client-side status filter (all|todo|in-progress|completed)")
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var (
		title, description, assignTo, due string
		status, priority                  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(title, description, status, priority, assignTo, due)
			if err != nil {
				return writeErr(cmd, err)
			}
			vm, token, err := openViewModel(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := vm.CreateTask(cmd.Context(), token, fields); err != nil {
				return writeErr(cmd, describe(err))
			}
			return writeOut(cmd, app, map[string]any{"data": vm.Tasks()})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", string(model.StatusTodo), "Status (todo|in-progress|completed)")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (low|medium|high)")
	cmd.Flags().StringVar(&assignTo, "assign", "", "Assignee user id (see `taskdeck users`)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var (
		title, description, assignTo, due string
		status, priority                  string
	)
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task (unspecified flags keep the current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, token, err := openViewModel(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// The update endpoint takes the full field set, so prefill from
			// the task's current state and overlay only the changed flags.
			if err := vm.RefreshTasks(cmd.Context(), token); err != nil {
				return writeErr(cmd, describe(err))
			}
			cur, ok := findTask(vm.Tasks(), args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("task not found: %s", args[0]))
			}
			fields := fieldsOf(cur)
			if cmd.Flags().Changed("title") {
				fields.Title = title
			}
			if cmd.Flags().Changed("description") {
				fields.Description = description
			}
			if cmd.Flags().Changed("status") {
				st, err := model.ParseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				fields.Status = st
			}
			if cmd.Flags().Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				fields.Priority = p
			}
			if cmd.Flags().Changed("assign") {
				fields.AssignedTo = assignTo
			}
			if cmd.Flags().Changed("due") {
				fields.DueDate = due
			}
			if err := vm.UpdateTask(cmd.Context(), token, cur.ID, fields); err != nil {
				return writeErr(cmd, describe(err))
			}
			return writeOut(cmd, app, map[string]any{"data": vm.Tasks()})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Status (todo|in-progress|completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high)")
	cmd.Flags().StringVar(&assignTo, "assign", "", "Assignee user id (empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "Due date YYYY-MM-DD (empty clears)")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task (asks for confirmation unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete task %s? [y/N] ", args[0])
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
				default:
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": false}})
				}
			}
			vm, token, err := openViewModel(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := vm.DeleteTask(cmd.Context(), token, args[0]); err != nil {
				return writeErr(cmd, describe(err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": true}})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func openViewModel(app *App) (*taskview.ViewModel, string, error) {
	_, client, store, err := openSession(app)
	if err != nil {
		return nil, "", err
	}
	if !store.Authenticated() {
		return nil, "", errNotAuthenticated
	}
	return taskview.New(client, stderrLogger()), store.Token(), nil
}

func parseFields(title, description, status, priority, assignTo, due string) (model.TaskFields, error) {
	st, err := model.ParseStatus(status)
	if err != nil {
		return model.TaskFields{}, err
	}
	p, err := model.ParsePriority(priority)
	if err != nil {
		return model.TaskFields{}, err
	}
	return model.TaskFields{
		Title:       title,
		Description: description,
		Status:      st,
		Priority:    p,
		AssignedTo:  assignTo,
		DueDate:     due,
	}, nil
}

func fieldsOf(t model.Task) model.TaskFields {
	f := model.TaskFields{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDateOnly(),
	}
	if t.AssignedTo != nil {
		f.AssignedTo = t.AssignedTo.ID
	}
	return f
}

func findTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
