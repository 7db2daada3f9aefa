package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskCreateCmd(app),
		newTaskUpdateCmd(app),
		newTaskStatusCmd(app),
		newTaskDeleteCmd(app),
	)
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var (
		pf     pageFlags
		filter domain.TaskFilter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pf.validate(); err != nil {
				return err
			}
			filter.Page, filter.Limit, filter.Search = pf.page, pf.limit, pf.search

			var page *domain.Page[domain.Task]
			err := withSpinner(app, cmd, "Loading tasks...", func() error {
				var err error
				page, err = app.Tasks.List(cmd.Context(), filter)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(page, app.now()))
			return nil
		},
	}

	fs := cmd.Flags()
	pf.register(fs, 20)
	fs.StringVar(&filter.ProjectID, "project", "", "Only tasks in this project")
	fs.StringVar(&filter.AssignedTo, "assignee", "", "Only tasks assigned to this user id")
	taskStatusFlag(fs, &filter.Status, "Only tasks with this status")
	taskPriorityFlag(fs, &filter.Priority, "Only tasks with this priority")
	return withRoute(cmd, route.Tasks)
}

func newTaskShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(t, assigneeName(t, nil), app.now()))
			return nil
		},
	}
	return withRoute(cmd, route.TaskDetail)
}

// assigneeName resolves a task's assignee for display from the task's own
// expansion or the team roster.
func assigneeName(t *domain.Task, members []domain.TeamMember) string {
	if t.AssignedTo == "" {
		return ""
	}
	if t.Assignee != nil && t.Assignee.ID == t.AssignedTo {
		return t.Assignee.DisplayName()
	}
	for _, m := range members {
		if m.ID == t.AssignedTo {
			return domain.CoalesceStr(m.Name, m.Email)
		}
	}
	return t.AssignedTo
}

func newTaskCreateCmd(app *App) *cobra.Command {
	var f taskFields

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Create(cmd.Context(), f.input())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine(fmt.Sprintf("Created task %s (%s)", t.Title, t.ID)))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.Title, "title", "", "Task title")
	fs.StringVar(&f.Description, "description", "", "Task description")
	fs.StringVar(&f.ProjectID, "project", "", "Project id")
	fs.StringVar(&f.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	fs.StringVar(&f.AssignedTo, "assignee", "", "Assignee user id")
	taskPriorityFlag(fs, &f.Priority, "Priority")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("project")
	return withRoute(cmd, route.Tasks)
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var (
		f      taskFields
		status domain.TaskStatus
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			patch := domain.TaskPatch{
				Title:       changedString(fs, "title", f.Title),
				Description: changedString(fs, "description", f.Description),
				Status:      changedEnum(fs, "status", status),
				Priority:    changedEnum(fs, "priority", f.Priority),
				DueDate:     changedString(fs, "due", f.DueDate),
				AssignedTo:  changedString(fs, "assignee", f.AssignedTo),
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			t, err := app.Tasks.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine("Updated task "+t.Title))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.Title, "title", "", "New title")
	fs.StringVar(&f.Description, "description", "", "New description")
	fs.StringVar(&f.DueDate, "due", "", "New due date (YYYY-MM-DD, empty to clear)")
	fs.StringVar(&f.AssignedTo, "assignee", "", "New assignee user id (empty to unassign)")
	taskStatusFlag(fs, &status, "New status")
	taskPriorityFlag(fs, &f.Priority, "New priority")
	return withRoute(cmd, route.TaskDetail)
}

func newTaskStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a task to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseTaskStatus(args[1])
			if err != nil {
				return err
			}
			t, err := app.Tasks.UpdateStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.SuccessLine(t.Title+" is now"), formatter.TaskStatusPill(t.Status))
			return nil
		},
	}
	return withRoute(cmd, route.TaskDetail)
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				confirmed := false
				if err := confirmForm("Delete task "+args[0]+"?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Tasks.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.SuccessLine("Deleted task "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return withRoute(cmd, route.TaskDetail)
}
