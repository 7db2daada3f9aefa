package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
)

var (
	taskHeaders          = []string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE", "PROJECT"}
	taskHeadersNoProject = []string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE"}
)

func taskRows(tasks []domain.Task, now time.Time, withProject bool) [][]string {
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		row := []string{
			TruncID(t.ID),
			Truncate(t.Title, 40),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			DueLabel(t, now),
		}
		if withProject {
			project := TruncID(t.ProjectID)
			if t.Project != nil && t.Project.Name != "" {
				project = Dim(Truncate(t.Project.Name, 20))
			}
			row = append(row, project)
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatTaskList renders one page of tasks.
func FormatTaskList(page *domain.Page[domain.Task], now time.Time) string {
	if len(page.Items) == 0 {
		return Dim("No tasks found.") + "\n"
	}
	return RenderTable(taskHeaders, taskRows(page.Items, now, true)) +
		Pager(page.CurrentPage, page.TotalPages) + "\n"
}

// FormatTasks renders an unpaginated task list.
func FormatTasks(tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	return RenderTable(taskHeaders, taskRows(tasks, now, true))
}

// FormatTaskTable renders tasks with a cursor for the TUI.
func FormatTaskTable(tasks []domain.Task, cursor int, now time.Time) string {
	return RenderTableCursor(taskHeaders, taskRows(tasks, now, true), cursor)
}

// FormatTaskDetail renders all fields of a task. assignee is the resolved
// display name, or "" when unassigned.
func FormatTaskDetail(t *domain.Task, assignee string, now time.Time) string {
	var b strings.Builder
	b.WriteString(Title(t.Title) + "\n")
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-9s", label+":")), value)
	}
	field("ID", t.ID)
	field("Status", TaskStatusPill(t.Status))
	field("Priority", PriorityBadge(t.Priority))
	due := Dim("--")
	if t.DueDate != "" {
		due = t.DueDate + "  " + DueLabel(t, now)
	}
	field("Due", due)
	project := t.ProjectID
	if t.Project != nil && t.Project.Name != "" {
		project = t.Project.Name
	}
	field("Project", project)
	if assignee == "" {
		assignee = Dim("unassigned")
	}
	field("Assignee", assignee)
	field("Updated", HumanTimestamp(t.UpdatedAt, now))
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	return b.String()
}

// FormatStats renders dashboard counters in boxes.
func FormatStats(s domain.TaskStats) string {
	cell := func(label string, n int, style func(...string) string) string {
		return RenderBox("", Dim(label)+"\n"+style(fmt.Sprintf("%d", n)))
	}
	return joinHorizontal(
		cell("Total", s.Total, StyleBold.Render),
		cell("Completed", s.Completed, StyleGreen.Render),
		cell("Pending", s.Pending, StyleYellow.Render),
		cell("Overdue", s.Overdue, StyleRed.Render),
	)
}
