package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and display format of task due dates.
const DateLayout = "2006-01-02"

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     string
	ProjectID   string
	AssignedTo  string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time

	// Optional expansions some endpoints include.
	Project  *Project
	Assignee *User
}

// Due parses DueDate. Accepts a plain date or a full RFC3339 timestamp.
func (t *Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(DateLayout, t.DueDate); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, t.DueDate); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// Overdue reports whether an unfinished task's due date is strictly before today.
func (t *Task) Overdue(today time.Time) bool {
	if t.Status == TaskCompleted {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	y, m, d := today.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := due.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Before(startOfToday)
}

// TaskInput carries the fields for creating a task.
type TaskInput struct {
	Title       string
	Description string
	ProjectID   string
	Priority    TaskPriority
	DueDate     string
	AssignedTo  string
}

// Validate checks required fields and defaults an empty priority to MEDIUM.
func (in *TaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if in.ProjectID == "" {
		return fmt.Errorf("task project is required")
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if _, err := ParseTaskPriority(string(in.Priority)); err != nil {
		return err
	}
	return ValidateDueDate(in.DueDate)
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *string
	AssignedTo  *string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && p.AssignedTo == nil
}

// ValidateDueDate accepts empty or a YYYY-MM-DD date string.
func ValidateDueDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("due date %q: use YYYY-MM-DD format", s)
	}
	return nil
}

// TaskStats summarizes a task list for the dashboard.
type TaskStats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// ComputeTaskStats counts completed, pending and overdue tasks as of today.
func ComputeTaskStats(tasks []Task, today time.Time) TaskStats {
	s := TaskStats{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Status == TaskCompleted {
			s.Completed++
			continue
		}
		s.Pending++
		if tasks[i].Overdue(today) {
			s.Overdue++
		}
	}
	return s
}
