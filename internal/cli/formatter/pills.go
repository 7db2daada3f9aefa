package formatter

import (
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// ProjectStatusPill returns a colored project status indicator.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskStatusPill returns a colored task status indicator.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return StyleBlue.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleYellow.Render("● In progress")
	case domain.TaskCompleted:
		return StyleGreen.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge returns a colored priority label.
func PriorityBadge(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Bold(true).Render("URGENT")
	case domain.PriorityHigh:
		return StyleRed.Render("High")
	case domain.PriorityMedium:
		return StyleYellow.Render("Medium")
	case domain.PriorityLow:
		return StyleDim.Render("Low")
	default:
		return StyleDim.Render(string(p))
	}
}

// DueLabel renders a task's due date relative to now, red when overdue.
func DueLabel(t *domain.Task, now time.Time) string {
	due, ok := t.Due()
	if !ok {
		return Dim("--")
	}
	text := RelativeDateFrom(due, now)
	switch {
	case t.Overdue(now):
		return StyleRed.Render(text)
	case t.Status == domain.TaskCompleted:
		return StyleDim.Render(text)
	}
	return StyleFg.Render(text)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
