package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/taskboard/internal/domain"
)

var fmtNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func project(name string, status domain.ProjectStatus, desc string) domain.Project {
	return domain.Project{ID: "proj-" + name, Name: name, Status: status, Description: desc}
}

func task(title string, mod func(*domain.Task)) domain.Task {
	t := domain.Task{
		ID:        "task-" + title,
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
		ProjectID: "p1",
	}
	if mod != nil {
		mod(&t)
	}
	return t
}

func TestFormatProjectList(t *testing.T) {
	page := &domain.Page[domain.Project]{
		Items: []domain.Project{
			project("Website", domain.ProjectActive, "Marketing site"),
			project("Mobile", domain.ProjectOnHold, ""),
		},
		CurrentPage: 1,
		TotalPages:  3,
	}

	out := FormatProjectList(page, fmtNow)
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "Marketing site")
	assert.Contains(t, out, "On hold")
	assert.Contains(t, out, "page 1 of 3")
}

func TestFormatProjectList_Empty(t *testing.T) {
	out := FormatProjectList(&domain.Page[domain.Project]{CurrentPage: 1, TotalPages: 1}, fmtNow)
	assert.Contains(t, out, "No projects found.")
}

func TestFormatProjectDetail(t *testing.T) {
	p := project("Website", domain.ProjectActive, "")
	p.Tasks = []domain.Task{task("Write copy", nil)}

	out := FormatProjectDetail(&p, fmtNow)
	assert.Contains(t, out, "Website")
	assert.NotContains(t, out, "WEBSITE")
	assert.Contains(t, out, "TASKS (1)")
	assert.Contains(t, out, "Write copy")

	p.Tasks = nil
	assert.Contains(t, FormatProjectDetail(&p, fmtNow), "No tasks in this project.")
}

func TestFormatTaskList_ShowsDueAndOverdue(t *testing.T) {
	page := &domain.Page[domain.Task]{
		Items: []domain.Task{
			task("Late", func(t *domain.Task) { t.DueDate = "2026-03-08" }),
			task("Soon", func(t *domain.Task) {
				t.DueDate = "2026-03-11"
				t.Priority = domain.PriorityUrgent
			}),
			task("Someday", nil),
		},
		CurrentPage: 2,
		TotalPages:  2,
	}

	out := FormatTaskList(page, fmtNow)
	assert.Contains(t, out, "2d ago")
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "URGENT")
	assert.Contains(t, out, "page 2 of 2")
}

func TestFormatTaskDetail(t *testing.T) {
	tk := task("Ship it", func(t *domain.Task) {
		t.Status = domain.TaskInProgress
		t.Description = "Deploy the release"
	})

	out := FormatTaskDetail(&tk, "Ann", fmtNow)
	assert.Contains(t, out, "Ship it")
	assert.NotContains(t, out, "SHIP IT")
	assert.Contains(t, out, "In progress")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Deploy the release")

	assert.Contains(t, FormatTaskDetail(&tk, "", fmtNow), "unassigned")
}

func TestFormatMembers(t *testing.T) {
	out := FormatMembers([]domain.TeamMember{
		{ID: "u1", Name: "Ann", Email: "ann@example.com"},
		{ID: "u2", Email: "bob@example.com"},
	})
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, FormatMembers(nil), "No team members.")
}

func TestFormatProfile(t *testing.T) {
	u := &domain.User{ID: "u1", Email: "ann@example.com", Name: "Ann"}
	future := fmtNow.Add(time.Hour)
	past := fmtNow.Add(-time.Hour)

	assert.Contains(t, FormatProfile(u, nil, fmtNow), "ann@example.com")
	assert.Contains(t, FormatProfile(u, &future, fmtNow), "Session expires")
	assert.Contains(t, FormatProfile(u, &past, fmtNow), "Session expired")
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(domain.TaskStats{Total: 4, Completed: 1, Pending: 3, Overdue: 2})
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "4")
}
