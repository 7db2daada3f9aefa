package testutil

import (
	"fmt"
	"sync/atomic"
)

var fixtureCounter atomic.Int64

// FakeProject seeds a project in the fake backend.
type FakeProject struct {
	ID          string
	Name        string
	Description string
	Status      string
}

// FakeTask seeds a task in the fake backend. Dates are sent verbatim.
type FakeTask struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
	ProjectID   string
	AssignedTo  string
}

// Project options
type ProjectOption func(*FakeProject)

func WithProjectStatus(s string) ProjectOption {
	return func(p *FakeProject) { p.Status = s }
}

func WithDescription(d string) ProjectOption {
	return func(p *FakeProject) { p.Description = d }
}

func NewTestProject(name string, opts ...ProjectOption) FakeProject {
	if name == "" {
		name = fmt.Sprintf("Project %d", fixtureCounter.Add(1))
	}
	p := FakeProject{Name: name, Status: "ACTIVE"}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// Task options
type TaskOption func(*FakeTask)

func WithTaskStatus(s string) TaskOption {
	return func(t *FakeTask) { t.Status = s }
}

func WithPriority(p string) TaskOption {
	return func(t *FakeTask) { t.Priority = p }
}

func WithDueDate(d string) TaskOption {
	return func(t *FakeTask) { t.DueDate = d }
}

func WithAssignee(userID string) TaskOption {
	return func(t *FakeTask) { t.AssignedTo = userID }
}

func NewTestTask(projectID, title string, opts ...TaskOption) FakeTask {
	if title == "" {
		title = fmt.Sprintf("Task %d", fixtureCounter.Add(1))
	}
	t := FakeTask{Title: title, ProjectID: projectID, Status: "TODO", Priority: "MEDIUM"}
	for _, o := range opts {
		o(&t)
	}
	return t
}
