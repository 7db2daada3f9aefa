package wire

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// Task is the backend's task record. DueDate passes through verbatim.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"`
	ProjectID   string   `json:"project_id"`
	AssignedTo  string   `json:"assigned_to,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Project     *Project `json:"project,omitempty"`
	Assignee    *User    `json:"assignee,omitempty"`
}

// FromTask converts a wire task to the domain type.
func FromTask(t Task) domain.Task {
	out := domain.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      domain.TaskStatus(t.Status),
		Priority:    domain.TaskPriority(t.Priority),
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   parseTime(t.CreatedAt),
		UpdatedAt:   parseTime(t.UpdatedAt),
	}
	if t.Project != nil {
		p := FromProject(*t.Project)
		out.Project = &p
		if out.ProjectID == "" {
			out.ProjectID = p.ID
		}
	}
	if t.Assignee != nil {
		u := FromUser(*t.Assignee)
		out.Assignee = &u
		if out.AssignedTo == "" {
			out.AssignedTo = u.ID
		}
	}
	return out
}

// DecodeTask decodes a bare or {"task": ...} wrapped task.
func DecodeTask(data []byte) (*domain.Task, error) {
	var t Task
	if err := json.Unmarshal(unwrap(data, "task"), &t); err != nil {
		return nil, fmt.Errorf("decoding task: %w", err)
	}
	out := FromTask(t)
	return &out, nil
}

// DecodeTaskPage decodes a page of tasks.
func DecodeTaskPage(data []byte) (*domain.Page[domain.Task], error) {
	items, meta, err := decodeList[Task](data, "tasks")
	if err != nil {
		return nil, err
	}
	page := newPage[domain.Task](meta, len(items))
	for _, t := range items {
		page.Items = append(page.Items, FromTask(t))
	}
	return page, nil
}

// DecodeTasks decodes an unpaginated task list.
func DecodeTasks(data []byte) ([]domain.Task, error) {
	page, err := DecodeTaskPage(data)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// TaskBody is the create payload for tasks.
type TaskBody struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"project_id"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// NewTaskBody builds a create payload from validated input.
func NewTaskBody(in domain.TaskInput) TaskBody {
	return TaskBody{
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		Priority:    string(in.Priority),
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
	}
}

// TaskPatchBody is the update payload; nil fields are omitted.
type TaskPatchBody struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

// NewTaskPatchBody builds an update payload.
func NewTaskPatchBody(p domain.TaskPatch) TaskPatchBody {
	body := TaskPatchBody{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		AssignedTo:  p.AssignedTo,
	}
	if p.Status != nil {
		s := string(*p.Status)
		body.Status = &s
	}
	if p.Priority != nil {
		s := string(*p.Priority)
		body.Priority = &s
	}
	return body
}

// StatusBody is the PATCH tasks/:id/status payload.
type StatusBody struct {
	Status string `json:"status"`
}
