package wire

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// Project is the backend's project record.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	Tasks       []Task `json:"tasks,omitempty"`
}

// FromProject converts a wire project to the domain type.
func FromProject(p Project) domain.Project {
	out := domain.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      domain.ProjectStatus(p.Status),
		CreatedAt:   parseTime(p.CreatedAt),
		UpdatedAt:   parseTime(p.UpdatedAt),
	}
	if len(p.Tasks) > 0 {
		out.Tasks = make([]domain.Task, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			out.Tasks = append(out.Tasks, FromTask(t))
		}
	}
	return out
}

// DecodeProject decodes a bare or {"project": ...} wrapped project.
func DecodeProject(data []byte) (*domain.Project, error) {
	var p Project
	if err := json.Unmarshal(unwrap(data, "project"), &p); err != nil {
		return nil, fmt.Errorf("decoding project: %w", err)
	}
	out := FromProject(p)
	return &out, nil
}

// DecodeProjectPage decodes a page of projects.
func DecodeProjectPage(data []byte) (*domain.Page[domain.Project], error) {
	items, meta, err := decodeList[Project](data, "projects")
	if err != nil {
		return nil, err
	}
	page := newPage[domain.Project](meta, len(items))
	for _, p := range items {
		page.Items = append(page.Items, FromProject(p))
	}
	return page, nil
}

// ProjectBody is the create payload for projects.
type ProjectBody struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// NewProjectBody builds a create payload from validated input.
func NewProjectBody(in domain.ProjectInput) ProjectBody {
	return ProjectBody{Name: in.Name, Description: in.Description, Status: string(in.Status)}
}

// ProjectPatchBody is the update payload; nil fields are omitted.
type ProjectPatchBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// NewProjectPatchBody builds an update payload.
func NewProjectPatchBody(p domain.ProjectPatch) ProjectPatchBody {
	body := ProjectPatchBody{Name: p.Name, Description: p.Description}
	if p.Status != nil {
		s := string(*p.Status)
		body.Status = &s
	}
	return body
}

func newPage[T any](meta listEnvelope, n int) *domain.Page[T] {
	page := &domain.Page[T]{
		Items:       make([]T, 0, n),
		TotalPages:  meta.TotalPages,
		CurrentPage: meta.CurrentPage,
	}
	if page.CurrentPage <= 0 {
		page.CurrentPage = 1
	}
	if page.TotalPages < page.CurrentPage {
		page.TotalPages = page.CurrentPage
	}
	return page
}
