package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	Tasks       []Task
}

// DisplayID returns a short identifier for display, truncating long ids to 8 characters.
func (p *Project) DisplayID() string {
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}

// ProjectInput carries the fields for creating a project.
type ProjectInput struct {
	Name        string
	Description string
	Status      ProjectStatus
}

// Validate checks required fields and defaults an empty status to ACTIVE.
func (in *ProjectInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if in.Status == "" {
		in.Status = ProjectActive
	}
	if _, err := ParseProjectStatus(string(in.Status)); err != nil {
		return err
	}
	return nil
}

// ProjectPatch is a partial project update. Nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil
}
