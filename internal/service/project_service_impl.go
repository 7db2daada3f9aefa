package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/wire"
)

type projectService struct {
	backend  Backend
	observer UseCaseObserver
}

func NewProjectService(backend Backend, observers ...UseCaseObserver) ProjectService {
	return &projectService{backend: backend, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) List(ctx context.Context, filter domain.ProjectFilter) (*domain.Page[domain.Project], error) {
	var body raw
	if err := s.backend.Do(ctx, http.MethodGet, "projects", wire.ProjectQuery(filter), nil, &body); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return wire.DecodeProjectPage(body)
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if err := requireID("project", id); err != nil {
		return nil, err
	}
	var body raw
	if err := s.backend.Do(ctx, http.MethodGet, entityPath("projects", id), nil, nil, &body); err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	if err := requireBody(body, "project"); err != nil {
		return nil, err
	}
	return wire.DecodeProject(body)
}

func (s *projectService) Create(ctx context.Context, in domain.ProjectInput) (p *domain.Project, err error) {
	defer observe(ctx, s.observer, "create-project", time.Now(), map[string]any{"name": in.Name}, &err)

	if err = in.Validate(); err != nil {
		return nil, err
	}
	var body raw
	if err = s.backend.Do(ctx, http.MethodPost, "projects", nil, wire.NewProjectBody(in), &body); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	if err = requireBody(body, "project"); err != nil {
		return nil, err
	}
	return wire.DecodeProject(body)
}

func (s *projectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (p *domain.Project, err error) {
	defer observe(ctx, s.observer, "update-project", time.Now(), map[string]any{"id": id}, &err)

	if err = requireID("project", id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("nothing to update")
	}
	if patch.Status != nil {
		var st domain.ProjectStatus
		if st, err = domain.ParseProjectStatus(string(*patch.Status)); err != nil {
			return nil, err
		}
		patch.Status = &st
	}
	var body raw
	if err = s.backend.Do(ctx, http.MethodPut, entityPath("projects", id), nil, wire.NewProjectPatchBody(patch), &body); err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	if len(body) == 0 {
		return s.Get(ctx, id)
	}
	return wire.DecodeProject(body)
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-project", time.Now(), map[string]any{"id": id}, &err)

	if err = requireID("project", id); err != nil {
		return err
	}
	if err = s.backend.Do(ctx, http.MethodDelete, entityPath("projects", id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}
