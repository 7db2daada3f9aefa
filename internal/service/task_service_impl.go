package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/wire"
)

type taskService struct {
	backend  Backend
	observer UseCaseObserver
}

func NewTaskService(backend Backend, observers ...UseCaseObserver) TaskService {
	return &taskService{backend: backend, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) List(ctx context.Context, filter domain.TaskFilter) (*domain.Page[domain.Task], error) {
	var body raw
	if err := s.backend.Do(ctx, http.MethodGet, "tasks", wire.TaskQuery(filter), nil, &body); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return wire.DecodeTaskPage(body)
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	if err := requireID("task", id); err != nil {
		return nil, err
	}
	var body raw
	if err := s.backend.Do(ctx, http.MethodGet, entityPath("tasks", id), nil, nil, &body); err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	if err := requireBody(body, "task"); err != nil {
		return nil, err
	}
	return wire.DecodeTask(body)
}

func (s *taskService) Create(ctx context.Context, in domain.TaskInput) (t *domain.Task, err error) {
	defer observe(ctx, s.observer, "create-task", time.Now(), map[string]any{"project_id": in.ProjectID}, &err)

	if err = in.Validate(); err != nil {
		return nil, err
	}
	var body raw
	if err = s.backend.Do(ctx, http.MethodPost, "tasks", nil, wire.NewTaskBody(in), &body); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	if err = requireBody(body, "task"); err != nil {
		return nil, err
	}
	return wire.DecodeTask(body)
}

func (s *taskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (t *domain.Task, err error) {
	defer observe(ctx, s.observer, "update-task", time.Now(), map[string]any{"id": id}, &err)

	if err = requireID("task", id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("nothing to update")
	}
	if patch.Status != nil {
		var st domain.TaskStatus
		if st, err = domain.ParseTaskStatus(string(*patch.Status)); err != nil {
			return nil, err
		}
		patch.Status = &st
	}
	if patch.Priority != nil {
		var pr domain.TaskPriority
		if pr, err = domain.ParseTaskPriority(string(*patch.Priority)); err != nil {
			return nil, err
		}
		patch.Priority = &pr
	}
	if patch.DueDate != nil {
		if err = domain.ValidateDueDate(*patch.DueDate); err != nil {
			return nil, err
		}
	}
	var body raw
	if err = s.backend.Do(ctx, http.MethodPut, entityPath("tasks", id), nil, wire.NewTaskPatchBody(patch), &body); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	if len(body) == 0 {
		return s.Get(ctx, id)
	}
	return wire.DecodeTask(body)
}

func (s *taskService) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (t *domain.Task, err error) {
	defer observe(ctx, s.observer, "update-task-status", time.Now(), map[string]any{"id": id, "status": string(status)}, &err)

	if err = requireID("task", id); err != nil {
		return nil, err
	}
	if status, err = domain.ParseTaskStatus(string(status)); err != nil {
		return nil, err
	}
	var body raw
	path := entityPath("tasks", id) + "/status"
	if err = s.backend.Do(ctx, http.MethodPatch, path, nil, wire.StatusBody{Status: string(status)}, &body); err != nil {
		return nil, fmt.Errorf("updating status of task %s: %w", id, err)
	}
	if len(body) == 0 {
		return s.Get(ctx, id)
	}
	return wire.DecodeTask(body)
}

func (s *taskService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-task", time.Now(), map[string]any{"id": id}, &err)

	if err = requireID("task", id); err != nil {
		return err
	}
	if err = s.backend.Do(ctx, http.MethodDelete, entityPath("tasks", id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}
