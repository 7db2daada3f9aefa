package service

import (
	"context"
	"net/url"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// Backend is the transport the services call through. *api.Client satisfies it.
type Backend interface {
	Do(ctx context.Context, method, path string, query url.Values, in, out any) error
}

type AuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) error
	Profile(ctx context.Context) (*domain.User, error)
}

type ProjectService interface {
	List(ctx context.Context, filter domain.ProjectFilter) (*domain.Page[domain.Project], error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	List(ctx context.Context, filter domain.TaskFilter) (*domain.Page[domain.Task], error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TeamService interface {
	Members(ctx context.Context) ([]domain.TeamMember, error)
	MemberTasks(ctx context.Context, memberID string) ([]domain.Task, error)
}
