package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/wire"
)

type authService struct {
	backend  Backend
	observer UseCaseObserver
}

func NewAuthService(backend Backend, observers ...UseCaseObserver) AuthService {
	return &authService{backend: backend, observer: useCaseObserverOrNoop(observers)}
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (res *domain.AuthResult, err error) {
	defer observe(ctx, s.observer, "login", time.Now(), map[string]any{"email": req.Email}, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}
	var body raw
	if err = s.backend.Do(ctx, http.MethodPost, "auth/login", nil, wire.NewLoginBody(req), &body); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return wire.DecodeAuthResult(body)
}

func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (err error) {
	defer observe(ctx, s.observer, "register", time.Now(), map[string]any{"email": req.Email}, &err)

	if err = req.Validate(); err != nil {
		return err
	}
	if err = s.backend.Do(ctx, http.MethodPost, "auth/register", nil, wire.NewRegisterBody(req), nil); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context) (*domain.User, error) {
	var body raw
	if err := s.backend.Do(ctx, http.MethodGet, "auth/profile", nil, nil, &body); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if err := requireBody(body, "profile"); err != nil {
		return nil, err
	}
	return wire.DecodeUser(body)
}
