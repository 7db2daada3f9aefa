// Package session owns the in-memory authentication state. The durable copy
// lives in storage; the store mirrors it through a storage subscription, so a
// logout forced by the HTTP client shows up here without a second writer.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/alexanderramin/taskboard/internal/storage"
)

// Router is the navigation surface the store drives after auth changes.
type Router interface {
	Navigate(path string)
}

type Store struct {
	storage storage.SessionStorage
	auth    service.AuthService
	nav     Router

	mu          sync.RWMutex
	current     domain.Session
	unsubscribe func()
}

// New creates a store mirroring st. Call Init before reading state.
func New(st storage.SessionStorage, auth service.AuthService, nav Router) *Store {
	s := &Store{storage: st, auth: auth, nav: nav}
	s.unsubscribe = st.Subscribe(s.set)
	return s
}

func (s *Store) set(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
}

// Init loads the persisted session. A stored token with an unreadable user
// still counts as authenticated.
func (s *Store) Init(ctx context.Context) error {
	sess, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	s.set(sess)
	return nil
}

// Close stops mirroring storage.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Login authenticates, persists token and user together, then navigates to
// the dashboard. On failure nothing changes and the error is returned.
func (s *Store) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	res, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	user := res.User
	if err := s.storage.Save(ctx, domain.Session{Token: res.Token, User: &user}); err != nil {
		return nil, err
	}
	s.nav.Navigate(route.Dashboard)
	return &user, nil
}

// Register creates an account and sends the user to the login page. It never
// authenticates.
func (s *Store) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := s.auth.Register(ctx, req); err != nil {
		return err
	}
	s.nav.Navigate(route.Login)
	return nil
}

// Logout clears the session and navigates to login. Safe to call when
// already logged out.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return err
	}
	s.nav.Navigate(route.Login)
	return nil
}

// RefreshProfile reloads the current user from the backend and updates the
// cached copy while the same token is still active.
func (s *Store) RefreshProfile(ctx context.Context) (*domain.User, error) {
	token := s.Snapshot().Token
	u, err := s.auth.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" && s.Snapshot().Token == token {
		if err := s.storage.Save(ctx, domain.Session{Token: token, User: u}); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.Session{Token: s.current.Token}
	if s.current.User != nil {
		u := *s.current.User
		out.User = &u
	}
	return out
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Authenticated()
}

// User returns the cached user, or nil.
func (s *Store) User() *domain.User {
	return s.Snapshot().User
}

// ExpiresAt reads the exp claim of a JWT token without verifying it. Opaque
// tokens and tokens without exp report false.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Snapshot().Token
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
