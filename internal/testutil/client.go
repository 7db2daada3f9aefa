package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/storage"
)

// NewTestClient builds an API client for baseURL with a short timeout.
func NewTestClient(t *testing.T, baseURL string, creds api.Credentials, nav api.Router, opts ...api.Option) *api.Client {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.StateDir = t.TempDir()
	cfg.RequestTimeoutMs = 5000
	return api.New(cfg, creds, nav, opts...)
}

// SignIn seeds a user in the backend and persists a valid session for it
// in store. Returns the user id.
func SignIn(t *testing.T, b *FakeBackend, store storage.SessionStorage, email string) string {
	t.Helper()
	id := b.AddUser(email, "secret", "User "+email)
	sess := domain.Session{
		Token: b.IssueToken(id, time.Hour),
		User:  &domain.User{ID: id, Email: email, Name: "User " + email},
	}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("saving session: %v", err)
	}
	return id
}
