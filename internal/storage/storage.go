// Package storage persists the client session (bearer token and cached user)
// in SQLite so it survives restarts.
package storage

import (
	"context"
	"errors"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// Entry keys in the session_entries table.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("not found")

// SessionStorage is durable storage for the token/user pair. Both entries
// are written together and cleared together.
type SessionStorage interface {
	Load(ctx context.Context) (domain.Session, error)
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error

	// Subscribe registers fn to run after every Save or Clear with the new
	// session. The returned func removes the subscription.
	Subscribe(fn func(domain.Session)) (unsubscribe func())
}
