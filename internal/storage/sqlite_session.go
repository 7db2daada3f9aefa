package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// storedUser is the JSON shape of the cached user entry.
type storedUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// SQLiteSessionStorage implements SessionStorage on the session_entries table.
type SQLiteSessionStorage struct {
	db  db.DBTX
	uow db.UnitOfWork

	mu        sync.Mutex
	nextSubID int
	subs      map[int]func(domain.Session)
}

// NewSQLiteSessionStorage creates storage over conn; writes go through uow.
func NewSQLiteSessionStorage(conn db.DBTX, uow db.UnitOfWork) *SQLiteSessionStorage {
	return &SQLiteSessionStorage{
		db:   conn,
		uow:  uow,
		subs: make(map[int]func(domain.Session)),
	}
}

// Load returns the persisted session. A missing token yields an empty
// session. An unreadable user entry is dropped; the token alone still
// counts as authenticated.
func (s *SQLiteSessionStorage) Load(ctx context.Context) (domain.Session, error) {
	token, err := s.get(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{Token: token}
	raw, err := s.get(ctx, KeyUser)
	switch {
	case errors.Is(err, ErrNotFound):
		return sess, nil
	case err != nil:
		return domain.Session{}, err
	}

	var su storedUser
	if err := json.Unmarshal([]byte(raw), &su); err == nil && su.ID != "" {
		sess.User = &domain.User{ID: su.ID, Email: su.Email, Name: su.Name, CreatedAt: su.CreatedAt}
	}
	return sess, nil
}

// Token returns the persisted bearer token, or "" when logged out.
func (s *SQLiteSessionStorage) Token(ctx context.Context) (string, error) {
	token, err := s.get(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

// Save writes token and user in one transaction. Saving a session without a
// token is the same as Clear.
func (s *SQLiteSessionStorage) Save(ctx context.Context, sess domain.Session) error {
	if !sess.Authenticated() {
		return s.Clear(ctx)
	}

	var userJSON []byte
	if sess.User != nil {
		var err error
		userJSON, err = json.Marshal(storedUser{
			ID:        sess.User.ID,
			Email:     sess.User.Email,
			Name:      sess.User.Name,
			CreatedAt: sess.User.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("encoding user: %w", err)
		}
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := upsert(ctx, tx, KeyToken, sess.Token); err != nil {
			return err
		}
		if userJSON == nil {
			_, err := tx.ExecContext(ctx, `DELETE FROM session_entries WHERE key = ?`, KeyUser)
			return err
		}
		return upsert(ctx, tx, KeyUser, string(userJSON))
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.notify(cloneSession(sess))
	return nil
}

// Clear removes both entries. Clearing an empty store is not an error.
func (s *SQLiteSessionStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_entries WHERE key IN (?, ?)`, KeyToken, KeyUser)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.notify(domain.Session{})
	return nil
}

func (s *SQLiteSessionStorage) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *SQLiteSessionStorage) notify(sess domain.Session) {
	s.mu.Lock()
	fns := make([]func(domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(cloneSession(sess))
	}
}

func (s *SQLiteSessionStorage) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("session entry %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading session entry %s: %w", key, err)
	}
	return value, nil
}

func upsert(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO session_entries (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing session entry %s: %w", key, err)
	}
	return nil
}

func cloneSession(s domain.Session) domain.Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
