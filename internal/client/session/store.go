package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/useradmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/useradmin/internal/dbx"
)

const (
	keyToken = "token"
	keyEmail = "email"
)

// Session is the authenticated state. A zero Token means unauthenticated.
type Session struct {
	Token string
	Email string
}

// Store holds the single process-wide session.
//
// Clear must leave the store unauthenticated even when it returns an error:
// the error only reports that the persisted copy could not be removed.
type Store interface {
	Token() (string, bool)
	Current() (Session, bool)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MemoryStore is a Store without persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token, m.current.Token != ""
}

func (m *MemoryStore) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current.Token != ""
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	return nil
}

// SQLiteStore persists the session in the metadata table of the local
// database and serves reads from memory.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.RWMutex
	current Session
}

// OpenSQLiteStore loads the persisted session, if any, from db.
func OpenSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	repo := metadata.NewSQLiteRepository(db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	email, err := repo.Get(ctx, keyEmail)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &SQLiteStore{db: db, current: Session{Token: string(token), Email: string(email)}}, nil
}

func (s *SQLiteStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token, s.current.Token != ""
}

func (s *SQLiteStore) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current.Token != ""
}

// Save writes token and e-mail in one transaction. The in-memory copy is
// only replaced once the transaction commits.
func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyEmail, []byte(sess.Email))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.current = sess
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if err := metadata.NewSQLiteRepository(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
