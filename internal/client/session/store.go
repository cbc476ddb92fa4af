// Package session holds the operator's credential.
//
// A Store is the persistence port for the bearer token (SQLite on disk in the
// console, an in-memory map in tests). Session wraps a Store and is what the
// API client, the auth service and the auth gate depend on.
package session

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/outreach-console/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/dmitrijs2005/outreach-console/internal/dbx"
)

// Store persists at most one credential.
type Store interface {
	// Get returns the current credential; ok is false when none is stored.
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// OperatorStore is implemented by stores that also remember who logged in.
type OperatorStore interface {
	Store
	Save(ctx context.Context, token, operator string) error
	Operator(ctx context.Context) (string, bool, error)
}

// SQLiteStore keeps the credential in the local metadata table, so it
// survives a restart of the console until an explicit logout.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool, error) {
	return metadata.NewSQLiteRepository(s.db).GetString(ctx, common.AccessTokenKey)
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	return metadata.NewSQLiteRepository(s.db).SetString(ctx, common.AccessTokenKey, token)
}

// Save stores the credential together with the operator's email in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, token, operator string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.SetString(ctx, common.AccessTokenKey, token); err != nil {
			return err
		}
		if operator == "" {
			return repo.Delete(ctx, common.OperatorEmailKey)
		}
		return repo.SetString(ctx, common.OperatorEmailKey, operator)
	})
}

func (s *SQLiteStore) Operator(ctx context.Context) (string, bool, error) {
	return metadata.NewSQLiteRepository(s.db).GetString(ctx, common.OperatorEmailKey)
}

// Clear removes the credential and the operator email.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AccessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.OperatorEmailKey)
	})
}

// MemoryStore is a process-local Store, safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	operator string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != "", nil
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Save(_ context.Context, token, operator string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.operator = token, operator
	return nil
}

func (m *MemoryStore) Operator(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.operator, m.operator != "", nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.operator = "", ""
	return nil
}
