package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Preparer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// StatementCache keeps prepared statements keyed by their rendered text.
// Evicted statements are closed, so a caller still holding one may see
// "sql: statement is closed" and has to run the text unprepared.
type StatementCache struct {
	cache *lru.Cache[string, *sql.Stmt]
	mu    sync.Mutex
}

func NewStatementCache(size int) (*StatementCache, error) {
	c, err := lru.NewWithEvict(size, func(_ string, stmt *sql.Stmt) {
		stmt.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("statement cache: %w", err)
	}
	return &StatementCache{cache: c}, nil
}

func (s *StatementCache) Get(text string) (*sql.Stmt, bool) {
	return s.cache.Get(text)
}

func (s *StatementCache) GetOrPrepare(ctx context.Context, db Preparer, text string) (*sql.Stmt, error) {
	// Fast path
	if stmt, ok := s.cache.Get(text); ok {
		return stmt, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the lock
	if stmt, ok := s.cache.Get(text); ok {
		return stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, text)
	if err != nil {
		return nil, err
	}

	s.cache.Add(text, stmt)
	return stmt, nil
}

func (s *StatementCache) Len() int { return s.cache.Len() }

// Close closes every cached statement.
func (s *StatementCache) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	return nil
}
