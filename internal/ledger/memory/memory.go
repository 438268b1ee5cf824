// Package memory is the in-memory ledger backend, used for development and
// as the test double for the real stores.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finbot/internal/core"
	"finbot/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

type Store struct {
	mu   sync.Mutex
	rows []core.LedgerRow
}

func New() *Store {
	return &Store{}
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row core.LedgerRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Snapshot returns a copy of all rows in append order.
func (s *Store) Snapshot(_ context.Context) ([]core.LedgerRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.LedgerRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// Clear drops every row.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

func (s *Store) Close() error { return nil }
