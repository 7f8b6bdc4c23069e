package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"txdash/internal/core"
)

// Store keeps the record set in memory. The slice is replaced wholesale
// and never mutated in place, so reads only need a snapshot under the
// lock.
type Store struct {
	mu    sync.RWMutex
	items []core.Transaction
}

func New(records []core.Transaction) *Store {
	s := &Store{}
	if len(records) > 0 {
		s.items = append([]core.Transaction(nil), records...)
	}
	return s
}

// NewFromFile seeds a store from a JSON array on disk. A missing file
// yields an empty store.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var records []core.Transaction
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return New(records), nil
}

// TransactionsByMonth implements store.Reader.
func (s *Store) TransactionsByMonth(_ context.Context, month int) ([]core.Transaction, error) {
	s.mu.RLock()
	snapshot := s.items
	s.mu.RUnlock()

	return core.FilterByMonth(snapshot, month), nil
}

// Count implements store.Reader.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// ReplaceAll implements store.Replacer by swapping in a copy of the new
// set under the lock.
func (s *Store) ReplaceAll(_ context.Context, records []core.Transaction) error {
	fresh := append([]core.Transaction(nil), records...)

	s.mu.Lock()
	s.items = fresh
	s.mu.Unlock()
	return nil
}
