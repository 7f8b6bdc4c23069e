package backend

import (
	"fmt"

	"txdash/internal/config"
	"txdash/internal/log"
	"txdash/internal/store"
	"txdash/internal/store/memory"
	"txdash/internal/storage"
)

// Type represents the record store backend kind.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown. May be nil.
type CleanupFunc func() error

// Result contains the constructed store and its cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// New builds the record store selected by the configuration.
func New(cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentBackend)
	}

	backendType := Type(cfg.DataBackend)
	switch backendType {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		var (
			st  *memory.Store
			err error
		)
		if cfg.MemorySeedFile != "" {
			st, err = memory.NewFromFile(cfg.MemorySeedFile)
			if err != nil {
				return nil, fmt.Errorf("initialize memory store: %w", err)
			}
		} else {
			st = memory.New(nil)
		}
		logger.Info("Initialized memory backend", "seed_file", cfg.MemorySeedFile)
		return &Result{Store: st, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
