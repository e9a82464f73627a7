// Package store persists per-user profile state in a Badger key-value
// database. Every logical record is one key under the owning user's
// namespace; writes are synchronous (write-through) so a reload at any
// moment reflects the last completed mutation.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"encoding/json/v2"

	"github.com/dgraph-io/badger/v4"

	domainerrors "github.com/wavefmapp/wavefm-core/internal/errors"
)

// Sentinel errors for store operations.
var (
	ErrRecordNotFound = domainerrors.ErrNotFound.WithMessage("record not found")
	ErrNoIdentity     = domainerrors.ErrNotFound.WithMessage("no current identity")
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a Store backed by a database directory.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Reload can happen at any time; never lose an acknowledged write

	return open(opts, logger, path)
}

// NewInMemory creates a Store that never touches disk. Used by tests and
// the simulate command.
func NewInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts, logger, ":memory:")
}

func open(opts badger.Options, logger *slog.Logger, path string) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("profile store opened", "path", path)

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Helper methods for database operations.

// get retrieves a value by key. Returns ErrRecordNotFound for absent keys.
func (s *Store) get(key string, dest any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// set stores a value by key.
func (s *Store) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// delete removes a key. Deleting an absent key is not an error.
func (s *Store) delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
