// Package store persists snapshots of the event index.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
)

// ErrPersistence is matched by every *PersistenceError.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError is an I/O failure against the store at Path.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Store saves and restores an ordered snapshot of events.
//
// Load of a store that does not exist yet returns no events and no error.
// Records that cannot be decoded are logged and skipped.
type Store interface {
	Save(ctx context.Context, events []event.Event) error
	Load(ctx context.Context) ([]event.Event, error)
	HasExistingData() bool
	Delete() error
	Path() string
}

// Open returns the store for backend ("text" or "sqlite") at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case config.BackendText, "":
		return NewTextStore(path), nil
	case config.BackendSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrStoreBackend, backend)
	}
}

// DefaultPath is ~/.calendar/<file> for the given backend.
func DefaultPath(backend string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrHomeDir, err)
	}
	name := config.StoreFileText
	if backend == config.BackendSQLite {
		name = config.StoreFileSQLite
	}
	return filepath.Join(home, config.StoreDirName, name), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func deleteFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &PersistenceError{Op: config.ErrStoreDelete, Path: path, Err: err}
	}
	return nil
}
