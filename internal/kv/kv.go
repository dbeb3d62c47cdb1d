/*
Package kv implements the key-value persistence adapter used by the storage
service.

A Store is a synchronous, string-keyed store of string values. It mirrors the
minimal contract of a browser key-value store: Get returns the value and
whether it was present, Set overwrites, Remove is idempotent.

Four backends are provided:
  - memory: process-local map, used by tests and --backend memory
  - file:   a single JSON document on disk, written atomically with a .bak copy
  - sqlite: a "kv" table in a modernc.org/sqlite database
  - bolt:   a bucket in a go.etcd.io/bbolt database
*/
package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/khanglvm/edu-ai/internal/hint"
)

// ErrClosed is returned by operations on a store after Close.
var ErrClosed = errors.New("kv: store is closed")

// PermissionError is returned by Open when the data file or its directory
// (~/.edu-ai by default) is not accessible.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return hint.Format(
		fmt.Sprintf("permission denied (cannot open data store): %s", e.Path),
		hint.Fix(hint.WritePermissionFix(e.Path))+", or set storage.path / EDU_AI_DATA_PATH to a writable location",
		hint.ModeDetails(e.Path),
	)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// Store defines the key-value adapter contract.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key and true, or "" and false
	// if the key is absent.
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any existing value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Close releases the underlying resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Backends lists every supported backend name.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendBolt}

// Open creates a store for the named backend at path.
// The memory backend ignores path.
func Open(backend, path string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		store, err = NewFileStore(path, logger)
	case BackendSQLite:
		store, err = OpenSQLite(path, logger)
	case BackendBolt:
		store, err = OpenBolt(path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want one of %v)", backend, Backends)
	}

	if errors.Is(err, fs.ErrPermission) {
		return nil, &PermissionError{Path: deniedPath(path), Err: err}
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// deniedPath returns path if it exists, else the nearest existing parent:
// the one the user has to fix.
func deniedPath(path string) string {
	for p := path; ; p = filepath.Dir(p) {
		if _, err := os.Stat(p); err == nil || p == filepath.Dir(p) {
			return p
		}
	}
}

// DefaultPath returns the default data path for a backend under ~/.edu-ai.
func DefaultPath(backend string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".edu-ai")
	switch backend {
	case BackendFile:
		return filepath.Join(dir, "store.json"), nil
	case BackendSQLite:
		return filepath.Join(dir, "store.db"), nil
	case BackendBolt:
		return filepath.Join(dir, "store.bolt"), nil
	default:
		return "", nil
	}
}
