package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/khanglvm/edu-ai/internal/hint"
)

// FileStore implements Store as a single JSON object on disk.
//
// The whole document is kept in memory and rewritten on every mutation using
// an atomic rename. The previous document is copied to <path>.bak first.
type FileStore struct {
	mu     sync.Mutex
	path   string
	data   map[string]string
	logger *zap.Logger
	closed bool
}

// DocumentError reports a store document that cannot be parsed.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return hint.Format(
		fmt.Sprintf("invalid store document: %s", e.Path),
		fmt.Sprintf("Restore from %s.bak, or move the file aside to start empty", e.Path),
		e.Err.Error(),
	)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// NewFileStore opens (or creates) the JSON document at path.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store requires a path")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &FileStore{
		path:   path,
		data:   make(map[string]string),
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, &DocumentError{Path: path, Err: err}
		}
		if s.data == nil {
			s.data = make(map[string]string)
		}
	}

	return s, nil
}

// Get retrieves a value by key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, ErrClosed
	}
	value, ok := s.data[key]
	return value, ok, nil
}

// Set stores value under key and flushes the document.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and flushes the document.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.flush(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// Close marks the store closed. The document is already durable.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// flush writes the document with backup + atomic rename. Caller holds mu.
func (s *FileStore) flush() error {
	if err := backupFile(s.path); err != nil {
		// First write has nothing to back up; anything else is worth a warning.
		s.logger.Warn("failed to back up store document", zap.String("path", s.path), zap.Error(err))
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if err := atomicWrite(s.path, data); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

func backupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+".bak", data, 0600)
}

func atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
