/*
Package config handles loading and saving edu-ai configuration.

Configuration is stored in ~/.edu-ai.json. Environment variables (see
ApplyEnv) override file values.

Schema:
  {
    "storage": {
      "backend": "sqlite",
      "path": "~/.edu-ai/store.db",
      "strictDecoding": false
    },
    "uploads": {
      "maxFiles": 10,
      "maxSizeInMB": 5,
      "acceptedFileTypes": ["application/pdf", "image/png"]
    }
  }
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/khanglvm/edu-ai/internal/kv"
)

// Config represents the root configuration structure.
type Config struct {
	// Storage selects the key-value backend holding learner records.
	Storage *StorageSettings `json:"storage"`

	// Uploads contains question-paper intake limits.
	Uploads *UploadSettings `json:"uploads,omitempty"`
}

// StorageSettings selects and locates the key-value backend.
type StorageSettings struct {
	// Backend is one of "memory", "file", "sqlite", "bolt".
	Backend string `json:"backend"`

	// Path is the data file. Empty means the backend's default under ~/.edu-ai.
	Path string `json:"path,omitempty"`

	// StrictDecoding makes malformed records an error instead of a default.
	StrictDecoding bool `json:"strictDecoding,omitempty"`
}

// UploadSettings mirrors upload.Options.
type UploadSettings struct {
	MaxFiles          int      `json:"maxFiles,omitempty"`
	MaxSizeInMB       float64  `json:"maxSizeInMB,omitempty"`
	AcceptedFileTypes []string `json:"acceptedFileTypes,omitempty"`
}

// NewConfig creates a configuration with default settings.
func NewConfig() *Config {
	return &Config{
		Storage: &StorageSettings{
			Backend: kv.BackendSQLite,
		},
		Uploads: &UploadSettings{
			MaxFiles:    10,
			MaxSizeInMB: 5,
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.edu-ai.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".edu-ai.json"), nil
}

// Resolve loads path (or the default path when empty), falls back to
// NewConfig when the file does not exist, applies environment overrides and
// validates the result.
func Resolve(path string) (*Config, error) {
	if path == "" {
		p, err := GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		var notFound *ConfigNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		cfg = NewConfig()
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, &InvalidConfigError{Path: path, Message: err.Error()}
	}
	return cfg, nil
}

// SetBackend switches the storage backend. A configured path belongs to the
// previous backend's file format, so switching clears it and the new
// backend's default path applies.
func (c *Config) SetBackend(backend string) {
	if c.Storage.Backend == backend {
		return
	}
	c.Storage.Backend = backend
	c.Storage.Path = ""
}

// StoragePath returns the configured data path, or the backend default.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return expandHome(c.Storage.Path)
	}
	return kv.DefaultPath(c.Storage.Backend)
}

func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// fillDefaults initializes nil sections after decoding.
func (c *Config) fillDefaults() {
	defaults := NewConfig()
	if c.Storage == nil {
		c.Storage = defaults.Storage
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Uploads == nil {
		c.Uploads = defaults.Uploads
	}
}
