package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Storage == nil {
		t.Fatal("NewConfig().Storage should not be nil")
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Default backend should be sqlite, got %q", cfg.Storage.Backend)
	}
	if cfg.Uploads.MaxFiles != 10 {
		t.Errorf("Default MaxFiles should be 10, got %d", cfg.Uploads.MaxFiles)
	}
	if cfg.Uploads.MaxSizeInMB != 5 {
		t.Errorf("Default MaxSizeInMB should be 5, got %g", cfg.Uploads.MaxSizeInMB)
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".edu-ai.json")

	cfg := NewConfig()
	cfg.Storage.Backend = "bolt"
	cfg.Storage.Path = "/tmp/edu.bolt"
	cfg.Uploads.AcceptedFileTypes = []string{"application/pdf"}

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.Storage.Backend != "bolt" {
		t.Errorf("Backend mismatch: got %q", loaded.Storage.Backend)
	}
	if loaded.Storage.Path != "/tmp/edu.bolt" {
		t.Errorf("Path mismatch: got %q", loaded.Storage.Path)
	}
	if len(loaded.Uploads.AcceptedFileTypes) != 1 || loaded.Uploads.AcceptedFileTypes[0] != "application/pdf" {
		t.Errorf("AcceptedFileTypes mismatch: got %v", loaded.Uploads.AcceptedFileTypes)
	}
}

func TestLoadFromFillsMissingSections(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Storage == nil || cfg.Storage.Backend != "sqlite" {
		t.Errorf("missing storage should default to sqlite, got %+v", cfg.Storage)
	}
	if cfg.Uploads == nil {
		t.Error("missing uploads should be initialized")
	}
}

func TestLoadFromErrors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.json"))
		if err == nil {
			t.Fatal("LoadFrom should error for nonexistent file")
		}
		if _, ok := err.(*ConfigNotFoundError); !ok {
			t.Errorf("expected *ConfigNotFoundError, got %T", err)
		}
		if !strings.Contains(err.Error(), "edu-ai config init") {
			t.Errorf("error should mention init command, got: %v", err)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		testPath := filepath.Join(t.TempDir(), "config.json")
		os.WriteFile(testPath, []byte(`{invalid json}`), 0644)

		_, err := LoadFrom(testPath)
		if err == nil {
			t.Fatal("LoadFrom should error for invalid JSON")
		}
		if !strings.Contains(err.Error(), "💡 Restore from "+testPath+".bak") {
			t.Errorf("error should point at the backup, got: %v", err)
		}
		if !strings.Contains(err.Error(), "edu-ai config init --force") {
			t.Errorf("error should mention reset command, got: %v", err)
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		testPath := filepath.Join(t.TempDir(), "config.json")
		os.WriteFile(testPath, []byte(`{}`), 0000)
		defer os.Chmod(testPath, 0644)

		_, err := LoadFrom(testPath)
		if err == nil {
			t.Fatal("LoadFrom should error for permission denied")
		}
		if !strings.Contains(err.Error(), "💡 Fix:") {
			t.Errorf("error should contain fix hint, got: %v", err)
		}
	})
}

func TestStoragePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Path = "/data/edu.db"

	p, err := cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath failed: %v", err)
	}
	if p != "/data/edu.db" {
		t.Errorf("got %q", p)
	}

	cfg.Storage.Path = ""
	p, err = cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath failed: %v", err)
	}
	if !strings.HasSuffix(p, filepath.Join(".edu-ai", "store.db")) {
		t.Errorf("default sqlite path should live under ~/.edu-ai, got %q", p)
	}

	cfg.Storage.Path = "~/custom/store.db"
	p, err = cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath failed: %v", err)
	}
	if strings.HasPrefix(p, "~") {
		t.Errorf("home should be expanded, got %q", p)
	}
}
