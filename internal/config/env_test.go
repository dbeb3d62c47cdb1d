package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	t.Run("overrides file values", func(t *testing.T) {
		t.Setenv("EDU_AI_BACKEND", "bolt")
		t.Setenv("EDU_AI_DATA_PATH", "/srv/edu.bolt")
		t.Setenv("EDU_AI_STRICT_DECODING", "true")
		t.Setenv("EDU_AI_MAX_FILES", "3")
		t.Setenv("EDU_AI_MAX_SIZE_MB", "2.5")
		t.Setenv("EDU_AI_ACCEPTED_TYPES", "application/pdf,image/png")

		cfg := NewConfig()
		require.NoError(t, ApplyEnv(cfg))

		assert.Equal(t, "bolt", cfg.Storage.Backend)
		assert.Equal(t, "/srv/edu.bolt", cfg.Storage.Path)
		assert.True(t, cfg.Storage.StrictDecoding)
		assert.Equal(t, 3, cfg.Uploads.MaxFiles)
		assert.Equal(t, 2.5, cfg.Uploads.MaxSizeInMB)
		assert.Equal(t, []string{"application/pdf", "image/png"}, cfg.Uploads.AcceptedFileTypes)
	})

	t.Run("unset variables keep file values", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Storage.Backend = "file"
		require.NoError(t, ApplyEnv(cfg))

		assert.Equal(t, "file", cfg.Storage.Backend)
		assert.Equal(t, 10, cfg.Uploads.MaxFiles)
	})

	t.Run("backend switch drops path of the previous backend", func(t *testing.T) {
		t.Setenv("EDU_AI_BACKEND", "bolt")

		cfg := NewConfig()
		cfg.Storage.Path = "/srv/edu.db"
		require.NoError(t, ApplyEnv(cfg))

		assert.Equal(t, "bolt", cfg.Storage.Backend)
		assert.Empty(t, cfg.Storage.Path)
	})

	t.Run("malformed number", func(t *testing.T) {
		t.Setenv("EDU_AI_MAX_FILES", "ten")
		assert.Error(t, ApplyEnv(NewConfig()))
	})
}

func TestSetBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Path = "/srv/edu.db"

	cfg.SetBackend("sqlite")
	assert.Equal(t, "/srv/edu.db", cfg.Storage.Path, "same backend keeps its path")

	cfg.SetBackend("bolt")
	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)

	p, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "store.bolt", filepath.Base(p))
}

func TestResolve(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Resolve(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
	})

	t.Run("env wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"storage": {"backend": "file"}}`), 0644))
		t.Setenv("EDU_AI_BACKEND", "memory")

		cfg, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.Storage.Backend)
	})

	t.Run("invalid env value is reported", func(t *testing.T) {
		t.Setenv("EDU_AI_BACKEND", "redis")

		_, err := Resolve(filepath.Join(t.TempDir(), "absent.json"))
		var invalid *InvalidConfigError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, err.Error(), "redis")
	})

	t.Run("corrupt file is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

		_, err := Resolve(path)
		var invalid *InvalidConfigError
		require.ErrorAs(t, err, &invalid)
	})
}
