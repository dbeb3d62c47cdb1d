/*
Package cli implements the edu-ai commands.

Every command receives the same *App. The App resolves configuration, opens
the key-value backend and constructs the storage.Service once, on first use,
and closes them when the command finishes.
*/
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/khanglvm/edu-ai/internal/config"
	"github.com/khanglvm/edu-ai/internal/kv"
	"github.com/khanglvm/edu-ai/internal/storage"
)

// App holds the shared resources of one CLI invocation.
type App struct {
	// ConfigPath overrides ~/.edu-ai.json (--config).
	ConfigPath string
	// Backend overrides the configured storage backend (--backend).
	Backend string
	// Verbose enables debug logging (--verbose).
	Verbose bool

	cfg    *config.Config
	logger *zap.Logger
	store  kv.Store
	svc    *storage.Service
}

// NewApp creates an App that resolves everything lazily from flags,
// config file and environment.
func NewApp() *App {
	return &App{}
}

// NewAppWithService creates an App around an existing service, used by tests
// and embedders that manage their own store.
func NewAppWithService(svc *storage.Service, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{cfg: cfg, svc: svc, logger: zap.NewNop()}
}

// Config returns the resolved configuration.
func (a *App) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, err := config.Resolve(a.ConfigPath)
	if err != nil {
		return nil, err
	}
	if a.Backend != "" {
		cfg.SetBackend(a.Backend)
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	a.cfg = cfg
	return cfg, nil
}

// Logger returns the process logger. Logs go to stderr; only warnings and
// errors are shown unless Verbose is set.
func (a *App) Logger() *zap.Logger {
	if a.logger != nil {
		return a.logger
	}

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := zc.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	a.logger = logger
	return logger
}

// Service opens the configured store, runs schema migrations and returns
// the storage service.
func (a *App) Service() (*storage.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}

	logger := a.Logger()
	logger.Debug("opening store", zap.String("backend", cfg.Storage.Backend), zap.String("path", path))

	store, err := kv.Open(cfg.Storage.Backend, path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	opts := []storage.Option{storage.WithLogger(logger)}
	if cfg.Storage.StrictDecoding {
		opts = append(opts, storage.WithStrictDecoding())
	}
	svc := storage.New(store, opts...)
	if err := svc.Init(); err != nil {
		store.Close()
		return nil, err
	}

	a.store = store
	a.svc = svc
	return svc, nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
		a.svc = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// colorGreen returns text with green ANSI color when w is a terminal.
func colorGreen(w io.Writer, s string) string {
	return colorize(w, "\033[32m", s)
}

// colorRed returns text with red ANSI color when w is a terminal.
func colorRed(w io.Writer, s string) string {
	return colorize(w, "\033[31m", s)
}

func colorize(w io.Writer, code, s string) string {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return s
	}
	return code + s + "\033[0m"
}
