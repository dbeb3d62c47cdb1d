package config

import (
	"fmt"

	"github.com/khanglvm/edu-ai/internal/hint"
)

// PermissionError is returned when ~/.edu-ai.json or its directory cannot be
// read or written.
type PermissionError struct {
	Path string
	Op   string // "read" or "write"
}

func (e *PermissionError) Error() string {
	fix := hint.WritePermissionFix(e.Path)
	if e.Op == "read" {
		fix = hint.ReadPermissionFix(e.Path)
	}
	return hint.Format(
		fmt.Sprintf("permission denied (cannot %s config): %s", e.Op, e.Path),
		hint.Fix(fix),
		hint.ModeDetails(e.Path),
	)
}

// ConfigNotFoundError is returned by LoadFrom for a missing file. Resolve
// treats it as "use defaults".
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return hint.Format(
		fmt.Sprintf("config file not found: %s", e.Path),
		fmt.Sprintf("Run 'edu-ai config init --config %s' to create it", e.Path),
	)
}

// InvalidConfigError reports a config file that does not parse or holds an
// unsupported value.
type InvalidConfigError struct {
	Path    string
	Message string
	// Parse is set when the file is not valid JSON; the hint then points at
	// the backup Save keeps next to the file.
	Parse bool
}

func (e *InvalidConfigError) Error() string {
	h := "Fix the value, or run 'edu-ai config init --force' to reset"
	if e.Parse {
		h = fmt.Sprintf("Restore from %s.bak, or run 'edu-ai config init --force' to reset", e.Path)
	}
	return hint.Format(fmt.Sprintf("invalid config: %s", e.Path), h, e.Message)
}
