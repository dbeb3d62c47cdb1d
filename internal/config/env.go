package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// envOverrides lists the environment variables that override file values.
// Unset or empty variables leave the file value in place.
type envOverrides struct {
	Backend        string `env:"EDU_AI_BACKEND"`
	DataPath       string `env:"EDU_AI_DATA_PATH"`
	StrictDecoding bool   `env:"EDU_AI_STRICT_DECODING"`

	MaxFiles          int      `env:"EDU_AI_MAX_FILES"`
	MaxSizeInMB       float64  `env:"EDU_AI_MAX_SIZE_MB"`
	AcceptedFileTypes []string `env:"EDU_AI_ACCEPTED_TYPES" envSeparator:","`
}

// ApplyEnv overlays EDU_AI_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.fillDefaults()

	if o.Backend != "" {
		cfg.SetBackend(o.Backend)
	}
	if o.DataPath != "" {
		cfg.Storage.Path = o.DataPath
	}
	if o.StrictDecoding {
		cfg.Storage.StrictDecoding = true
	}
	if o.MaxFiles != 0 {
		cfg.Uploads.MaxFiles = o.MaxFiles
	}
	if o.MaxSizeInMB != 0 {
		cfg.Uploads.MaxSizeInMB = o.MaxSizeInMB
	}
	if len(o.AcceptedFileTypes) > 0 {
		cfg.Uploads.AcceptedFileTypes = o.AcceptedFileTypes
	}
	return nil
}
