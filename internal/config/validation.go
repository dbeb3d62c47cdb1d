/*
Package config provides validation helpers for edu-ai configuration.
*/
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/khanglvm/edu-ai/internal/kv"
)

// Validate checks a decoded configuration.
func Validate(cfg *Config) error {
	if cfg.Storage == nil {
		return fmt.Errorf("missing storage settings")
	}
	if !slices.Contains(kv.Backends, cfg.Storage.Backend) {
		return fmt.Errorf("storage.backend %q is not one of %s", cfg.Storage.Backend, strings.Join(kv.Backends, ", "))
	}

	if cfg.Uploads != nil {
		if err := ValidateUploads(cfg.Uploads); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUploads checks upload limits. Zero values mean "use default".
func ValidateUploads(u *UploadSettings) error {
	if u.MaxFiles < 0 {
		return fmt.Errorf("uploads.maxFiles must not be negative, got %d", u.MaxFiles)
	}
	if u.MaxSizeInMB < 0 {
		return fmt.Errorf("uploads.maxSizeInMB must not be negative, got %g", u.MaxSizeInMB)
	}
	for _, t := range u.AcceptedFileTypes {
		if !strings.Contains(t, "/") {
			return fmt.Errorf("uploads.acceptedFileTypes: %q is not a MIME type", t)
		}
	}
	return nil
}
