package upload

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrClosed is returned by operations on an Uploader after Close.
var ErrClosed = errors.New("upload: uploader is closed")

// ErrorKind classifies validation failures.
type ErrorKind int

const (
	KindTooLarge ErrorKind = iota + 1
	KindUnsupportedType
	KindTooManyFiles
)

func (k ErrorKind) String() string {
	switch k {
	case KindTooLarge:
		return "too_large"
	case KindUnsupportedType:
		return "unsupported_type"
	case KindTooManyFiles:
		return "too_many_files"
	default:
		return "unknown"
	}
}

// ValidationError is a user-facing rejection of incoming files.
// Message is the text shown to the user.
type ValidationError struct {
	Kind    ErrorKind
	File    string // empty for batch-level failures
	Message string
}

func (e *ValidationError) Error() string {
	if e.File == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func tooLarge(file string, maxSizeInMB float64) *ValidationError {
	return &ValidationError{
		Kind:    KindTooLarge,
		File:    file,
		Message: fmt.Sprintf("File size must be less than %sMB", formatNumber(maxSizeInMB)),
	}
}

func unsupportedType(file string) *ValidationError {
	return &ValidationError{
		Kind:    KindUnsupportedType,
		File:    file,
		Message: "File type not supported",
	}
}

func tooManyFiles(maxFiles int) *ValidationError {
	return &ValidationError{
		Kind:    KindTooManyFiles,
		Message: fmt.Sprintf("Maximum %d files allowed", maxFiles),
	}
}

// formatNumber prints 5 as "5" and 2.5 as "2.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
