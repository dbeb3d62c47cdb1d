package storage

import (
	"errors"
	"fmt"
)

// ErrSchemaTooNew is returned by Init when the store was written by a newer
// schema than this build understands.
var ErrSchemaTooNew = errors.New("storage: schema version is newer than supported")

// CorruptedRecordError reports a stored record that cannot be decoded.
// Operations that modify a record always return it; reads return it only
// when the service is built WithStrictDecoding.
type CorruptedRecordError struct {
	Key string
	Err error
}

func (e *CorruptedRecordError) Error() string {
	return fmt.Sprintf("corrupted record %q: %v", e.Key, e.Err)
}

func (e *CorruptedRecordError) Unwrap() error { return e.Err }
