/*
Package storage implements the learner data service.

The Service is the single owner of three JSON records kept in a kv.Store:

	edu_ai_user_info   UserInfo (absent until saved)
	edu_ai_progress    UserProgress (defaults when absent)
	search-history     []HistoryEntry, most recent first, at most 50

Key names are shared with the browser client that produced earlier data and
must not change. Construct one Service at start-up and pass it to consumers.
*/
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khanglvm/edu-ai/internal/kv"
)

const (
	userInfoKey      = "edu_ai_user_info"
	progressKey      = "edu_ai_progress"
	historyKey       = "search-history"
	schemaVersionKey = "edu_ai_schema_version"
)

// Service provides typed access to the learner records.
//
// Read-modify-write operations are serialized within the process. Writers in
// other processes sharing the same store are not coordinated.
type Service struct {
	store  kv.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	strict bool
	mu     sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for warnings about discarded records.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for timestamps and defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the history entry id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithStrictDecoding makes reads of malformed records fail with
// *CorruptedRecordError instead of falling back to the record's default.
func WithStrictDecoding() Option {
	return func(s *Service) { s.strict = true }
}

// New creates a Service over store.
func New(store kv.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveUserInfo overwrites the stored profile.
func (s *Service) SaveUserInfo(info UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeRecord(userInfoKey, info)
}

// GetUserInfo returns the stored profile, or nil if none was saved.
func (s *Service) GetUserInfo() (*UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getUserInfo()
}

// HasUser reports whether a profile is stored.
func (s *Service) HasUser() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.getUserInfo()
	if err != nil {
		return false, err
	}
	return info != nil, nil
}

func (s *Service) getUserInfo() (*UserInfo, error) {
	var info *UserInfo
	found, err := s.readRecord(userInfoKey, &info)
	if err != nil || !found {
		return nil, err
	}
	return info, nil
}

// ClearAll removes all three records. Subsequent reads return the
// documented defaults. The schema version marker is kept.
func (s *Service) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{userInfoKey, progressKey, historyKey} {
		if err := s.store.Remove(key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// readRecord decodes the record at key into v for a read-only caller.
// It reports false when the key is absent, or when the record is malformed
// and strict decoding is off.
func (s *Service) readRecord(key string, v any) (bool, error) {
	found, err := s.decodeRecord(key, v)
	var corrupt *CorruptedRecordError
	if err != nil && !s.strict && errors.As(err, &corrupt) {
		s.logger.Warn("ignoring malformed record", zap.String("key", key), zap.Error(corrupt.Err))
		return false, nil
	}
	return found, err
}

// decodeRecord decodes the record at key into v. A malformed record is
// always a *CorruptedRecordError, so callers that write the record back
// never replace data they could not read.
func (s *Service) decodeRecord(key string, v any) (bool, error) {
	raw, ok, err := s.store.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, &CorruptedRecordError{Key: key, Err: err}
	}
	return true, nil
}

func (s *Service) writeRecord(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.store.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
