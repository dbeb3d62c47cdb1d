package storage

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// SchemaVersion is the record layout written by this build.
const SchemaVersion = 1

// migration represents a single record layout migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// Init brings the store up to SchemaVersion.
//
// Stores without a version marker are treated as version 0, the layout of
// the browser client. Init refuses stores from a newer build.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	version, err := s.currentSchemaVersion()
	if err != nil {
		return err
	}
	if version > SchemaVersion {
		return fmt.Errorf("%w: store is at %d, this build supports %d", ErrSchemaTooNew, version, SchemaVersion)
	}

	migrations := []migration{
		{version: 1, name: "repair_history", up: s.migration001RepairHistory},
	}

	for _, m := range migrations {
		if version >= m.version {
			continue
		}
		s.logger.Info("running schema migration", zap.Int("version", m.version), zap.String("name", m.name))
		if err := m.up(); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if err := s.store.Set(schemaVersionKey, strconv.Itoa(m.version)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.version, err)
		}
	}

	return nil
}

func (s *Service) currentSchemaVersion() (int, error) {
	raw, ok, err := s.store.Get(schemaVersionKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !ok {
		return 0, nil
	}

	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &CorruptedRecordError{Key: schemaVersionKey, Err: err}
	}
	return version, nil
}

// migration001RepairHistory fixes histories written by the browser client,
// which could hold duplicate topics and grow past the cap.
// The first occurrence of a topic is the most recent one and is kept.
func (s *Service) migration001RepairHistory() error {
	history, err := s.getHistory()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(history))
	repaired := make([]HistoryEntry, 0, len(history))
	for _, item := range history {
		if seen[item.Topic] {
			continue
		}
		seen[item.Topic] = true
		repaired = append(repaired, item)
	}
	if len(repaired) > MaxHistoryEntries {
		repaired = repaired[:MaxHistoryEntries]
	}

	if len(repaired) == len(history) {
		return nil
	}

	s.logger.Info("repaired search history",
		zap.Int("before", len(history)),
		zap.Int("after", len(repaired)))
	return s.writeRecord(historyKey, repaired)
}
