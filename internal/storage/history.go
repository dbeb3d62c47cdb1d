package storage

import (
	"slices"
	"strings"
)

// AddToHistory records topic as the most recent history entry and returns it.
//
// An existing entry with the same topic (exact, case-sensitive) is removed
// first. The cap is applied to the de-duplicated list, dropping from the tail.
func (s *Service) AddToHistory(topic string, opts HistoryOptions) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.historyForUpdate()
	if err != nil {
		return HistoryEntry{}, err
	}

	entry := HistoryEntry{
		Topic:     topic,
		Timestamp: FormatTime(s.now()),
		Type:      opts.Type,
		Context:   opts.Context,
		ID:        s.newID(),
	}
	if entry.Type == "" {
		entry.Type = DefaultHistoryType
	}

	updated := make([]HistoryEntry, 0, len(history)+1)
	updated = append(updated, entry)
	for _, item := range history {
		if item.Topic != topic {
			updated = append(updated, item)
		}
	}
	if len(updated) > MaxHistoryEntries {
		updated = updated[:MaxHistoryEntries]
	}

	if err := s.writeRecord(historyKey, updated); err != nil {
		return HistoryEntry{}, err
	}
	return entry, nil
}

// GetHistory returns the history, most recent first.
func (s *Service) GetHistory() ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getHistory()
}

// RemoveFromHistory deletes the entry with the given id. Unknown ids are ignored.
func (s *Service) RemoveFromHistory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.historyForUpdate()
	if err != nil {
		return err
	}

	filtered := slices.DeleteFunc(history, func(item HistoryEntry) bool {
		return item.ID == id
	})
	return s.writeRecord(historyKey, filtered)
}

// SearchHistory returns the entries whose topic or context contains query,
// ignoring case. Order is preserved.
func (s *Service) SearchHistory(query string) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.getHistory()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := []HistoryEntry{}
	for _, item := range history {
		if strings.Contains(strings.ToLower(item.Topic), q) ||
			strings.Contains(strings.ToLower(item.Context), q) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// ClearHistory resets the history to an empty list.
func (s *Service) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeRecord(historyKey, []HistoryEntry{})
}

func (s *Service) getHistory() ([]HistoryEntry, error) {
	var history []HistoryEntry
	found, err := s.readRecord(historyKey, &history)
	if err != nil {
		return nil, err
	}
	return historyOrEmpty(found, history), nil
}

// historyForUpdate reads the history for a read-modify-write. A malformed
// record is an error, never an empty list.
func (s *Service) historyForUpdate() ([]HistoryEntry, error) {
	var history []HistoryEntry
	found, err := s.decodeRecord(historyKey, &history)
	if err != nil {
		return nil, err
	}
	return historyOrEmpty(found, history), nil
}

func historyOrEmpty(found bool, history []HistoryEntry) []HistoryEntry {
	if !found || history == nil {
		return []HistoryEntry{}
	}
	return history
}
