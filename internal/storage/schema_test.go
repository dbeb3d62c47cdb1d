package storage

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOnFreshStore(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, svc.Init())

	raw, ok, err := store.Get(schemaVersionKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", raw)

	_, ok, err = store.Get(historyKey)
	require.NoError(t, err)
	assert.False(t, ok, "migration must not create records")

	// Second run is a no-op.
	require.NoError(t, svc.Init())
}

func TestInitRepairsLegacyHistory(t *testing.T) {
	svc, store := newTestService(t)

	// The browser client capped the wrong list, so histories could exceed
	// the cap; duplicates appear when topics were written by older builds.
	legacy := make([]HistoryEntry, 0, 60)
	legacy = append(legacy, HistoryEntry{Topic: "dup", ID: "newest"})
	for i := 0; i < 58; i++ {
		legacy = append(legacy, HistoryEntry{
			Topic:     fmt.Sprintf("t-%d", i),
			Timestamp: FormatTime(time.Unix(int64(1000-i), 0)),
			Type:      "search",
			ID:        fmt.Sprintf("legacy-%d", i),
		})
	}
	legacy = append(legacy, HistoryEntry{Topic: "dup", ID: "oldest"})

	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, store.Set(historyKey, string(data)))

	require.NoError(t, svc.Init())

	history, err := svc.GetHistory()
	require.NoError(t, err)
	require.Len(t, history, MaxHistoryEntries)
	assert.Equal(t, "newest", history[0].ID)
	for _, e := range history[1:] {
		assert.NotEqual(t, "dup", e.Topic)
	}
}

func TestInitRejectsNewerSchema(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.Set(schemaVersionKey, "99"))

	err := svc.Init()
	assert.ErrorIs(t, err, ErrSchemaTooNew)
}

func TestInitRejectsGarbledVersion(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.Set(schemaVersionKey, "one"))

	err := svc.Init()
	var corrupt *CorruptedRecordError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, schemaVersionKey, corrupt.Key)
}
