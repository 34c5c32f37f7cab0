package postgres

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karobar/internal/domain/audit"
)

func newTestAuditStore(t *testing.T) *AuditStore {
	t.Helper()
	store, err := NewAuditStore(nil)
	require.NoError(t, err)
	return store
}

func TestAuditStore_SmallChangesStayPlain(t *testing.T) {
	store := newTestAuditStore(t)

	changes, err := json.Marshal(map[string]any{"name": "Rice 25kg", "stock": 40})
	require.NoError(t, err)

	entry := AuditEntry{Action: audit.ActionUpdate, Changes: changes}
	store.compressEntry(&entry)

	assert.Equal(t, CompressionNone, entry.CompressionAlgo)
	assert.Equal(t, json.RawMessage(changes), entry.Changes)
	assert.Nil(t, entry.ChangesCompressed)
}

func TestAuditStore_LargeChangesRoundTrip(t *testing.T) {
	store := newTestAuditStore(t)

	// Well over the 10KB threshold.
	changes, err := json.Marshal(map[string]any{
		"note": string(bytes.Repeat([]byte("karobar "), 4096)),
	})
	require.NoError(t, err)

	entry := AuditEntry{Action: audit.ActionPayment, Changes: changes}
	store.compressEntry(&entry)

	assert.Equal(t, CompressionZstd, entry.CompressionAlgo)
	assert.Nil(t, entry.Changes)
	assert.NotEmpty(t, entry.ChangesCompressed)
	assert.Less(t, len(entry.ChangesCompressed), len(changes))

	require.NoError(t, store.decodeEntry(&entry))

	assert.Equal(t, CompressionNone, entry.CompressionAlgo)
	assert.Equal(t, json.RawMessage(changes), entry.Changes)
	assert.Nil(t, entry.ChangesCompressed)
}

func TestAuditStore_DecodeLeavesPlainEntriesAlone(t *testing.T) {
	store := newTestAuditStore(t)

	changes := json.RawMessage(`{"amount":"1500"}`)
	entry := AuditEntry{Action: audit.ActionCreate, Changes: changes, CompressionAlgo: CompressionNone}

	require.NoError(t, store.decodeEntry(&entry))
	assert.Equal(t, changes, entry.Changes)
}

func TestAuditStore_DecodeRejectsCorruptPayload(t *testing.T) {
	store := newTestAuditStore(t)

	entry := AuditEntry{
		CompressionAlgo:   CompressionZstd,
		ChangesCompressed: []byte("not zstd at all"),
	}

	assert.Error(t, store.decodeEntry(&entry))
}
