package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshotDate = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func TestPutGetRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	payload := []byte(`{"members":[]}`)

	require.NoError(t, store.Put("PA", "senate", snapshotDate, payload))

	got, ok := store.Get("PA", "senate", snapshotDate)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestGetMissingKey(t *testing.T) {
	store := New(t.TempDir())

	_, ok := store.Get("PA", "senate", snapshotDate)
	assert.False(t, ok)

	// a different source or date is a different key
	require.NoError(t, store.Put("PA", "senate", snapshotDate, []byte("{}")))
	_, ok = store.Get("PA", "house", snapshotDate)
	assert.False(t, ok)
	_, ok = store.Get("PA", "senate", snapshotDate.AddDate(0, 0, 1))
	assert.False(t, ok)
}

func TestFileLayout(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	require.NoError(t, store.Put("PA", "openstates", snapshotDate, []byte("{}")))

	data, err := os.ReadFile(filepath.Join(dir, "2026-08-30", "PA-openstates.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), data)
}

func TestPutLeavesNoPartialFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	require.NoError(t, store.Put("PA", "senate", snapshotDate, []byte("{}")))

	entries, err := os.ReadDir(filepath.Join(dir, "2026-08-30"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PA-senate.json", entries[0].Name())
}
