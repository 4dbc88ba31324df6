package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	IPv4  string `json:"ipv4"`
	Model string `json:"model"`
}

func TestFileStoreSetAndGet(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), time.Minute)

	err := store.Set("host1.local", testRecord{IPv4: "10.0.0.1", Model: "PCN-16"})
	require.NoError(t, err)

	var got testRecord
	ok, err := store.Get("host1.local", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", got.IPv4)
	assert.Equal(t, "PCN-16", got.Model)
}

func TestFileStoreGetMissingKeyReturnsFalse(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), time.Minute)

	var got testRecord
	ok, err := store.Get("nope.local", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreSetOverwritesInFull(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), time.Minute)

	require.NoError(t, store.Set("host1.local", testRecord{IPv4: "10.0.0.1", Model: "PCN-16"}))
	require.NoError(t, store.Set("host1.local", testRecord{IPv4: "10.0.0.2"}))

	var got testRecord
	ok, err := store.Get("host1.local", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.2", got.IPv4)
	assert.Empty(t, got.Model)
}

func TestFileStoreDelete(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), time.Minute)

	require.NoError(t, store.Set("host1.local", testRecord{IPv4: "10.0.0.1"}))
	require.NoError(t, store.Delete("host1.local"))

	var got testRecord
	ok, err := store.Get("host1.local", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), time.Minute)

	require.NoError(t, store.Set("host1.local", testRecord{IPv4: "10.0.0.1"}))
	require.NoError(t, store.Set("host2.local", testRecord{IPv4: "10.0.0.2"}))
	require.NoError(t, store.Clear())

	var got testRecord
	ok, _ := store.Get("host1.local", &got)
	assert.False(t, ok)
	ok, _ = store.Get("host2.local", &got)
	assert.False(t, ok)
}

// TestFileStoreEntryExpiresAfterTTL matches spec.md §8 S6, with the TTL
// scaled down to 20ms: a write reads back successfully at once, and reads back absent (and
// is deleted from the store) once the TTL has elapsed.
func TestFileStoreEntryExpiresAfterTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewFileStore(path, 20*time.Millisecond)

	require.NoError(t, store.Set("host1.local", testRecord{IPv4: "10.0.0.1"}))

	var got testRecord
	ok, err := store.Get("host1.local", &got)
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	ok, err = store.Get("host1.local", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := store.load()
	require.NoError(t, err)
	_, stillPresent := entries["host1.local"]
	assert.False(t, stillPresent)
}

// TestFileStoreCorruptEntryIsDeletedOnAccess matches spec.md §8 S7: a
// stored entry missing data or last_seen is silently deleted on access.
func TestFileStoreCorruptEntryIsDeletedOnAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host1.local":{"data":null}}`), 0644))

	store := NewFileStore(path, time.Minute)

	var got testRecord
	ok, err := store.Get("host1.local", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := store.load()
	require.NoError(t, err)
	_, stillPresent := entries["host1.local"]
	assert.False(t, stillPresent)
}

func TestFileStoreLoadMissingFileIsEmptyNotError(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"), time.Minute)

	entries, err := store.load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStoreZeroTTLUsesDefault(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.json"), 0)
	assert.Equal(t, DefaultTTL, store.ttl)
}
