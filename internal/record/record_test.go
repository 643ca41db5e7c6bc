package record

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/rip/internal/fsops"
)

var testTime = time.Date(2026, time.March, 4, 15, 4, 5, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, ".record"), fsops.NewRealFS()), dir
}

func TestAppendScan(t *testing.T) {
	store, _ := newTestStore(t)

	t.Run("missing log is empty history", func(t *testing.T) {
		entries, err := store.Scan()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("appends are read back in order", func(t *testing.T) {
		require.NoError(t, store.Append("/home/u/a", "/g/home/u/a", testTime))
		require.NoError(t, store.Append("/home/u/b", "/g/home/u/b", testTime.Add(time.Minute)))

		entries, err := store.Scan()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, Entry{
			Timestamp: testTime.Format(TimestampLayout),
			Original:  "/home/u/a",
			Grave:     "/g/home/u/a",
		}, entries[0])
		assert.Equal(t, "/home/u/b", entries[1].Original)
	})
}

func TestScanCorruptLine(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("only two\tfields\n"), 0644))

	_, err := store.Scan()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Append("/a", "/g/a", testTime))
	require.NoError(t, store.Append("/b", "/g/b", testTime))
	require.NoError(t, store.Append("/c", "/g/c", testTime))

	require.NoError(t, store.Remove(map[string]bool{"/g/b": true}))

	entries, err := store.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/g/a", entries[0].Grave)
	assert.Equal(t, "/g/c", entries[1].Grave)

	t.Run("empty set leaves the log alone", func(t *testing.T) {
		require.NoError(t, store.Remove(nil))
		again, err := store.Scan()
		require.NoError(t, err)
		assert.Equal(t, entries, again)
	})
}

func TestFindLatest(t *testing.T) {
	store, dir := newTestStore(t)

	mkGrave := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
		return path
	}

	first := mkGrave("first")
	second := mkGrave("second")
	require.NoError(t, store.Append("/orig/first", first, testTime))
	require.NoError(t, store.Append("/orig/second", second, testTime.Add(time.Minute)))

	t.Run("newest entry wins", func(t *testing.T) {
		entry, ok, err := store.FindLatest(nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, second, entry.Grave)
	})

	t.Run("predicate scopes the search", func(t *testing.T) {
		entry, ok, err := store.FindLatest(func(g string) bool { return g == first })
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, entry.Grave)
	})

	t.Run("stale entries are pruned, not returned", func(t *testing.T) {
		require.NoError(t, os.Remove(second))

		entry, ok, err := store.FindLatest(nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, entry.Grave)

		entries, err := store.Scan()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, first, entries[0].Grave)
	})

	t.Run("nothing left reports not found", func(t *testing.T) {
		require.NoError(t, os.Remove(first))

		_, ok, err := store.FindLatest(nil)
		require.NoError(t, err)
		assert.False(t, ok)

		entries, err := store.Scan()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
