package grave

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/rip/internal/fsops"
)

func TestPath(t *testing.T) {
	t.Run("mirrors absolute paths under the graveyard", func(t *testing.T) {
		got := Path("/tmp/graveyard-u", "/home/u/notes.txt")
		assert.Equal(t, "/tmp/graveyard-u/home/u/notes.txt", got)
	})

	t.Run("tolerates relative input", func(t *testing.T) {
		got := Path("/tmp/graveyard-u", "home/u/notes.txt")
		assert.Equal(t, "/tmp/graveyard-u/home/u/notes.txt", got)
	})
}

func TestRel(t *testing.T) {
	orig, ok := Rel("/tmp/graveyard-u", "/tmp/graveyard-u/home/u/notes.txt")
	require.True(t, ok)
	assert.Equal(t, "/home/u/notes.txt", orig)

	_, ok = Rel("/tmp/graveyard-u", "/home/u/notes.txt")
	assert.False(t, ok)
}

func TestResolveConflict(t *testing.T) {
	fs := fsops.NewRealFS()
	dir := t.TempDir()

	t.Run("free candidate is returned unchanged", func(t *testing.T) {
		candidate := filepath.Join(dir, "free.txt")
		got, err := ResolveConflict(fs, candidate)
		require.NoError(t, err)
		assert.Equal(t, candidate, got)
	})

	t.Run("occupied candidate gets the first free suffix", func(t *testing.T) {
		candidate := filepath.Join(dir, "taken.txt")
		require.NoError(t, os.WriteFile(candidate, []byte("a"), 0644))
		require.NoError(t, os.WriteFile(candidate+"~1", []byte("b"), 0644))

		got, err := ResolveConflict(fs, candidate)
		require.NoError(t, err)
		assert.Equal(t, candidate+"~2", got)
	})

	t.Run("dangling symlink counts as occupied", func(t *testing.T) {
		candidate := filepath.Join(dir, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), candidate))

		got, err := ResolveConflict(fs, candidate)
		require.NoError(t, err)
		assert.Equal(t, candidate+"~1", got)
	})

	t.Run("suffix chain stays distinct across repeated resolution", func(t *testing.T) {
		candidate := filepath.Join(dir, "chain")
		for i := 0; i < 5; i++ {
			got, err := ResolveConflict(fs, candidate)
			require.NoError(t, err)
			if i == 0 {
				assert.Equal(t, candidate, got)
			} else {
				assert.Equal(t, fmt.Sprintf("%s~%d", candidate, i), got)
			}
			require.NoError(t, os.WriteFile(got, nil, 0644))
		}
	})
}

func TestBlockingAncestor(t *testing.T) {
	fs := fsops.NewRealFS()
	dir := t.TempDir()

	t.Run("no blocking ancestor for creatable paths", func(t *testing.T) {
		_, ok := BlockingAncestor(fs, filepath.Join(dir, "a", "b", "c"))
		assert.False(t, ok)
	})

	t.Run("finds the file blocking a nested path", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		got, ok := BlockingAncestor(fs, filepath.Join(blocker, "child", "leaf"))
		require.True(t, ok)
		assert.Equal(t, blocker, got)
	})

	t.Run("directories do not block", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0755))

		_, ok := BlockingAncestor(fs, filepath.Join(sub, "leaf"))
		assert.False(t, ok)
	})
}
