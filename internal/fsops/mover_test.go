package fsops

import (
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// noRenameFS simulates a cross-device move by failing every rename,
// forcing the copy fallback.
type noRenameFS struct {
	FS
}

func (noRenameFS) Rename(oldpath, newpath string) error {
	return errors.New("invalid cross-device link")
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func declineAll(string) bool { return false }

func TestRelocateRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))

	mover := NewMover(NewRealFS(), declineAll, quietLogger())
	require.NoError(t, mover.Relocate(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
	assert.NoFileExists(t, src)
}

func TestRelocateCopyFallback(t *testing.T) {
	fs := noRenameFS{NewRealFS()}
	mover := NewMover(fs, declineAll, quietLogger())

	t.Run("single file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "file.txt")
		dst := filepath.Join(dir, "deep", "file.txt")
		require.NoError(t, os.WriteFile(src, []byte("bytes"), 0600))

		require.NoError(t, mover.Relocate(src, dst))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, []byte("bytes"), data)
		assert.NoFileExists(t, src)
	})

	t.Run("directory tree with special entries", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "tree")
		require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("b"), 0644))
		require.NoError(t, os.Symlink("/somewhere/else", filepath.Join(src, "link")))
		require.NoError(t, unix.Mkfifo(filepath.Join(src, "pipe"), 0644))

		dst := filepath.Join(dir, "moved")
		require.NoError(t, mover.Relocate(src, dst))

		data, err := os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), data)

		target, err := os.Readlink(filepath.Join(dst, "link"))
		require.NoError(t, err)
		assert.Equal(t, "/somewhere/else", target)

		info, err := os.Lstat(filepath.Join(dst, "pipe"))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeNamedPipe)

		assert.NoDirExists(t, src)
	})
}

func TestRelocateSpecialFile(t *testing.T) {
	newSocket := func(t *testing.T, dir string) string {
		path := filepath.Join(dir, "sock")
		listener, err := net.Listen("unix", path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = listener.Close() })
		return path
	}

	t.Run("declined special file fails the copy", func(t *testing.T) {
		dir := t.TempDir()
		src := newSocket(t, dir)

		mover := NewMover(noRenameFS{NewRealFS()}, declineAll, quietLogger())
		err := mover.Relocate(src, filepath.Join(dir, "sock-copy"))
		assert.ErrorIs(t, err, ErrSpecialFileDeclined)
	})

	t.Run("accepted special file leaves a marker", func(t *testing.T) {
		dir := t.TempDir()
		src := newSocket(t, dir)
		dst := filepath.Join(dir, "sock-copy")

		mover := NewMover(noRenameFS{NewRealFS()}, func(string) bool { return true }, quietLogger())
		require.NoError(t, mover.Relocate(src, dst))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Requiescat in pace")
		assert.NoFileExists(t, src)
	})
}

func TestRelocateBigFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "huge.bin")
	f, err := os.Create(src)
	require.NoError(t, err)
	// Sparse file over the threshold without the disk usage.
	require.NoError(t, f.Truncate(BigFileThreshold+1))
	require.NoError(t, f.Close())

	var prompted string
	confirm := func(prompt string) bool {
		prompted = prompt
		return true // delete instead of copying
	}

	mover := NewMover(noRenameFS{NewRealFS()}, confirm, quietLogger())
	dst := filepath.Join(dir, "huge-copy.bin")
	require.NoError(t, mover.Relocate(src, dst))

	assert.Contains(t, prompted, "big file")
	assert.NoFileExists(t, dst)
	assert.NoFileExists(t, src)
}
