package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// BigFileThreshold is the size above which a copy fallback prompts
// before transferring the file.
const BigFileThreshold = 500 * 1024 * 1024 // 500 MiB

// markerText is written in place of special files the user chose to
// permanently delete, so the grave still occupies its recorded slot.
const markerText = "This is a marker for a file that was permanently deleted. Requiescat in pace."

// ErrSpecialFileDeclined indicates the user declined to permanently
// delete a special file that cannot be copied.
var ErrSpecialFileDeclined = errors.New("special file declined")

// ConfirmFunc asks the user a yes/no question and reports the answer.
type ConfirmFunc func(prompt string) bool

// Mover performs the physical relocation of files and directory trees.
// It is the engine behind both bury and unbury, which are symmetric.
type Mover struct {
	fs      FS
	confirm ConfirmFunc
	logger  *log.Logger
}

// NewMover creates a Mover. The confirm function is consulted for large
// files and for special files that cannot be copied.
func NewMover(fs FS, confirm ConfirmFunc, logger *log.Logger) *Mover {
	return &Mover{fs: fs, confirm: confirm, logger: logger}
}

// Relocate moves src to dst. It first attempts an atomic rename, and on
// failure (typically a cross-device link error) falls back to a
// recursive copy followed by removal of the source.
//
// Relocate does not roll back a partially-created destination; the
// caller is responsible for removing it on error.
func (m *Mover) Relocate(src, dst string) error {
	if err := m.fs.Rename(src, dst); err == nil {
		return nil
	}

	m.logger.WithFields(log.Fields{"src": src, "dst": dst}).
		Debug("rename failed, falling back to copy")

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", dst, err)
	}

	info, err := m.fs.Lstat(src)
	if err != nil {
		return fmt.Errorf("reading metadata of %s: %w", src, err)
	}

	if info.IsDir() {
		if err := m.copyTree(src, dst); err != nil {
			return err
		}
		if err := m.fs.RemoveAll(src); err != nil {
			return fmt.Errorf("removing source tree %s: %w", src, err)
		}
		return nil
	}

	if err := m.copyEntry(src, dst, info); err != nil {
		return err
	}
	if err := m.fs.Remove(src); err != nil {
		return fmt.Errorf("removing source %s: %w", src, err)
	}
	return nil
}

// copyTree walks src depth-first, recreating each directory under dst
// and copying every leaf entry.
func (m *Mover) copyTree(src, dst string) error {
	info, err := m.fs.Lstat(src)
	if err != nil {
		return fmt.Errorf("reading metadata of %s: %w", src, err)
	}
	if err := m.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}

	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", src, err)
	}
	for _, entry := range entries {
		var (
			srcPath = filepath.Join(src, entry.Name())
			dstPath = filepath.Join(dst, entry.Name())
		)
		if entry.IsDir() {
			if err := m.copyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		entryInfo, err := m.fs.Lstat(srcPath)
		if err != nil {
			return fmt.Errorf("reading metadata of %s: %w", srcPath, err)
		}
		if err := m.copyEntry(srcPath, dstPath, entryInfo); err != nil {
			return err
		}
	}
	return nil
}

// copyEntry copies a single non-directory entry according to its type:
// regular files are byte-copied, symlinks are recreated pointing at the
// same target, and named pipes are recreated with the same permission
// bits. Any other special file is attempted as a plain copy, and on
// failure the user decides whether to permanently delete it instead.
func (m *Mover) copyEntry(src, dst string, info os.FileInfo) error {
	if info.Mode().IsRegular() && info.Size() > BigFileThreshold {
		prompt := fmt.Sprintf("About to copy a big file (%s is %s). Permanently delete it instead?",
			src, humanize.IBytes(uint64(info.Size())))
		if m.confirm(prompt) {
			// Skip the copy; the source is removed by the caller,
			// which deletes the file outright.
			return nil
		}
	}

	switch {
	case info.Mode().IsRegular():
		if err := m.copyFile(src, dst, info.Mode().Perm()); err != nil {
			return fmt.Errorf("copying %s to %s: %w", src, dst, err)
		}
	case info.Mode()&os.ModeSymlink != 0:
		target, err := m.fs.Readlink(src)
		if err != nil {
			return fmt.Errorf("reading symlink %s: %w", src, err)
		}
		if err := m.fs.Symlink(target, dst); err != nil {
			return fmt.Errorf("recreating symlink %s: %w", dst, err)
		}
	case info.Mode()&os.ModeNamedPipe != 0:
		if err := m.fs.Mkfifo(dst, uint32(info.Mode().Perm())); err != nil {
			return fmt.Errorf("recreating fifo %s: %w", dst, err)
		}
	default:
		// Device nodes, sockets: a plain copy almost certainly fails.
		err := m.copyFile(src, dst, info.Mode().Perm())
		if err == nil {
			return nil
		}
		m.logger.WithField("path", src).Debug("non-regular file, copy failed")
		if !m.confirm(fmt.Sprintf("Cannot copy non-regular file %s. Permanently delete it?", src)) {
			return fmt.Errorf("copying %s: %w", src, ErrSpecialFileDeclined)
		}
		if err := m.writeMarker(dst); err != nil {
			return fmt.Errorf("writing marker for %s: %w", src, err)
		}
	}
	return nil
}

func (m *Mover) copyFile(src, dst string, perm os.FileMode) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := m.fs.Create(dst, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (m *Mover) writeMarker(dst string) error {
	out, err := m.fs.Create(dst, 0644)
	if err != nil {
		return err
	}
	if _, err := out.Write([]byte(markerText)); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
