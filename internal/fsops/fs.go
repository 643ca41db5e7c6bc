// Package fsops provides the filesystem operations behind burying and
// exhuming.
//
// All filesystem mutations in rip go through the FS interface so the
// engine and the Mover can be exercised against a temp directory in
// tests. RealFS is a thin veneer over the os package plus unix.Mkfifo
// for named-pipe recreation.
package fsops

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// FS provides an abstraction for filesystem operations.
type FS interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Readlink reads the target of a symlink.
	Readlink(path string) (string, error)

	// Symlink creates a symbolic link from newname to oldname.
	Symlink(oldname, newname string) error

	// Mkfifo creates a named pipe with the given permission bits.
	Mkfifo(path string, mode uint32) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Rename atomically renames oldpath to newpath. Fails across
	// filesystem boundaries.
	Rename(oldpath, newpath string) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path string) error

	// ReadDir reads the named directory, returning its entries.
	ReadDir(path string) ([]os.DirEntry, error)

	// Open opens the named file for reading.
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates the named file with the given mode.
	Create(path string, perm os.FileMode) (io.WriteCloser, error)

	// Exists reports whether a path exists, without following symlinks.
	// A dangling symlink exists.
	Exists(path string) bool
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Lstat returns file info without following symlinks.
func (fs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Readlink reads the target of a symlink.
func (fs *RealFS) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

// Symlink creates a symbolic link from newname to oldname.
func (fs *RealFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

// Mkfifo creates a named pipe with the given permission bits.
func (fs *RealFS) Mkfifo(path string, mode uint32) error {
	return unix.Mkfifo(path, mode)
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Rename atomically renames oldpath to newpath.
func (fs *RealFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove removes a file or empty directory.
func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll removes a path and all its contents.
func (fs *RealFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// ReadDir reads the named directory, returning its entries.
func (fs *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Open opens the named file for reading.
func (fs *RealFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create creates or truncates the named file with the given mode.
func (fs *RealFS) Create(path string, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
}

// Exists reports whether a path exists, without following symlinks.
func (fs *RealFS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
