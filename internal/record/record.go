// Package record manages the graveyard's record log.
//
// The log is an append-only UTF-8 text file with one entry per line,
// three tab-separated fields: timestamp, original absolute path, grave
// absolute path. It is only ever rewritten whole, when entries are
// removed after an exhume or during stale pruning.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danieljhkim/rip/internal/fsops"
)

// TimestampLayout is the display format of record timestamps. It is
// stored but never parsed back; the field is an opaque display string.
const TimestampLayout = time.ANSIC

// ErrCorruptRecord indicates a log line that does not split into three
// tab-separated fields. This is fatal: the log is foundational shared
// state and silently dropping lines would lose graves.
var ErrCorruptRecord = errors.New("corrupt record line")

// Entry is one line of the record log.
type Entry struct {
	// Timestamp is the burial time, formatted with TimestampLayout.
	Timestamp string

	// Original is the absolute path the item was buried from.
	Original string

	// Grave is the absolute path of the item inside the graveyard.
	Grave string
}

// Store reads and writes the record log at a fixed path.
type Store struct {
	path string
	fs   fsops.FS
}

// NewStore creates a Store for the log at path. The file is created on
// first append.
func NewStore(path string, fs fsops.FS) *Store {
	return &Store{path: path, fs: fs}
}

// Path returns the location of the record log.
func (s *Store) Path() string {
	return s.path
}

// Append writes one entry to the end of the log, creating the file if
// it does not exist yet.
func (s *Store) Append(original, grave string, ts time.Time) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening record %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s\t%s\t%s\n", ts.Format(TimestampLayout), original, grave); err != nil {
		return fmt.Errorf("appending to record %s: %w", s.path, err)
	}
	return f.Sync()
}

// Scan parses every line of the log in order. A missing log file is an
// empty history, not an error. A malformed line fails loudly with
// ErrCorruptRecord.
func (s *Store) Scan() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening record %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		entry, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, n, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading record %s: %w", s.path, err)
	}
	return entries, nil
}

// Remove rewrites the log, keeping only the lines whose grave path is
// not in graves. The rewrite goes through a temp file in the same
// directory and a rename, so readers never observe a partial log.
func (s *Store) Remove(graves map[string]bool) error {
	if len(graves) == 0 {
		return nil
	}
	entries, err := s.Scan()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".record-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp record: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	for _, entry := range entries {
		if graves[entry.Grave] {
			continue
		}
		if _, err := fmt.Fprintf(tmp, "%s\t%s\t%s\n", entry.Timestamp, entry.Original, entry.Grave); err != nil {
			return fmt.Errorf("writing temp record: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp record: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing record %s: %w", s.path, err)
	}
	tmp = nil
	return nil
}

// FindLatest returns the most recently appended entry whose grave path
// satisfies pred (nil means no scoping) and still exists on disk.
//
// Entries encountered whose grave is gone are pruned from the log as a
// side effect, so out-of-band deletions self-heal without a separate
// maintenance pass.
func (s *Store) FindLatest(pred func(grave string) bool) (Entry, bool, error) {
	entries, err := s.Scan()
	if err != nil {
		return Entry{}, false, err
	}

	stale := make(map[string]bool)
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if pred != nil && !pred(entry.Grave) {
			continue
		}
		if s.fs.Exists(entry.Grave) {
			if err := s.Remove(stale); err != nil {
				return Entry{}, false, err
			}
			return entry, true, nil
		}
		stale[entry.Grave] = true
	}

	if err := s.Remove(stale); err != nil {
		return Entry{}, false, err
	}
	return Entry{}, false, nil
}

func parseLine(line string) (Entry, error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 3 {
		return Entry{}, fmt.Errorf("%w: %d of 3 fields", ErrCorruptRecord, len(fields))
	}
	return Entry{Timestamp: fields[0], Original: fields[1], Grave: fields[2]}, nil
}
