// Package grave maps between original filesystem paths and their
// mirrored locations inside the graveyard.
//
// The graveyard mirrors the absolute path structure of everything it
// holds: a buried file at /a/b/c lives at <graveyard>/a/b/c. This lets
// the grave path be derived purely from the original path (and vice
// versa) without consulting the record log.
package grave

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/rip/internal/fsops"
)

// ErrConflictExhausted indicates the numeric suffix space for conflict
// renames ran out. Practically unreachable.
var ErrConflictExhausted = errors.New("conflict suffix space exhausted")

// Path mirrors original under graveyard. The leading separator of
// original is stripped so the concatenation is well-formed even though
// original is absolute.
func Path(graveyard, original string) string {
	return filepath.Join(graveyard, strings.TrimPrefix(original, string(os.PathSeparator)))
}

// Rel maps a grave path back to the original path it mirrors. The
// second return is false when p is not under graveyard.
func Rel(graveyard, p string) (string, bool) {
	rel, err := filepath.Rel(graveyard, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", false
	}
	return string(os.PathSeparator) + rel, true
}

// ResolveConflict returns candidate if nothing occupies it, otherwise
// the first suffixed variant (candidate~1, candidate~2, ...) that does
// not exist. Dangling symlinks count as occupied.
func ResolveConflict(fs fsops.FS, candidate string) (string, error) {
	if !fs.Exists(candidate) {
		return candidate, nil
	}
	for i := uint64(1); i < math.MaxUint64; i++ {
		renamed := fmt.Sprintf("%s~%d", candidate, i)
		if !fs.Exists(renamed) {
			return renamed, nil
		}
	}
	return "", fmt.Errorf("renaming %s: %w", candidate, ErrConflictExhausted)
}

// BlockingAncestor walks from candidate upward and returns the first
// ancestor that exists as a non-directory, which would prevent creating
// candidate as a nested path. The second return is false when no such
// ancestor exists.
func BlockingAncestor(fs fsops.FS, candidate string) (string, bool) {
	for p := candidate; ; {
		if info, err := fs.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", false
		}
		p = parent
	}
}
