// Package glob expands shell-style glob patterns against a directory
// tree, bounded by a maximum walk depth.
//
// Supported syntax is what doublestar provides: '*', '**', '?',
// character classes and '{a,b}' alternation. A pattern prefixed with
// '!' negates: its matches are subtracted from the matches of the
// other patterns in the same selection.
package glob

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/danieljhkim/rip/internal/fsops"
)

// DefaultMaxDepth bounds the walk. The graveyard mirrors absolute
// paths, so graves already sit several levels deep.
const DefaultMaxDepth = 10

// HasMeta reports whether s contains glob metacharacters and should be
// expanded rather than treated as a literal path.
func HasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Selector expands glob patterns against a base directory.
type Selector struct {
	fs       fsops.FS
	maxDepth int
}

// NewSelector creates a Selector walking at most maxDepth directory
// levels below the base. Non-positive maxDepth means DefaultMaxDepth.
func NewSelector(fs fsops.FS, maxDepth int) *Selector {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Selector{fs: fs, maxDepth: maxDepth}
}

// Expand returns every path under base whose base-relative path
// matches pattern, as sorted absolute paths. Directories match too.
func (s *Selector) Expand(pattern, base string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	var matches []string
	err := s.walk(base, "", 0, func(abs, rel string) {
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			matches = append(matches, abs)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// ExpandAll expands several patterns against base, unioning their
// matches. Patterns prefixed with '!' subtract their matches from the
// result instead.
func (s *Selector) ExpandAll(patterns []string, base string) ([]string, error) {
	var (
		included []string
		seen     = make(map[string]bool)
		excluded = make(map[string]bool)
	)
	for _, pattern := range patterns {
		if negated := strings.TrimPrefix(pattern, "!"); negated != pattern {
			matches, err := s.Expand(negated, base)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				excluded[m] = true
			}
			continue
		}
		matches, err := s.Expand(pattern, base)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				included = append(included, m)
			}
		}
	}

	result := included[:0]
	for _, m := range included {
		if !excluded[m] {
			result = append(result, m)
		}
	}
	return result, nil
}

// walk visits every entry below base up to the depth bound, calling fn
// with the absolute and base-relative path of each.
func (s *Selector) walk(base, rel string, depth int, fn func(abs, rel string)) error {
	if depth >= s.maxDepth {
		return nil
	}
	entries, err := s.fs.ReadDir(filepath.Join(base, rel))
	if err != nil {
		// A base that does not exist yet simply has no matches.
		if rel == "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("walking %s: %w", filepath.Join(base, rel), err)
	}
	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())
		fn(filepath.Join(base, entryRel), entryRel)
		if entry.IsDir() {
			if err := s.walk(base, entryRel, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
