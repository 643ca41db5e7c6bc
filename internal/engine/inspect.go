package engine

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// linesToInspect is how many leading lines a file preview shows.
	linesToInspect = 6

	// filesToInspect is how many top-level entries a directory preview
	// shows.
	filesToInspect = 6
)

// preview builds the inspection text shown before the bury prompt: the
// target's size plus its first few lines (files) or entries
// (directories).
func (e *Engine) preview(source string, info os.FileInfo) string {
	var b strings.Builder
	if info.IsDir() {
		fmt.Fprintf(&b, "%s: directory, %s including:\n", source, humanize.IBytes(e.treeSize(source)))
		entries, err := e.fs.ReadDir(source)
		if err == nil {
			for i, entry := range entries {
				if i == filesToInspect {
					break
				}
				fmt.Fprintf(&b, "%s\n", filepath.Join(source, entry.Name()))
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "%s: file, %s\n", source, humanize.IBytes(uint64(info.Size())))
	f, err := e.fs.Open(source)
	if err != nil {
		fmt.Fprintf(&b, "problem reading %s\n", source)
		return b.String()
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for i := 0; i < linesToInspect && scanner.Scan(); i++ {
		fmt.Fprintf(&b, "> %s\n", scanner.Text())
	}
	return b.String()
}

// treeSize sums the sizes of every entry below root.
func (e *Engine) treeSize(root string) uint64 {
	var total uint64
	entries, err := e.fs.ReadDir(root)
	if err != nil {
		return 0
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			total += e.treeSize(path)
			continue
		}
		if info, err := e.fs.Lstat(path); err == nil {
			total += uint64(info.Size())
		}
	}
	return total
}
