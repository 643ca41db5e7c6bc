// Package engine provides the core graveyard logic behind rip.
//
// The engine is the orchestration layer between the CLI and the
// lower-level components. It sequences path resolution, record keeping
// and physical moves into the four user-facing operations:
//
//   - Bury: relocate targets into the graveyard and record them
//   - Unbury: restore previously buried items to their original paths
//   - Seance: list graves recorded under some scope
//   - Decompose: permanently erase the entire graveyard
//
// Operations report their results as outcome records; the engine never
// prints. The only user interaction it performs goes through the
// injected confirm function.
//
// The record log is treated as exclusively owned for the duration of an
// operation. No file locking is used, so two concurrent invocations
// racing on the same graveyard can corrupt the log.
package engine

import (
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/danieljhkim/rip/internal/clock"
	"github.com/danieljhkim/rip/internal/config"
	"github.com/danieljhkim/rip/internal/fsops"
	"github.com/danieljhkim/rip/internal/glob"
	"github.com/danieljhkim/rip/internal/grave"
	"github.com/danieljhkim/rip/internal/record"
)

// Engine orchestrates all graveyard operations.
type Engine struct {
	fs       fsops.FS
	mover    *fsops.Mover
	records  *record.Store
	selector *glob.Selector
	clock    clock.Clock
	confirm  fsops.ConfirmFunc
	logger   *log.Logger
	paths    config.Paths
}

// New creates an Engine with the given dependencies.
func New(
	fs fsops.FS,
	mover *fsops.Mover,
	records *record.Store,
	selector *glob.Selector,
	clk clock.Clock,
	confirm fsops.ConfirmFunc,
	logger *log.Logger,
	paths config.Paths,
) *Engine {
	return &Engine{
		fs:       fs,
		mover:    mover,
		records:  records,
		selector: selector,
		clock:    clk,
		confirm:  confirm,
		logger:   logger,
		paths:    paths,
	}
}

// inGraveyard reports whether path is the graveyard root or under it.
func (e *Engine) inGraveyard(path string) bool {
	root := filepath.Clean(e.paths.Graveyard)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// localScope is the graveyard subtree mirroring the current directory.
func (e *Engine) localScope() string {
	return grave.Path(e.paths.Graveyard, e.paths.Cwd)
}
