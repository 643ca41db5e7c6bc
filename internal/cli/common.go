package cli

import (
	log "github.com/sirupsen/logrus"

	"github.com/danieljhkim/rip/internal/clock"
	"github.com/danieljhkim/rip/internal/config"
	"github.com/danieljhkim/rip/internal/engine"
	"github.com/danieljhkim/rip/internal/fsops"
	"github.com/danieljhkim/rip/internal/glob"
	"github.com/danieljhkim/rip/internal/record"
)

// newEngine creates an engine with real implementations of all
// dependencies, prompting on the terminal.
func newEngine(paths *config.Paths, maxDepth int, logger *log.Logger) *engine.Engine {
	fs := fsops.NewRealFS()
	return engine.New(
		fs,
		fsops.NewMover(fs, Confirm, logger),
		record.NewStore(paths.Record, fs),
		glob.NewSelector(fs, maxDepth),
		clock.RealClock{},
		Confirm,
		logger,
		*paths,
	)
}
