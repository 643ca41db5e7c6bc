package integration

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/rip/internal/clock"
	"github.com/danieljhkim/rip/internal/config"
	"github.com/danieljhkim/rip/internal/engine"
	"github.com/danieljhkim/rip/internal/fsops"
	"github.com/danieljhkim/rip/internal/glob"
	"github.com/danieljhkim/rip/internal/record"
)

type testEnv struct {
	eng       *engine.Engine
	cwd       string
	graveyard string
}

// newTestEnv assembles the engine exactly the way the CLI does, but
// rooted in a temp directory and with every prompt answered yes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	paths := config.Paths{
		Graveyard: filepath.Join(resolved, "graveyard"),
		Record:    filepath.Join(resolved, "graveyard", ".record"),
		Cwd:       filepath.Join(resolved, "work"),
	}
	require.NoError(t, os.MkdirAll(paths.Cwd, 0755))
	require.NoError(t, paths.EnsureGraveyard())

	logger := log.New()
	logger.SetOutput(io.Discard)

	confirm := func(string) bool { return true }
	fs := fsops.NewRealFS()
	eng := engine.New(
		fs,
		fsops.NewMover(fs, confirm, logger),
		record.NewStore(paths.Record, fs),
		glob.NewSelector(fs, glob.DefaultMaxDepth),
		clock.RealClock{},
		confirm,
		logger,
		paths,
	)
	return &testEnv{eng: eng, cwd: paths.Cwd, graveyard: paths.Graveyard}
}

// writeFile creates a file (and parents) under the working directory.
func (env *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(env.cwd, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
