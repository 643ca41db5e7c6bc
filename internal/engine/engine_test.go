package engine

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/rip/internal/clock"
	"github.com/danieljhkim/rip/internal/config"
	"github.com/danieljhkim/rip/internal/fsops"
	"github.com/danieljhkim/rip/internal/glob"
	"github.com/danieljhkim/rip/internal/grave"
	"github.com/danieljhkim/rip/internal/record"
)

// promptStub records every prompt and answers with a fixed response.
type promptStub struct {
	answer  bool
	prompts []string
}

func (p *promptStub) confirm(prompt string) bool {
	p.prompts = append(p.prompts, prompt)
	return p.answer
}

type testEnv struct {
	eng    *Engine
	paths  config.Paths
	prompt *promptStub
}

// newTestEnv builds an engine over a real temp filesystem with a
// working directory and graveyard under the same root.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	// The working directory path must survive EvalSymlinks, so resolve
	// the temp root up front (macOS /tmp is a symlink).
	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	paths := config.Paths{
		Graveyard: filepath.Join(resolved, "graveyard"),
		Record:    filepath.Join(resolved, "graveyard", ".record"),
		Cwd:       filepath.Join(resolved, "work"),
	}
	require.NoError(t, os.MkdirAll(paths.Cwd, 0755))
	require.NoError(t, os.MkdirAll(paths.Graveyard, 0700))

	logger := log.New()
	logger.SetOutput(io.Discard)

	prompt := &promptStub{answer: true}
	fs := fsops.NewRealFS()
	eng := New(
		fs,
		fsops.NewMover(fs, prompt.confirm, logger),
		record.NewStore(paths.Record, fs),
		glob.NewSelector(fs, glob.DefaultMaxDepth),
		clock.Fixed(time.Date(2026, time.March, 4, 15, 4, 5, 0, time.UTC)),
		prompt.confirm,
		logger,
		paths,
	)
	return &testEnv{eng: eng, paths: paths, prompt: prompt}
}

// writeWorkFile creates a file under the env working directory.
func (env *testEnv) writeWorkFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(env.paths.Cwd, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// gravePathOf is where a buried path should end up, absent conflicts.
func (env *testEnv) gravePathOf(original string) string {
	return grave.Path(env.paths.Graveyard, original)
}

// scanRecord reads the record log, failing the test on error.
func (env *testEnv) scanRecord(t *testing.T) []record.Entry {
	t.Helper()
	entries, err := record.NewStore(env.paths.Record, fsops.NewRealFS()).Scan()
	require.NoError(t, err)
	return entries
}
