package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hayeah/goo"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/repopick"
	"github.com/hayeah/repopick/internal/clipboard"
	"github.com/hayeah/repopick/internal/metrics"
	"github.com/hayeah/repopick/listing"
	"github.com/hayeah/repopick/repomix"
	"github.com/hayeah/repopick/session"
)

type fakeRunner struct {
	calls  []repomix.Options
	output string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, opts repomix.Options) (repomix.Result, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return repomix.Result{}, f.err
	}
	return repomix.Result{Output: f.output}, nil
}

type fakeFetcher struct {
	paths []string
}

func (f *fakeFetcher) FetchDefaultPaths(ctx context.Context, dir string) ([]string, error) {
	return f.paths, nil
}

// writeFiles creates files below dir from a path -> content map.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// sampleProject is src/a.ts, src/c.ts and docs/readme.md.
func sampleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/a.ts":       "export const a = 1;\n",
		"src/c.ts":       "export const c = 3;\n",
		"docs/readme.md": "# readme\n",
	})
	return dir
}

type testPipeline struct {
	*Pipeline
	runner    *fakeRunner
	clipboard *clipboard.Memory
}

// newTestPipeline wires a pipeline over a real lister and history database
// with a fake repomix.
func newTestPipeline(t *testing.T, dir string, defaultPaths ...string) *testPipeline {
	t.Helper()

	cfg := repopick.DefaultConfig()
	cfg.DefaultFilesOnly = false
	logger := slog.New(slog.DiscardHandler)

	db, err := repopick.OpenDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	history, err := repopick.ProvideHistoryStore(db, goo.ProvideDBMigrator(db, logger), logger)
	require.NoError(t, err)

	runner := &fakeRunner{output: "packed output\n"}
	cb := &clipboard.Memory{}

	return &testPipeline{
		Pipeline: &Pipeline{
			Config:    cfg,
			Logger:    logger,
			History:   history,
			Runner:    runner,
			Loader:    session.NewLoader(listing.NewLister(logger), &fakeFetcher{paths: defaultPaths}, logger),
			Counter:   &metrics.SimpleCounter{},
			Clipboard: cb,
			Dir:       dir,
		},
		runner:    runner,
		clipboard: cb,
	}
}
