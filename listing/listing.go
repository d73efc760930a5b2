// Package listing reads a directory into the raw nested entries consumed by
// tree.Normalize.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hayeah/repopick/ignore"
	"github.com/hayeah/repopick/tree"
)

// Lister lists directories honouring ignore rules. A Lister holds no state
// between calls and may be used concurrently.
type Lister struct {
	Logger *slog.Logger
	Ignore ignore.Options
}

// NewLister returns a Lister using the default ignore files.
func NewLister(logger *slog.Logger) *Lister {
	return &Lister{Logger: logger, Ignore: ignore.DefaultOptions}
}

// ListDirectory returns the entries below root. A subdirectory that cannot
// be read is returned with Err set and no children; only a failure to read
// root itself is returned as an error.
func (l *Lister) ListDirectory(ctx context.Context, root string) ([]tree.Entry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	ig, err := ignore.New(root, l.Ignore)
	if err != nil {
		return nil, err
	}

	w := walker{ctx: ctx, ig: ig, logger: l.logger()}
	entries, err := w.list(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return entries, nil
}

func (l *Lister) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

type walker struct {
	ctx    context.Context
	ig     *ignore.Ignore
	logger *slog.Logger
}

func (w *walker) list(dir string) ([]tree.Entry, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]tree.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		isDir := de.IsDir()

		ignored, err := w.ig.IsIgnored(path, isDir)
		if err != nil {
			return nil, err
		}
		if ignored {
			continue
		}

		entry := tree.Entry{Name: de.Name(), Path: path, IsDir: isDir}
		if isDir {
			children, err := w.list(path)
			if err != nil {
				if ctxErr := w.ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				w.logger.Warn("failed to read directory", "path", path, "error", err)
				entry.Err = err
			}
			entry.Children = children
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
