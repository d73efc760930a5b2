// Package session holds the state of one directory pick: the loaded tree,
// its default files and the user's selection.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hayeah/repopick/defaults"
	"github.com/hayeah/repopick/selection"
	"github.com/hayeah/repopick/tree"
)

// Lister reads a directory into raw entries.
type Lister interface {
	ListDirectory(ctx context.Context, root string) ([]tree.Entry, error)
}

// DefaultsFetcher returns the files the packaging tool picks by default.
type DefaultsFetcher interface {
	FetchDefaultPaths(ctx context.Context, dir string) ([]string, error)
}

// Loaded is the raw result of loading a directory.
type Loaded struct {
	Directory  string
	Generation uint64
	Full       *tree.Node
	Defaults   defaults.PathSet
	// TraversalErr reports subtrees that could not be read. Full is still
	// usable.
	TraversalErr error
}

// Loader loads directories. Each Begin starts a new generation; results
// tagged with an older generation are stale.
type Loader struct {
	Lister  Lister
	Fetcher DefaultsFetcher
	Logger  *slog.Logger

	gen atomic.Uint64
}

// NewLoader returns a Loader. fetcher may be nil, in which case no default
// files are fetched.
func NewLoader(lister Lister, fetcher DefaultsFetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{Lister: lister, Fetcher: fetcher, Logger: logger}
}

// Begin starts a new generation and returns it.
func (l *Loader) Begin() uint64 {
	return l.gen.Add(1)
}

// Current returns the latest generation.
func (l *Loader) Current() uint64 {
	return l.gen.Load()
}

// Accept reports whether a result tagged with gen is still current.
func (l *Loader) Accept(gen uint64) bool {
	return gen == l.gen.Load()
}

// Load lists dir and fetches its default files concurrently. A failed fetch
// is logged and replaced by an empty default set. Partial listings are
// returned with TraversalErr set.
func (l *Loader) Load(ctx context.Context, gen uint64, dir string) (*Loaded, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var (
		entries []tree.Entry
		paths   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = l.Lister.ListDirectory(gctx, abs)
		return err
	})
	if l.Fetcher != nil {
		g.Go(func() error {
			var err error
			paths, err = l.Fetcher.FetchDefaultPaths(gctx, abs)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.Logger.Warn("using empty default file set", "dir", abs, "error", err)
				paths = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	full, err := tree.Normalize(entries, abs)
	loaded := &Loaded{
		Directory:  abs,
		Generation: gen,
		Full:       full,
		Defaults:   defaults.NewPathSet(paths),
	}
	if err != nil {
		var traversal *tree.TraversalError
		if !errors.As(err, &traversal) {
			return nil, err
		}
		l.Logger.Warn("partial directory listing", "dir", abs, "error", err)
		loaded.TraversalErr = err
	}
	return loaded, nil
}

// Session is an immutable view of one pick. Mutating operations return a
// new Session; only Selection is mutated in place by the UI loop.
type Session struct {
	Directory  string
	Generation uint64
	FilterMode bool
	Defaults   defaults.PathSet
	// Full is the unfiltered tree; Tree is what is displayed.
	Full      *tree.Node
	Tree      *tree.Node
	Index     *tree.Index
	Selection *selection.State
	LoadErr   error
}

// New builds a session from a load. The selection starts empty and then
// receives the default files.
func New(loaded *Loaded, filterMode bool) *Session {
	s := &Session{
		Directory:  loaded.Directory,
		Generation: loaded.Generation,
		Defaults:   loaded.Defaults,
		Full:       loaded.Full,
		LoadErr:    loaded.TraversalErr,
		Selection:  selection.New(nil),
	}
	s.rebuild(filterMode)
	return s
}

// WithFilterMode returns a copy of s displaying the filtered or full tree.
// The selection is reset and defaults are applied again.
func (s *Session) WithFilterMode(on bool) *Session {
	next := *s
	next.Selection = selection.New(nil)
	next.rebuild(on)
	return &next
}

// FilterActive reports whether the displayed tree is pruned to defaults.
// Filtering only applies when there is something to filter to.
func (s *Session) FilterActive() bool {
	return s.FilterMode && s.Defaults.Len() > 0
}

func (s *Session) rebuild(filterMode bool) {
	s.FilterMode = filterMode
	s.Tree = s.Full
	if s.FilterActive() {
		s.Tree = defaults.FilterToDefaults(s.Full, s.Defaults)
	}
	s.Index = tree.NewIndex(s.Tree)
	s.Selection.Reset(s.Index)
	s.Selection.ApplyDefaults(s.Defaults, filterMode)
}
