// Package ignore decides which paths are hidden from the file listing.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dgitignore "github.com/denormal/go-gitignore"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// RepomixIgnoreFile is the packaging tool's own ignore file.
const RepomixIgnoreFile = ".repomixignore"

// Options selects the rule sources.
type Options struct {
	// Gitignore reads .gitignore files anywhere below the root.
	Gitignore bool
	// RepomixIgnore reads <root>/.repomixignore.
	RepomixIgnore bool
	// Patterns are extra gitignore-style patterns relative to the root.
	Patterns []string
}

// DefaultOptions honours both ignore files.
var DefaultOptions = Options{Gitignore: true, RepomixIgnore: true}

// Ignore encapsulates gitignore pattern matching functionality
type Ignore struct {
	matcher  gitignore.Matcher
	repomix  dgitignore.GitIgnore
	rootPath string
}

// New creates an Ignore for rootPath.
func New(rootPath string, opts Options) (*Ignore, error) {
	ig := &Ignore{rootPath: filepath.Clean(rootPath)}

	var patterns []gitignore.Pattern
	if opts.Gitignore {
		// Unreadable subdirectories are reported by the listing itself; keep
		// whatever patterns were read before the failure.
		read, err := gitignore.ReadPatterns(osfs.New(ig.rootPath), []string{})
		if err != nil && !errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
		}
		patterns = append(patterns, read...)
	}
	for _, p := range opts.Patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	if len(patterns) > 0 {
		ig.matcher = gitignore.NewMatcher(patterns)
	}

	if opts.RepomixIgnore {
		file := filepath.Join(ig.rootPath, RepomixIgnoreFile)
		m, err := dgitignore.NewFromFile(file)
		switch {
		case err == nil:
			ig.repomix = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", RepomixIgnoreFile, err)
		}
	}

	return ig, nil
}

// IsIgnored checks if a path should be ignored. path is a host path below
// the root.
func (ig *Ignore) IsIgnored(path string, isDir bool) (bool, error) {
	// Skip .git directory
	if isDir && filepath.Base(path) == ".git" {
		return true, nil
	}

	// Convert absolute path to a relative path for the matcher
	relPath, err := filepath.Rel(ig.rootPath, path)
	if err != nil {
		return false, err
	}

	// Skip the root directory
	if relPath == "." {
		return false, nil
	}

	if ig.matcher != nil {
		parts := strings.Split(relPath, string(os.PathSeparator))
		if ig.matcher.Match(parts, isDir) {
			return true, nil
		}
	}

	if ig.repomix != nil {
		if m := ig.repomix.Relative(relPath, isDir); m != nil && m.Ignore() {
			return true, nil
		}
	}

	return false, nil
}
