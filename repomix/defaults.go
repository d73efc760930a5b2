package repomix

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// FetchDefaultsError wraps any failure to compute the default file set.
// Callers treat it as "no defaults".
type FetchDefaultsError struct {
	Dir string
	Err error
}

func (e *FetchDefaultsError) Error() string {
	return fmt.Sprintf("failed to fetch default files for %s: %v", e.Dir, e.Err)
}

func (e *FetchDefaultsError) Unwrap() error {
	return e.Err
}

// DefaultsFetcher asks the tool which files it would pack on its own.
type DefaultsFetcher struct {
	Runner Runner
	Logger *slog.Logger
	// TempDir overrides os.TempDir for the scratch output file.
	TempDir string
}

// NewDefaultsFetcher returns a fetcher using runner.
func NewDefaultsFetcher(runner Runner, logger *slog.Logger) *DefaultsFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DefaultsFetcher{Runner: runner, Logger: logger}
}

// FetchDefaultPaths runs the tool over dir with its default settings and
// returns the relative paths of the files it packed. Every failure is
// returned as a *FetchDefaultsError.
func (f *DefaultsFetcher) FetchDefaultPaths(ctx context.Context, dir string) ([]string, error) {
	tmp, err := os.CreateTemp(f.TempDir, "repopick-defaults-*.txt")
	if err != nil {
		return nil, &FetchDefaultsError{Dir: dir, Err: err}
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			f.Logger.Warn("failed to delete temp file", "path", tmpPath, "error", err)
		}
	}()

	_, err = f.Runner.Run(ctx, Options{
		Directories:   []string{dir},
		Style:         StylePlain,
		ParsableStyle: true,
		Output:        tmpPath,
	})
	if err != nil {
		return nil, &FetchDefaultsError{Dir: dir, Err: err}
	}

	content, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, &FetchDefaultsError{Dir: dir, Err: err}
	}

	paths := ParseParsableOutput(string(content))
	f.Logger.Debug("fetched default files", "dir", dir, "count", len(paths))
	return paths, nil
}

var (
	plainFileHeader = regexp.MustCompile(`={16}\r?\nFile: ([^\r\n]+)\r?\n={16}`)
	xmlFileHeader   = regexp.MustCompile(`<file path="([^"]+)">`)
)

// ParseParsableOutput extracts file paths from a packed artifact. Plain
// style headers are
//
//	================
//	File: src/a.ts
//	================
//
// and xml style uses <file path="src/a.ts">. Plain headers win when both
// are present.
func ParseParsableOutput(content string) []string {
	paths := collect(plainFileHeader, content)
	if len(paths) > 0 {
		return paths
	}
	paths = collect(xmlFileHeader, content)
	for i, p := range paths {
		paths[i] = html.UnescapeString(p)
	}
	return paths
}

func collect(re *regexp.Regexp, content string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		if p := strings.TrimSpace(m[1]); p != "" {
			out = append(out, p)
		}
	}
	return out
}
