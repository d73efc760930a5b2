// Package pattern turns a selection into the include pattern passed to the
// packaging tool.
package pattern

import (
	"strings"

	"github.com/hayeah/repopick/selection"
	"github.com/hayeah/repopick/tree"
)

// Result is the pattern derived from a selection.
type Result struct {
	// Include is a comma-separated list of files and "dir/**" globs.
	Include string
	// HasInclude is false when the tool should process the whole directory.
	HasInclude bool
	// UsesWholeRoot is set when the root itself is selected.
	UsesWholeRoot bool
}

// Patterns splits Include into its individual globs.
func (r Result) Patterns() []string {
	if !r.HasInclude || r.Include == "" {
		return nil
	}
	return strings.Split(r.Include, ",")
}

// EmptySelectionError is returned when nothing is selected.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "select at least one file or folder"
}

// Validate rejects an empty selection.
func Validate(s selection.Snapshot) error {
	if len(s) == 0 {
		return &EmptySelectionError{}
	}
	return nil
}

// Synthesize builds the include pattern for s. Selected files are listed
// verbatim, then selected directories as "dir/**", each group sorted.
// Overlapping entries are kept as is.
func Synthesize(s selection.Snapshot) Result {
	if k, ok := s[""]; ok && k == tree.Directory {
		return Result{UsesWholeRoot: true}
	}

	files := s.Files()
	dirs := s.Dirs()

	parts := make([]string, 0, len(files)+len(dirs))
	parts = append(parts, files...)
	for _, d := range dirs {
		parts = append(parts, d+"/**")
	}
	if len(parts) == 0 {
		return Result{}
	}

	return Result{
		Include:    strings.Join(parts, ","),
		HasInclude: true,
	}
}
