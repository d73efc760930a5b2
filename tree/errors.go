package tree

import (
	"errors"
	"fmt"
	"strings"
)

// SkipChildren is returned by a Walk callback to skip a node's children.
var SkipChildren = errors.New("skip children")

// Failure is a directory that could not be read.
type Failure struct {
	Path string
	Err  error
}

// TraversalError collects the subtrees that could not be read while
// normalizing a listing. The tree returned alongside it is still usable:
// each failed directory is present with no children.
type TraversalError struct {
	Failures []Failure
}

func (e *TraversalError) Error() string {
	if len(e.Failures) == 1 {
		f := e.Failures[0]
		return fmt.Sprintf("failed to read %s: %v", displayPath(f.Path), f.Err)
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", displayPath(f.Path), f.Err))
	}
	return fmt.Sprintf("failed to read %d directories: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes the underlying read errors to errors.Is / errors.As.
func (e *TraversalError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}
