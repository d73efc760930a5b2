package pattern

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hayeah/repopick/tree"
)

// Covers reports whether the include pattern reaches path. A result without
// an include covers everything.
func Covers(r Result, path string) (bool, error) {
	if !r.HasInclude {
		return true, nil
	}
	for _, p := range r.Patterns() {
		match, err := doublestar.Match(p, path)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", p, err)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// CoveredFiles returns the files of idx that r reaches, in tree order.
func CoveredFiles(r Result, idx *tree.Index) ([]string, error) {
	for _, p := range r.Patterns() {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern '%s'", p)
		}
	}

	var out []string
	for _, f := range idx.Files() {
		ok, err := Covers(r, f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}
