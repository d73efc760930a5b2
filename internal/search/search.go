// Package search filters tree paths for the picker's search box.
//
// A query is whitespace-separated terms, all of which must match:
//
//	foo     fuzzy match (scored)
//	^src    path starts with "src"
//	.go$    path ends with ".go"
//	'util   a word starting with "util"
//	'util'  the whole word "util"
//	!test   none of the above matches "test"
//
// Literal terms are case-insensitive.
package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

type term struct {
	raw    string
	text   string
	negate bool
	// fuzzy terms have no modifiers and are matched by sahilm/fuzzy.
	fuzzy     bool
	head      bool
	tail      bool
	wordStart bool
	wordEnd   bool
}

// Query is a parsed search string.
type Query struct {
	terms []term
}

// Match is a path that satisfied every term.
type Match struct {
	// Index into the slice given to Filter.
	Index int
	Score int
}

// Parse parses q. An empty query matches everything.
func Parse(q string) (Query, error) {
	var out Query
	for _, raw := range strings.Fields(q) {
		t, err := parseTerm(raw)
		if err != nil {
			return Query{}, err
		}
		out.terms = append(out.terms, t)
	}
	return out, nil
}

func parseTerm(raw string) (term, error) {
	t := term{raw: raw}
	p := raw

	if strings.HasPrefix(p, "!") {
		t.negate = true
		p = p[1:]
	}
	if strings.HasPrefix(p, "'") {
		t.wordStart = true
		p = p[1:]
		if len(p) > 0 && strings.HasSuffix(p, "'") {
			t.wordEnd = true
			p = p[:len(p)-1]
		}
	}
	if strings.HasPrefix(p, "^") {
		t.head = true
		p = p[1:]
	}
	if strings.HasSuffix(p, "$") {
		t.tail = true
		p = p[:len(p)-1]
	}
	if p == "" {
		return term{}, fmt.Errorf("empty search term %q", raw)
	}

	t.text = strings.ToLower(p)
	t.fuzzy = !t.negate && !t.head && !t.tail && !t.wordStart
	return t, nil
}

// Empty reports whether q has no terms.
func (q Query) Empty() bool {
	return len(q.terms) == 0
}

// Filter returns the paths matching q, best fuzzy score first. Ties keep
// the input order.
func (q Query) Filter(paths []string) []Match {
	scores := make([]int, len(paths))
	alive := make([]bool, len(paths))
	lower := make([]string, len(paths))
	for i, p := range paths {
		alive[i] = true
		lower[i] = strings.ToLower(p)
	}

	for _, t := range q.terms {
		if t.fuzzy {
			hit := make([]bool, len(paths))
			for _, m := range fuzzy.Find(t.text, lower) {
				hit[m.Index] = true
				scores[m.Index] += m.Score
			}
			for i := range alive {
				alive[i] = alive[i] && hit[i]
			}
			continue
		}
		for i := range alive {
			if alive[i] && t.literal(lower[i]) == t.negate {
				alive[i] = false
			}
		}
	}

	var out []Match
	for i, ok := range alive {
		if ok {
			out = append(out, Match{Index: i, Score: scores[i]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// literal matches t against a lower-cased path, ignoring negation.
func (t term) literal(path string) bool {
	switch {
	case t.head && t.tail && !t.wordStart:
		return path == t.text
	case t.head:
		return strings.HasPrefix(path, t.text) && t.boundaries(path, 0)
	case t.tail:
		return strings.HasSuffix(path, t.text) && t.boundaries(path, len(path)-len(t.text))
	}

	for start := 0; start+len(t.text) <= len(path); {
		rel := strings.Index(path[start:], t.text)
		if rel < 0 {
			return false
		}
		if t.boundaries(path, start+rel) {
			return true
		}
		start += rel + 1
	}
	return false
}

// boundaries checks the word modifiers for an occurrence at idx.
func (t term) boundaries(s string, idx int) bool {
	if t.wordStart && idx > 0 && isWordChar(rune(s[idx-1])) {
		return false
	}
	end := idx + len(t.text)
	if t.wordEnd && end < len(s) && isWordChar(rune(s[end])) {
		return false
	}
	return true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
