// Package chart renders per-file token counts as an ASCII bar chart,
// collapsing small directories into "dir/**" buckets.
package chart

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hayeah/repopick/internal/metrics"
)

// Options controls layout.
type Options struct {
	// BarWidth is the width of the longest bar. 0 picks 35% of Width, at
	// most 30 columns.
	BarWidth int
	// Width is the terminal width in columns.
	Width int
	// ThresholdPct collapses children smaller than this share of the total.
	ThresholdPct float64
	FillRune     rune
}

// DefaultOptions returns the usual layout for a terminal of width columns.
func DefaultOptions(width int) Options {
	return Options{Width: width, ThresholdPct: 1, FillRune: '█'}
}

// Print writes the chart for files to w.
func Print(w io.Writer, files []metrics.Entry, opt Options) error {
	root, total := buildTree(files)
	buckets := collapse(root, total, opt.ThresholdPct)
	for _, ln := range layout(buckets, total, len(files), opt) {
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return err
		}
	}
	return nil
}

type dirNode struct {
	name     string
	isFile   bool
	tokens   int
	children map[string]*dirNode
}

func buildTree(files []metrics.Entry) (*dirNode, int) {
	root := &dirNode{children: map[string]*dirNode{}}
	for _, f := range files {
		cur := root
		parts := strings.Split(f.Name, "/")
		for i, part := range parts {
			next, ok := cur.children[part]
			if !ok {
				next = &dirNode{name: part, isFile: i == len(parts)-1, children: map[string]*dirNode{}}
				cur.children[part] = next
			}
			cur = next
		}
		cur.tokens = f.Tokens
	}
	return root, rollUp(root)
}

func rollUp(n *dirNode) int {
	if n.isFile {
		return n.tokens
	}
	n.tokens = 0
	for _, c := range n.children {
		n.tokens += rollUp(c)
	}
	return n.tokens
}

type bucket struct {
	label  string
	tokens int
}

// collapse walks the tree keeping every file or directory at or above the
// threshold and merging the rest of each directory into one "dir/**" bucket.
func collapse(root *dirNode, total int, thresholdPct float64) []bucket {
	thresh := float64(total) * thresholdPct / 100

	var out []bucket
	var walk func(n *dirNode, path string)
	walk = func(n *dirNode, path string) {
		if n.isFile {
			out = append(out, bucket{label: path, tokens: n.tokens})
			return
		}

		small := 0
		for _, c := range sortedChildren(n) {
			if float64(c.tokens) < thresh {
				small += c.tokens
				continue
			}
			walk(c, join(path, c.name))
		}
		if small > 0 {
			out = append(out, bucket{label: join(path, "**"), tokens: small})
		}
	}
	walk(root, "")
	return out
}

func sortedChildren(n *dirNode) []*dirNode {
	out := make([]*dirNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func layout(buckets []bucket, total, fileCount int, opt Options) []string {
	if len(buckets) == 0 || total == 0 {
		return []string{"No tokens recorded"}
	}
	const pctW, tokensW, gapW = 6, 7, 2

	// largest first, ties by label
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].tokens != buckets[j].tokens {
			return buckets[i].tokens > buckets[j].tokens
		}
		return buckets[i].label < buckets[j].label
	})

	barW := opt.BarWidth
	if barW <= 0 {
		barW = min(int(float64(opt.Width)*0.35), 30)
	}
	keyW := max(opt.Width-(barW+pctW+tokensW+gapW*3), 8)

	fill := string(opt.FillRune)
	if opt.FillRune == 0 {
		fill = "█"
	}
	maxTokens := buckets[0].tokens

	var lines []string
	for _, b := range buckets {
		barLen := int(float64(b.tokens)/float64(maxTokens)*float64(barW) + 0.5)
		if barLen == 0 && b.tokens > 0 {
			barLen = 1
		}
		lines = append(lines, row(strings.Repeat(fill, barLen), barW, pct(b.tokens, total), tokensW, b.tokens, trim(b.label, keyW)))
	}
	lines = append(lines, row(strings.Repeat("─", barW), barW, 100, tokensW, total, "TOTAL"))
	lines = append(lines, fmt.Sprintf("\nSummary: %d files, %d tokens", fileCount, total))
	return lines
}

// row pads the bar by rune count since the fill runes are multi-byte.
func row(bar string, barW int, pct float64, tokensW, tokens int, label string) string {
	pad := barW - len([]rune(bar))
	return fmt.Sprintf("%s%s  %5.1f%%  %*d  %s", bar, strings.Repeat(" ", max(pad, 0)), pct, tokensW, tokens, label)
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}

func pct(part, total int) float64 { return float64(part) * 100 / float64(total) }
