package chart

import (
	"strings"
	"testing"

	"github.com/hayeah/repopick/internal/metrics"
	"github.com/stretchr/testify/assert"
)

// a/big.go 900, a/small.go 5, x/y/z.go 50, x/w.go 45 => 1000 tokens
func fakeFiles() []metrics.Entry {
	add := func(name string, tokens int) metrics.Entry {
		return metrics.Entry{
			Key:   metrics.Key{Kind: metrics.KindFile, Name: name},
			Stats: metrics.Stats{Tokens: tokens},
		}
	}
	return []metrics.Entry{
		add("a/big.go", 900),
		add("a/small.go", 5),
		add("x/y/z.go", 50),
		add("x/w.go", 45),
	}
}

func TestBuildTree(t *testing.T) {
	assert := assert.New(t)

	root, total := buildTree(fakeFiles())
	assert.Equal(1000, total)
	assert.Equal(905, root.children["a"].tokens)
	assert.Equal(95, root.children["x"].tokens)
	assert.True(root.children["a"].children["big.go"].isFile)
}

func TestCollapse(t *testing.T) {
	assert := assert.New(t)

	root, total := buildTree(fakeFiles())

	assert.Equal([]bucket{
		{label: "a/big.go", tokens: 900},
		{label: "a/**", tokens: 5},
		{label: "x/w.go", tokens: 45},
		{label: "x/y/z.go", tokens: 50},
	}, collapse(root, total, 1))

	assert.Equal([]bucket{
		{label: "a/big.go", tokens: 900},
		{label: "a/**", tokens: 5},
		{label: "**", tokens: 95},
	}, collapse(root, total, 10))
}

func TestPrint(t *testing.T) {
	assert := assert.New(t)

	var buf strings.Builder
	err := Print(&buf, fakeFiles(), Options{Width: 80, BarWidth: 10, ThresholdPct: 10, FillRune: '#'})
	assert.NoError(err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal("##########   90.0%      900  a/big.go", lines[0])
	assert.Equal("#             9.5%       95  **", lines[1])
	assert.Equal("#             0.5%        5  a/**", lines[2])
	assert.Equal("──────────  100.0%     1000  TOTAL", lines[3])
	assert.Equal("Summary: 4 files, 1000 tokens", lines[5])
}

func TestPrint_Empty(t *testing.T) {
	var buf strings.Builder
	assert.NoError(t, Print(&buf, nil, DefaultOptions(80)))
	assert.Equal(t, "No tokens recorded\n", buf.String())
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "short", trim("short", 8))
	assert.Equal(t, "…/b/c.go", trim("a/very/long/path/b/c.go", 8))
}
