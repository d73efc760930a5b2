package metrics

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleCounter(t *testing.T) {
	cases := []struct {
		text string
		want Stats
	}{
		{"", Stats{}},
		{"Hello, world!\nThis is a test.", Stats{Bytes: 29, Tokens: 8, Lines: 2}},
		{"one\ntwo\n", Stats{Bytes: 8, Tokens: 2, Lines: 2}},
	}

	c := &SimpleCounter{}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.text), func(t *testing.T) {
			assert.Equal(t, tc.want, c.Count(tc.text))
		})
	}
}

func TestNewCounter(t *testing.T) {
	assert := assert.New(t)

	c, err := NewCounter("")
	assert.NoError(err)
	assert.IsType(&SimpleCounter{}, c)

	_, err = NewCounter("magic")
	assert.Error(err)
}

func TestTally(t *testing.T) {
	assert := assert.New(t)

	tally := NewTally(&SimpleCounter{}, 2)
	tally.Add(KindFile, "b.go", "This is a test.\nIt has two lines.")
	tally.Add(KindFile, "a.go", "Another test item")
	tally.Add(KindFile, "a.go", "more")
	tally.Add(KindOutput, "packed", "Different type")
	tally.Wait()
	tally.Wait()

	entries := tally.Entries(KindFile)
	if assert.Len(entries, 2) {
		assert.Equal("a.go", entries[0].Name)
		assert.Equal(Stats{Bytes: 21, Tokens: 6, Lines: 2}, entries[0].Stats)
		assert.Equal(2, entries[1].Lines)
	}

	out, ok := tally.Get(KindOutput, "packed")
	assert.True(ok)
	assert.Equal(14, out.Bytes)

	sum := tally.SumBy(KindFile)
	assert.Equal(21+33, sum.Bytes)

	raw, err := json.Marshal(tally)
	assert.NoError(err)
	assert.Contains(string(raw), `"output:packed":{"bytes":14,"tokens":4,"lines":1}`)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "file:path/to/file.go", Key{Kind: KindFile, Name: "path/to/file.go"}.String())
}
