package metrics

import (
	"fmt"
	"sort"
	"sync"
)

// Kind groups tally entries.
type Kind string

const (
	// KindFile is a source file that went into a pack.
	KindFile Kind = "file"
	// KindOutput is a packed artifact.
	KindOutput Kind = "output"
)

// Key identifies a specific tally entry by kind and key
type Key struct {
	Kind Kind
	Name string
}

// String returns a string representation of the Key
func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Name)
}

// Entry is one counted item.
type Entry struct {
	Key
	Stats
}

type job struct {
	key     Key
	content string
}

// Tally counts content on a pool of workers. Call Wait before reading
// results; no Add may follow Wait.
type Tally struct {
	counter Counter

	wg    sync.WaitGroup
	jobs  chan job
	close sync.Once

	mu    sync.Mutex
	items map[Key]Stats
}

// NewTally starts workers goroutines counting with counter.
func NewTally(counter Counter, workers int) *Tally {
	if workers < 1 {
		workers = 1
	}

	t := &Tally{
		counter: counter,
		jobs:    make(chan job, workers*2),
		items:   make(map[Key]Stats),
	}

	t.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go t.worker()
	}
	return t
}

func (t *Tally) worker() {
	defer t.wg.Done()

	for j := range t.jobs {
		stats := t.counter.Count(j.content)

		t.mu.Lock()
		item := t.items[j.key]
		item.Add(stats)
		t.items[j.key] = item
		t.mu.Unlock()
	}
}

// Add queues content for counting under kind/name.
func (t *Tally) Add(kind Kind, name string, content string) {
	t.jobs <- job{key: Key{Kind: kind, Name: name}, content: content}
}

// Wait waits for all queued content to be counted. It may be called more
// than once.
func (t *Tally) Wait() {
	t.close.Do(func() { close(t.jobs) })
	t.wg.Wait()
}

// Get returns the stats for one entry.
func (t *Tally) Get(kind Kind, name string) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.items[Key{Kind: kind, Name: name}]
	return s, ok
}

// SumBy returns the total of all entries of kind.
func (t *Tally) SumBy(kind Kind) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sum Stats
	for k, v := range t.items {
		if k.Kind == kind {
			sum.Add(v)
		}
	}
	return sum
}

// Entries returns the entries of kind ordered by name.
func (t *Tally) Entries(kind Kind) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Entry
	for k, v := range t.items {
		if k.Kind == kind {
			out = append(out, Entry{Key: k, Stats: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
