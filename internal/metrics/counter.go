package metrics

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter provides methods for counting bytes, tokens, and lines in text
type Counter interface {
	// Count returns the number of bytes, tokens, and lines in the given text
	Count(text string) Stats
}

// Stats is what a Counter measures.
type Stats struct {
	Bytes  int `json:"bytes"`
	Tokens int `json:"tokens"`
	Lines  int `json:"lines"`
}

// Add adds o to s.
func (s *Stats) Add(o Stats) {
	s.Bytes += o.Bytes
	s.Tokens += o.Tokens
	s.Lines += o.Lines
}

// DefaultModel is the tiktoken model used when none is configured.
const DefaultModel = "gpt-3.5-turbo"

// NewCounter returns the counter named by estimator: "simple" (or empty)
// and "tiktoken" are supported.
func NewCounter(estimator string) (Counter, error) {
	switch estimator {
	case "", "simple":
		return &SimpleCounter{}, nil
	case "tiktoken":
		return NewTiktokenCounter(DefaultModel)
	default:
		return nil, fmt.Errorf("unknown token estimator %q", estimator)
	}
}

// SimpleCounter estimates tokens as bytes/4
type SimpleCounter struct{}

// Count returns bytes, estimated tokens, and lines for the given text
func (c *SimpleCounter) Count(text string) Stats {
	return Stats{
		Bytes:  len(text),
		Tokens: estimateTokenCountSimple(text),
		Lines:  countLines(text),
	}
}

// TiktokenCounter uses the tiktoken library to count tokens
type TiktokenCounter struct {
	model    string
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a new TiktokenCounter for the given model
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("unsupported model for tiktoken: %s: %w", model, err)
	}
	return &TiktokenCounter{model: model, encoding: encoding}, nil
}

// Count returns bytes, tokens (using tiktoken), and lines for the given text
func (c *TiktokenCounter) Count(text string) Stats {
	return Stats{
		Bytes:  len(text),
		Tokens: len(c.encoding.Encode(strings.TrimSpace(text), nil, nil)),
		Lines:  countLines(text),
	}
}

// countLines counts newline-terminated lines plus a trailing partial line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// estimateTokenCountSimple provides a simple approximation of token count
// by dividing the byte count by 4 (average English token is ~4 bytes)
func estimateTokenCountSimple(text string) int {
	return (len(text) + 3) / 4
}
