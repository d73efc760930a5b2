// Package clipboard copies packed output to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// System is the OS clipboard.
type System struct{}

// Copy writes text to the OS clipboard.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("failed to copy to clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last copied text. Useful where no clipboard exists.
type Memory struct {
	Text string
}

// Copy records text.
func (m *Memory) Copy(text string) error {
	m.Text = text
	return nil
}
