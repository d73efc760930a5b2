package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// PickCmd contains the arguments for the 'pick' subcommand
type PickCmd struct {
	Dir   string `arg:"positional" help:"Directory to browse (default: current directory)"`
	Print bool   `arg:"--print" help:"Print the last packed output to stdout on exit"`
}

// PickRunner runs the interactive picker.
type PickRunner struct {
	Args   PickCmd
	Pipe   *Pipeline
	Stdout io.Writer
}

func NewPickRunner(cmd PickCmd, pipe *Pipeline) *PickRunner {
	return &PickRunner{Args: cmd, Pipe: pipe, Stdout: os.Stdout}
}

// Run starts the TUI on stderr so stdout stays free for --print.
func (r *PickRunner) Run(ctx context.Context) error {
	m := newPickModel(ctx, r.Pipe, r.Pipe.Dir)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}

	fm, ok := final.(*pickModel)
	if !ok {
		return fmt.Errorf("could not get final model state")
	}
	if r.Args.Print && fm.output != "" && fm.err == nil {
		_, err := io.WriteString(r.Stdout, fm.output)
		return err
	}
	return nil
}
