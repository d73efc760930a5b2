package main

import (
	"context"
	"fmt"
	"io"
)

// DefaultsCmd contains the arguments for the 'defaults' subcommand
type DefaultsCmd struct {
	Dir string `arg:"positional" help:"Directory (default: current directory)"`
}

// DefaultsRunner prints the default file set.
type DefaultsRunner struct {
	Args   DefaultsCmd
	Pipe   *Pipeline
	Stdout io.Writer
}

func NewDefaultsRunner(cmd DefaultsCmd, pipe *Pipeline, stdout io.Writer) *DefaultsRunner {
	return &DefaultsRunner{Args: cmd, Pipe: pipe, Stdout: stdout}
}

// Run prints one default path per line, sorted.
func (r *DefaultsRunner) Run(ctx context.Context) error {
	sess, err := r.Pipe.Load(ctx, r.Pipe.Dir)
	if err != nil {
		return err
	}
	for _, p := range sess.Defaults.Sorted() {
		if _, err := fmt.Fprintln(r.Stdout, p); err != nil {
			return err
		}
	}
	return nil
}
