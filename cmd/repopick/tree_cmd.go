package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hayeah/repopick/defaults"
	"github.com/hayeah/repopick/tree"
)

// TreeCmd contains the arguments for the 'tree' subcommand
type TreeCmd struct {
	Dir          string `arg:"positional" help:"Directory (default: current directory)"`
	DefaultsOnly bool   `arg:"-d,--defaults-only" help:"Only show default files and the folders containing them"`
}

// TreeRunner prints the directory diagram.
type TreeRunner struct {
	Args   TreeCmd
	Pipe   *Pipeline
	Stdout io.Writer
}

func NewTreeRunner(cmd TreeCmd, pipe *Pipeline, stdout io.Writer) *TreeRunner {
	return &TreeRunner{Args: cmd, Pipe: pipe, Stdout: stdout}
}

// Run prints the tree, marking default files with "*" and folders that hold
// defaults with "+".
func (r *TreeRunner) Run(ctx context.Context) error {
	sess, err := r.Pipe.Load(ctx, r.Pipe.Dir)
	if err != nil {
		return err
	}

	root := sess.Full
	if r.Args.DefaultsOnly {
		root = defaults.FilterToDefaults(sess.Full, sess.Defaults)
	}

	err = tree.WriteDiagram(r.Stdout, root, tree.DiagramOptions{
		RootLabel: sess.Directory,
		Marker: func(n *tree.Node) string {
			a := defaults.Annotate(n, sess.Defaults)
			switch {
			case a.IsDefault:
				return " *"
			case a.ContainsDefault && !n.IsRoot():
				return " +"
			}
			return ""
		},
	})
	if err != nil {
		return err
	}
	if sess.LoadErr != nil {
		fmt.Fprintf(r.Stdout, "\nwarning: %v\n", sess.LoadErr)
	}
	return nil
}
