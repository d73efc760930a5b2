package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/hayeah/repopick"
)

// HistoryCmd contains the arguments for the 'history' subcommand
type HistoryCmd struct {
	Limit int    `arg:"-n,--limit" default:"20" help:"Number of runs to show"`
	Dir   string `arg:"--dir" help:"Only show runs for this directory"`
}

// HistoryRunner lists recent runs.
type HistoryRunner struct {
	Args   HistoryCmd
	Pipe   *Pipeline
	Stdout io.Writer
}

func NewHistoryRunner(cmd HistoryCmd, pipe *Pipeline, stdout io.Writer) *HistoryRunner {
	return &HistoryRunner{Args: cmd, Pipe: pipe, Stdout: stdout}
}

// Run prints a table of runs, newest first.
func (r *HistoryRunner) Run(ctx context.Context) error {
	dir := r.Args.Dir
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve directory: %w", err)
		}
		dir = abs
	}

	runs, err := r.Pipe.History.Recent(ctx, dir, r.Args.Limit)
	if errors.Is(err, repopick.ErrHistoryDisabled) {
		fmt.Fprintln(r.Stdout, "History is disabled (history_db is empty)")
		return nil
	}
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(r.Stdout, "No runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tDIRECTORY\tSTYLE\tFILES\tTOKENS\tINCLUDE\tRESULT")
	for _, run := range runs {
		include := run.Include
		if include == "" {
			include = "(whole directory)"
		}
		result := run.Destination
		if run.Error != "" {
			result = "error: " + firstLine(run.Error)
		} else if result == "" {
			result = "shown"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Directory,
			run.Style,
			run.Files,
			run.Tokens,
			truncate(include, 60),
			result,
		)
	}
	return w.Flush()
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
