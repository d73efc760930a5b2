package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hayeah/repopick/internal/metrics"
	"github.com/hayeah/repopick/internal/metrics/chart"
	"github.com/hayeah/repopick/repomix"
	"github.com/hayeah/repopick/session"
	"github.com/hayeah/repopick/tree"
)

// PackCmd contains the arguments for the 'pack' subcommand
type PackCmd struct {
	Dir              string `arg:"positional" help:"Directory to pack (default: current directory)"`
	Select           string `arg:"-s,--select" help:"Comma-separated files or folders to include, relative to the directory"`
	Defaults         bool   `arg:"-d,--defaults" help:"Start from the files repomix includes by default"`
	IncludeRoot      bool   `arg:"--include-root" help:"Pack the whole directory"`
	Style            string `arg:"--style" help:"Output style: plain, markdown or xml (default from config)"`
	RemoveComments   bool   `arg:"--remove-comments" help:"Strip comments"`
	RemoveEmptyLines bool   `arg:"--remove-empty-lines" help:"Strip empty lines"`
	Output           string `arg:"-o,--output" help:"Write the packed output to a file instead of stdout"`
	Copy             bool   `arg:"-c,--copy" help:"Copy the packed output to the clipboard"`
	Stats            bool   `arg:"--stats" help:"Print a token chart of the packed files to stderr"`
}

// PackRunner packs a selection without the UI.
type PackRunner struct {
	Args   PackCmd
	Pipe   *Pipeline
	Stdout io.Writer
	Stderr io.Writer
}

// NewPackRunner creates a PackRunner writing results to stdout.
func NewPackRunner(cmd PackCmd, pipe *Pipeline, stdout io.Writer) *PackRunner {
	return &PackRunner{Args: cmd, Pipe: pipe, Stdout: stdout, Stderr: os.Stderr}
}

// Run executes the pack subcommand
func (r *PackRunner) Run(ctx context.Context) error {
	sess, err := r.Pipe.Load(ctx, r.Pipe.Dir)
	if err != nil {
		return err
	}
	if sess.LoadErr != nil {
		fmt.Fprintf(r.Stderr, "warning: %v\n", sess.LoadErr)
	}

	sess, err = r.applySelection(sess)
	if err != nil {
		return err
	}

	req := r.Pipe.NewPackRequest(sess)
	if r.Args.Style != "" {
		style, err := repomix.ParseStyle(r.Args.Style)
		if err != nil {
			return err
		}
		req.Style = style
	}
	req.RemoveComments = req.RemoveComments || r.Args.RemoveComments
	req.RemoveEmptyLines = req.RemoveEmptyLines || r.Args.RemoveEmptyLines
	req.Copy = r.Args.Copy
	req.Output = r.Args.Output

	res, err := r.Pipe.Pack(ctx, req)
	if err != nil {
		return err
	}

	if res.SavedTo == "" && !res.Copied {
		if _, err := io.WriteString(r.Stdout, res.Output); err != nil {
			return err
		}
	}
	if res.SavedTo != "" {
		fmt.Fprintf(r.Stderr, "Output written to %s\n", res.SavedTo)
	}
	if res.Copied {
		fmt.Fprintln(r.Stderr, "Output copied to clipboard")
	}

	if r.Args.Stats {
		return r.printStats(sess, res)
	}
	return nil
}

// applySelection replaces the session's initial selection when the command
// line asks for something specific. Explicit paths are resolved against the
// full tree.
func (r *PackRunner) applySelection(sess *session.Session) (*session.Session, error) {
	if r.Args.Select == "" && !r.Args.IncludeRoot {
		// keep the default files
		return sess, nil
	}
	if sess.FilterMode {
		sess = sess.WithFilterMode(false)
	}
	sel := sess.Selection
	if !r.Args.Defaults {
		sel.Clear()
	}
	if r.Args.IncludeRoot {
		sel.Toggle("", tree.Directory, true)
	}

	for _, p := range splitSelect(r.Args.Select) {
		n, ok := sess.Index.Node(p)
		if !ok {
			return nil, fmt.Errorf("%s: not found in %s", p, sess.Directory)
		}
		sel.Toggle(n.Path, n.Kind, true)
	}
	return sess, nil
}

func splitSelect(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.Trim(strings.TrimSpace(p), "/")
		p = strings.TrimPrefix(p, "./")
		if p != "" && p != "." {
			out = append(out, p)
		}
	}
	return out
}

func (r *PackRunner) printStats(sess *session.Session, res *PackResult) error {
	tally := r.Pipe.Tally(sess.Directory, res.Files, res.Output)

	width := 100
	if f, ok := r.Stderr.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	fmt.Fprintf(r.Stderr, "\ninclude: %s\n", displayPattern(res))
	if err := chart.Print(r.Stderr, tally.Entries(metrics.KindFile), chart.DefaultOptions(width)); err != nil {
		return err
	}
	src := tally.SumBy(metrics.KindFile)
	fmt.Fprintf(r.Stderr, "Source files: %d bytes, %d tokens, %d lines\n", src.Bytes, src.Tokens, src.Lines)
	out, _ := tally.Get(metrics.KindOutput, "packed")
	fmt.Fprintf(r.Stderr, "Packed output: %d bytes, %d tokens, %d lines\n", out.Bytes, out.Tokens, out.Lines)
	return nil
}

func displayPattern(res *PackResult) string {
	if res.Pattern.UsesWholeRoot {
		return "(whole directory)"
	}
	return res.Pattern.Include
}
