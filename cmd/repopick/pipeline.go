package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hayeah/goo"

	"github.com/hayeah/repopick"
	"github.com/hayeah/repopick/internal/clipboard"
	"github.com/hayeah/repopick/internal/metrics"
	"github.com/hayeah/repopick/pattern"
	"github.com/hayeah/repopick/preview"
	"github.com/hayeah/repopick/repomix"
	"github.com/hayeah/repopick/selection"
	"github.com/hayeah/repopick/session"
	"github.com/hayeah/repopick/tree"
)

// Pipeline holds the services a subcommand works with.
type Pipeline struct {
	Config    *repopick.Config
	Logger    *slog.Logger
	History   *repopick.HistoryStore
	Runner    repomix.Runner
	Loader    *session.Loader
	Counter   metrics.Counter
	Clipboard clipboard.Copier
	// Shutdown, when set, holds off an interrupt until a run is recorded.
	Shutdown *goo.ShutdownContext

	// Dir is the absolute directory the command operates on.
	Dir string
}

// Load lists dir and builds a session in the configured filter mode.
func (p *Pipeline) Load(ctx context.Context, dir string) (*session.Session, error) {
	loaded, err := p.Loader.Load(ctx, p.Loader.Begin(), dir)
	if err != nil {
		return nil, err
	}
	return session.New(loaded, p.Config.DefaultFilesOnly), nil
}

// PackRequest describes one packaging run.
type PackRequest struct {
	Dir       string
	Selection selection.Snapshot
	// Index, when set, is used to list the files the pattern covers.
	Index *tree.Index

	Style            repomix.Style
	RemoveComments   bool
	RemoveEmptyLines bool
	Copy             bool
	// Output writes the artifact to this path as well.
	Output string
}

// PackResult is the outcome of a successful run.
type PackResult struct {
	Pattern pattern.Result
	Output  string
	Stats   metrics.Stats
	// Files lists the tree files the include pattern covers.
	Files   []string
	Copied  bool
	SavedTo string
}

// NewPackRequest fills the options from the config.
func (p *Pipeline) NewPackRequest(s *session.Session) PackRequest {
	style, _ := repomix.ParseStyle(p.Config.Style)
	return PackRequest{
		Dir:              s.Directory,
		Selection:        s.Selection.Snapshot(),
		Index:            s.Index,
		Style:            style,
		RemoveComments:   p.Config.RemoveComments,
		RemoveEmptyLines: p.Config.RemoveEmptyLines,
		Copy:             p.Config.Copy,
	}
}

// Pack runs repomix over the selection. An empty selection is rejected with
// *pattern.EmptySelectionError before anything runs.
func (p *Pipeline) Pack(ctx context.Context, req PackRequest) (*PackResult, error) {
	if err := pattern.Validate(req.Selection); err != nil {
		return nil, err
	}
	pat := pattern.Synthesize(req.Selection)

	opts := p.Config.RepomixOptions(req.Dir)
	opts.Include = pat.Include
	opts.Style = req.Style
	opts.RemoveComments = req.RemoveComments
	opts.RemoveEmptyLines = req.RemoveEmptyLines

	run := repopick.Run{
		Directory: req.Dir,
		Include:   pat.Include,
		Style:     string(req.Style),
	}

	out, err := p.Runner.Run(ctx, opts)
	if err != nil {
		return nil, p.fail(ctx, run, err)
	}

	res := &PackResult{
		Pattern: pat,
		Output:  out.Output,
		Stats:   p.Counter.Count(out.Output),
	}
	if req.Index != nil {
		files, err := pattern.CoveredFiles(pat, req.Index)
		if err != nil {
			p.Logger.Warn("failed to compute covered files", "error", err)
		}
		res.Files = files
	}

	run.Files = len(res.Files)
	run.Bytes = res.Stats.Bytes
	run.Tokens = res.Stats.Tokens

	var dests []string
	if req.Output != "" {
		if err := writeOutput(req.Output, res.Output); err != nil {
			return nil, p.fail(ctx, run, err)
		}
		res.SavedTo = req.Output
		dests = append(dests, req.Output)
	}
	if req.Copy {
		if err := p.Clipboard.Copy(res.Output); err != nil {
			run.Destination = strings.Join(dests, ", ")
			return nil, p.fail(ctx, run, err)
		}
		res.Copied = true
		dests = append(dests, "clipboard")
	}

	run.Destination = strings.Join(dests, ", ")
	p.record(ctx, run)
	return res, nil
}

// fail records run with err and returns err.
func (p *Pipeline) fail(ctx context.Context, run repopick.Run, err error) error {
	run.Error = err.Error()
	p.record(ctx, run)
	return err
}

func (p *Pipeline) record(ctx context.Context, run repopick.Run) {
	save := func() error {
		_, err := p.History.Record(context.WithoutCancel(ctx), run)
		return err
	}
	var err error
	if p.Shutdown != nil {
		err = p.Shutdown.BlockExit(save)
	}
	if p.Shutdown == nil || errors.Is(err, goo.ErrShutdown) {
		// already interrupted: best effort before the process exits
		err = save()
	}
	if err != nil {
		p.Logger.Warn("failed to record run", "error", err)
	}
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Tally counts each file under dir plus the packed output.
func (p *Pipeline) Tally(dir string, files []string, output string) *metrics.Tally {
	tally := metrics.NewTally(p.Counter, runtime.NumCPU())
	for _, f := range files {
		pv, err := preview.Read(dir, f)
		if err != nil || pv.Message != "" {
			continue
		}
		tally.Add(metrics.KindFile, f, pv.Content)
	}
	tally.Add(metrics.KindOutput, "packed", output)
	tally.Wait()
	return tally
}
