package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/alexflint/go-arg"

	"github.com/hayeah/repopick"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Config  string `arg:"--config" help:"User config file (default: $XDG_CONFIG_HOME/repopick/config.toml)"`
	LogFile string `arg:"--log-file" help:"Write JSON logs to this file"`
	Verbose bool   `arg:"-v,--verbose" help:"Log at debug level"`
	Repomix string `arg:"--repomix" help:"repomix command, e.g. 'npx repomix'"`

	Pick               *PickCmd               `arg:"subcommand:pick" help:"Pick files interactively and pack them (default)"`
	Pack               *PackCmd               `arg:"subcommand:pack" help:"Pack a selection without the UI"`
	Defaults           *DefaultsCmd           `arg:"subcommand:defaults" help:"Print the files repomix includes by default"`
	Tree               *TreeCmd               `arg:"subcommand:tree" help:"Print the directory tree with default files marked"`
	History            *HistoryCmd            `arg:"subcommand:history" help:"Show recent packaging runs"`
	InstallVSCodeTasks *InstallVSCodeTasksCmd `arg:"subcommand:install:vscode:tasks" help:"Install VS Code tasks for repopick"`
}

// Description is shown at the top of --help.
func (Args) Description() string {
	return "repopick browses a directory, lets you pick files and folders, and packs them with repomix.\n"
}

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args     Args
	RootPath string
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) *Runner {
	return &Runner{
		Args:     args,
		RootPath: ".",
	}
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run() error {
	switch {
	case r.Args.Pack != nil:
		return r.withPipeline(r.Args.Pack.Dir, false, func(ctx context.Context, p *Pipeline) error {
			return NewPackRunner(*r.Args.Pack, p, os.Stdout).Run(ctx)
		})
	case r.Args.Defaults != nil:
		return r.withPipeline(r.Args.Defaults.Dir, false, func(ctx context.Context, p *Pipeline) error {
			return NewDefaultsRunner(*r.Args.Defaults, p, os.Stdout).Run(ctx)
		})
	case r.Args.Tree != nil:
		return r.withPipeline(r.Args.Tree.Dir, false, func(ctx context.Context, p *Pipeline) error {
			return NewTreeRunner(*r.Args.Tree, p, os.Stdout).Run(ctx)
		})
	case r.Args.History != nil:
		return r.withPipeline("", false, func(ctx context.Context, p *Pipeline) error {
			return NewHistoryRunner(*r.Args.History, p, os.Stdout).Run(ctx)
		})
	case r.Args.InstallVSCodeTasks != nil:
		inst := NewInstallVSCodeTasksRunner(r.RootPath, os.Stdin, os.Stdout)
		inst.Yes = r.Args.InstallVSCodeTasks.Yes
		return inst.Run()
	default:
		cmd := PickCmd{}
		if r.Args.Pick != nil {
			cmd = *r.Args.Pick
		}
		return r.withPipeline(cmd.Dir, true, func(ctx context.Context, p *Pipeline) error {
			return NewPickRunner(cmd, p).Run(ctx)
		})
	}
}

// withPipeline resolves dir, builds the services and runs fn. The context is
// cancelled by the first interrupt.
func (r *Runner) withPipeline(dir string, interactive bool, fn func(context.Context, *Pipeline) error) error {
	if dir == "" {
		dir = r.RootPath
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	app, cleanup, err := repopick.InitApp(repopick.Flags{
		ConfigPath:  r.Args.Config,
		Dir:         abs,
		LogFile:     r.Args.LogFile,
		Verbose:     r.Args.Verbose,
		Repomix:     r.Args.Repomix,
		Interactive: interactive,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	pipe, err := BuildPipeline(app)
	if err != nil {
		return err
	}
	pipe.Dir = abs
	return fn(app.Shutdown, pipe)
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	arg.MustParse(&args)

	runner := NewRunner(args)
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
