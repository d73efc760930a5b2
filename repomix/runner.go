package repomix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// MaxOutputSize caps the captured stdout of a run.
const MaxOutputSize = 10 * 1024 * 1024

// ErrOutputTooLarge is returned when a run exceeds MaxOutputSize.
var ErrOutputTooLarge = errors.New("output exceeds 10 MiB")

// Result is the outcome of a successful run.
type Result struct {
	Output string
	Stderr string
}

// Runner runs the packaging tool.
type Runner interface {
	Run(ctx context.Context, opts Options) (Result, error)
}

// ToolInvocationError is returned when the tool fails. Stderr is kept
// verbatim for display.
type ToolInvocationError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ToolInvocationError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e *ToolInvocationError) Unwrap() error {
	return e.Err
}

// ExecRunner runs the tool as a child process.
type ExecRunner struct {
	// Command is the executable, optionally followed by leading arguments,
	// e.g. "npx repomix".
	Command string
	Logger  *slog.Logger
}

// NewExecRunner returns a runner for command, defaulting to "repomix".
func NewExecRunner(command string, logger *slog.Logger) *ExecRunner {
	if strings.TrimSpace(command) == "" {
		command = "repomix"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecRunner{Command: command, Logger: logger}
}

// Run executes the tool with opts and returns its stdout.
func (r *ExecRunner) Run(ctx context.Context, opts Options) (Result, error) {
	fields := strings.Fields(r.Command)
	if len(fields) == 0 {
		fields = []string{"repomix"}
	}
	args := append(fields[1:len(fields):len(fields)], opts.Args()...)

	cmd := exec.CommandContext(ctx, fields[0], args...)

	stdout := &limitedBuffer{limit: MaxOutputSize}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	r.Logger.Info("running repomix", "command", fields[0], "args", args)

	err := cmd.Run()
	if err == nil && stdout.overflow {
		err = ErrOutputTooLarge
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		r.Logger.Warn("repomix failed", "error", err, "stderr", stderr.String())
		return Result{}, &ToolInvocationError{
			Command: r.Command,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return Result{Output: stdout.String(), Stderr: stderr.String()}, nil
}

// limitedBuffer discards writes past limit and remembers that it did.
type limitedBuffer struct {
	bytes.Buffer
	limit    int
	overflow bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.Len(); len(p) > room {
		b.overflow = true
		if room > 0 {
			b.Buffer.Write(p[:room])
		}
		return len(p), nil
	}
	return b.Buffer.Write(p)
}
