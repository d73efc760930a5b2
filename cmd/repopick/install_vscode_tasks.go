package main

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hayeah/repopick/internal/hujsonutil"
)

//go:embed tasks.jsonc
var tasksJSONCContent []byte

// InstallVSCodeTasksCmd represents the install:vscode:tasks subcommand
type InstallVSCodeTasksCmd struct {
	Yes bool `arg:"-y,--yes" help:"Save without asking for confirmation"`
}

// InstallVSCodeTasksRunner handles the installation of VS Code tasks
type InstallVSCodeTasksRunner struct {
	RootPath string
	Yes      bool
	In       io.Reader
	Out      io.Writer
}

// vscodeTask is the part of a task definition used for de-duplication.
type vscodeTask struct {
	Label          string         `json:"label"`
	Type           string         `json:"type"`
	Command        string         `json:"command"`
	Args           []string       `json:"args,omitempty"`
	Options        map[string]any `json:"options,omitempty"`
	Presentation   map[string]any `json:"presentation,omitempty"`
	ProblemMatcher []any          `json:"problemMatcher"`
}

type vscodeInput struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

type tasksFile struct {
	Tasks  []vscodeTask  `json:"tasks"`
	Inputs []vscodeInput `json:"inputs"`
}

// NewInstallVSCodeTasksRunner creates a new runner for installing VS Code tasks
func NewInstallVSCodeTasksRunner(rootPath string, in io.Reader, out io.Writer) *InstallVSCodeTasksRunner {
	return &InstallVSCodeTasksRunner{
		RootPath: rootPath,
		In:       in,
		Out:      out,
	}
}

// Run merges the bundled tasks into .vscode/tasks.json, keeping existing
// tasks and comments.
func (r *InstallVSCodeTasksRunner) Run() error {
	vscodeDir := filepath.Join(r.RootPath, ".vscode")
	tasksPath := filepath.Join(vscodeDir, "tasks.json")

	var dest *hujsonutil.Value
	data, err := os.ReadFile(tasksPath)
	switch {
	case err == nil:
		dest, err = hujsonutil.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse existing tasks.json: %w", err)
		}
		fmt.Fprintln(r.Out, "Merging with existing tasks.json...")
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(r.Out, "No existing tasks.json found. Creating new file at %s\n", tasksPath)
		dest, err = hujsonutil.Parse(tasksJSONCContent)
		if err != nil {
			return fmt.Errorf("failed to parse embedded tasks.jsonc: %w", err)
		}
	default:
		return fmt.Errorf("failed to read tasks.json: %w", err)
	}

	added, err := mergeTasks(dest)
	if err != nil {
		return fmt.Errorf("failed to merge tasks: %w", err)
	}
	if data != nil && added == 0 {
		fmt.Fprintln(r.Out, "All repopick tasks are already installed.")
		return nil
	}

	dest.Format()
	fmt.Fprintln(r.Out, "Preview of the updated tasks.json:")
	fmt.Fprintln(r.Out, string(dest.Pack()))

	if !r.Yes && !r.confirm("Do you want to save these changes?") {
		fmt.Fprintln(r.Out, "Operation cancelled.")
		return nil
	}

	if err := os.MkdirAll(vscodeDir, 0755); err != nil {
		return fmt.Errorf("failed to create .vscode directory: %w", err)
	}
	if err := os.WriteFile(tasksPath, dest.Pack(), 0644); err != nil {
		return fmt.Errorf("failed to save tasks.json: %w", err)
	}

	fmt.Fprintf(r.Out, "Successfully updated %s\n", tasksPath)
	return nil
}

// mergeTasks adds the bundled tasks and inputs missing from dest, matched by
// label and id. It returns how many entries were added.
func mergeTasks(dest *hujsonutil.Value) (int, error) {
	src, err := hujsonutil.Parse(tasksJSONCContent)
	if err != nil {
		return 0, err
	}
	var bundled tasksFile
	if err := src.Decode(&bundled); err != nil {
		return 0, err
	}

	tasks := make([]any, len(bundled.Tasks))
	for i, t := range bundled.Tasks {
		if t.ProblemMatcher == nil {
			t.ProblemMatcher = []any{}
		}
		tasks[i] = t
	}
	inputs := make([]any, len(bundled.Inputs))
	for i, in := range bundled.Inputs {
		inputs[i] = in
	}

	nTasks, err := dest.AppendUnique("/tasks", "label", tasks)
	if err != nil {
		return nTasks, err
	}
	nInputs, err := dest.AppendUnique("/inputs", "id", inputs)
	return nTasks + nInputs, err
}

func (r *InstallVSCodeTasksRunner) confirm(prompt string) bool {
	fmt.Fprintf(r.Out, "%s (y/N): ", prompt)
	line, _ := bufio.NewReader(r.In).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
