package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hayeah/repopick/internal/search"
	"github.com/hayeah/repopick/pattern"
	"github.com/hayeah/repopick/preview"
	"github.com/hayeah/repopick/repomix"
	"github.com/hayeah/repopick/session"
	"github.com/hayeah/repopick/tree"
)

// inputMode says what the text input is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputDir
	inputSave
)

// paneMode says what the right-hand pane shows.
type paneMode int

const (
	paneOutput paneMode = iota
	panePreview
)

// row is one visible line of the tree list.
type row struct {
	node  *tree.Node
	depth int
	// label overrides the node name, used for search results.
	label string
}

type (
	loadedMsg struct {
		gen  uint64
		sess *session.Session
		err  error
	}
	packedMsg struct {
		gen uint64
		res *PackResult
		err error
	}
	previewMsg struct {
		pv  preview.Preview
		err error
	}
	savedMsg struct {
		path string
		err  error
	}
	copiedMsg struct {
		err error
	}
)

// pickModel is the bubbletea model of the picker.
type pickModel struct {
	pipe *Pipeline
	ctx  context.Context

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model
	mode    inputMode
	query   string

	dir      string
	sess     *session.Session
	loading  bool
	running  bool
	expanded map[string]bool
	rows     []row
	cursor   int
	list     viewport.Model
	pane     viewport.Model
	paneMode paneMode

	style            repomix.Style
	removeComments   bool
	removeEmptyLines bool
	autoCopy         bool
	filterMode       bool

	output  string
	summary string
	status  string
	err     error

	width, height int
	ready         bool
}

func newPickModel(ctx context.Context, pipe *Pipeline, dir string) *pickModel {
	ti := textinput.New()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	style, err := repomix.ParseStyle(pipe.Config.Style)
	if err != nil {
		style = repomix.StylePlain
	}

	return &pickModel{
		pipe:             pipe,
		ctx:              ctx,
		keys:             defaultKeyMap(),
		help:             help.New(),
		spinner:          sp,
		input:            ti,
		dir:              dir,
		expanded:         map[string]bool{},
		list:             viewport.New(0, 0),
		pane:             viewport.New(0, 0),
		style:            style,
		removeComments:   pipe.Config.RemoveComments,
		removeEmptyLines: pipe.Config.RemoveEmptyLines,
		autoCopy:         pipe.Config.Copy,
		filterMode:       pipe.Config.DefaultFilesOnly,
	}
}

func (m *pickModel) Init() tea.Cmd {
	return m.load(m.dir)
}

// load starts listing dir. The generation is taken here, on the update
// loop, so that later picks always win.
func (m *pickModel) load(dir string) tea.Cmd {
	m.loading = true
	m.status = ""
	gen := m.pipe.Loader.Begin()
	filterMode := m.filterMode
	ctx := m.ctx
	loader := m.pipe.Loader
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		loaded, err := loader.Load(ctx, gen, dir)
		if err != nil {
			return loadedMsg{gen: gen, err: err}
		}
		return loadedMsg{gen: gen, sess: session.New(loaded, filterMode)}
	})
}

func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		return m, m.onLoaded(msg)

	case packedMsg:
		m.onPacked(msg)
		return m, nil

	case previewMsg:
		m.onPreview(msg)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "Save failed: " + msg.err.Error()
		} else {
			m.status = "Saved to " + msg.path
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m, m.updateInput(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *pickModel) onLoaded(msg loadedMsg) tea.Cmd {
	if !m.pipe.Loader.Accept(msg.gen) {
		m.pipe.Logger.Debug("dropping stale load", "gen", msg.gen)
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.status = "Load failed: " + msg.err.Error()
		return nil
	}

	sess := msg.sess
	if sess.FilterMode != m.filterMode {
		// filter toggled while loading
		sess = sess.WithFilterMode(m.filterMode)
	}
	m.sess = sess
	m.dir = sess.Directory
	m.resetView()
	if sess.LoadErr != nil {
		m.status = "Warning: " + sess.LoadErr.Error()
	}
	return nil
}

// resetView collapses everything except the root and refreshes the list.
func (m *pickModel) resetView() {
	m.expanded = map[string]bool{"": true}
	m.cursor = 0
	m.query = ""
	m.refresh()
}

func (m *pickModel) onPacked(msg packedMsg) {
	m.running = false
	if m.sess == nil || msg.gen != m.sess.Generation {
		return
	}
	m.paneMode = paneOutput
	if msg.err != nil {
		m.err = msg.err
		m.output = ""
		m.setPane("Error: " + msg.err.Error())
		m.status = "repomix failed"
		return
	}

	m.err = nil
	m.output = msg.res.Output
	m.setPane(msg.res.Output)
	m.status = fmt.Sprintf("Packed %d files, %d tokens", len(msg.res.Files), msg.res.Stats.Tokens)
	if msg.res.Copied {
		m.status += ", copied to clipboard"
	}
}

func (m *pickModel) onPreview(msg previewMsg) {
	m.paneMode = panePreview
	if msg.err != nil {
		m.setPane("Error: " + msg.err.Error())
		return
	}
	if msg.pv.Message != "" {
		m.setPane(msg.pv.Path + "\n\n" + msg.pv.Message)
		return
	}
	m.setPane(fmt.Sprintf("%s (%s)\n\n%s", msg.pv.Path, msg.pv.Language, msg.pv.Content))
}

func (m *pickModel) setPane(content string) {
	m.pane.SetContent(content)
	m.pane.GotoTop()
}

func (m *pickModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-max(1, m.list.Height))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(max(1, m.list.Height))
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Collapse):
		m.collapse()
	case key.Matches(msg, m.keys.Expand):
		m.expand()
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.SelectAll):
		if m.sess != nil {
			m.sess.Selection.SelectAll()
			m.refresh()
		}
	case key.Matches(msg, m.keys.ClearAll):
		if m.sess != nil {
			m.sess.Selection.Clear()
			m.refresh()
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.query != "" {
			m.query = ""
			m.cursor = 0
			m.refresh()
		}
	case key.Matches(msg, m.keys.Search):
		return m.startInput(inputSearch, "search: ", m.query)
	case key.Matches(msg, m.keys.Directory):
		return m.startInput(inputDir, "directory: ", m.dir)
	case key.Matches(msg, m.keys.Save):
		if m.output == "" {
			m.status = "Nothing to save yet"
			return nil
		}
		return m.startInput(inputSave, "save to: ", "repomix-output"+m.style.Ext())
	case key.Matches(msg, m.keys.Filter):
		m.filterMode = !m.filterMode
		if m.sess != nil {
			m.sess = m.sess.WithFilterMode(m.filterMode)
			m.resetView()
		}
	case key.Matches(msg, m.keys.Style):
		m.style = m.style.Next()
	case key.Matches(msg, m.keys.Comments):
		m.removeComments = !m.removeComments
	case key.Matches(msg, m.keys.EmptyLines):
		m.removeEmptyLines = !m.removeEmptyLines
	case key.Matches(msg, m.keys.AutoCopy):
		m.autoCopy = !m.autoCopy
	case key.Matches(msg, m.keys.Reload):
		return m.load(m.dir)
	case key.Matches(msg, m.keys.Run):
		return m.run()
	case key.Matches(msg, m.keys.Copy):
		return m.copyOutput()
	case key.Matches(msg, m.keys.Preview):
		return m.previewCurrent()
	case key.Matches(msg, m.keys.PaneUp):
		m.pane.HalfViewUp()
	case key.Matches(msg, m.keys.PaneDown):
		m.pane.HalfViewDown()
	}
	return nil
}

func (m *pickModel) startInput(mode inputMode, prompt, value string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.resize()
	return m.input.Focus()
}

func (m *pickModel) endInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.resize()
}

// updateInput feeds keys to the text input. Search filters as you type.
func (m *pickModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.mode == inputSearch {
			m.query = ""
			m.refresh()
		}
		m.endInput()
		return nil
	case key.Matches(msg, m.keys.InputConfirm):
		mode, value := m.mode, strings.TrimSpace(m.input.Value())
		m.endInput()
		return m.submitInput(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == inputSearch && m.input.Value() != m.query {
		m.query = m.input.Value()
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

func (m *pickModel) submitInput(mode inputMode, value string) tea.Cmd {
	switch mode {
	case inputDir:
		if value == "" {
			return nil
		}
		dir, err := resolveDir(value)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		return m.load(dir)
	case inputSave:
		if value == "" {
			return nil
		}
		path := value
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		output := m.output
		return func() tea.Msg {
			return savedMsg{path: path, err: writeOutput(path, output)}
		}
	}
	return nil
}

func resolveDir(p string) (string, error) {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to open directory: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func (m *pickModel) current() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m *pickModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.renderList()
}

func (m *pickModel) toggle() {
	n := m.current()
	if n == nil || m.sess == nil {
		return
	}
	checked := !m.sess.Selection.IsSelected(n.Path)
	change := m.sess.Selection.Toggle(n.Path, n.Kind, checked)
	for _, p := range change.Expand {
		m.expanded[p] = true
	}
	m.refresh()
}

// expand opens the current directory. On a search hit it leaves the search
// and reveals the hit in the tree.
func (m *pickModel) expand() {
	n := m.current()
	if n == nil {
		return
	}
	if m.query != "" {
		m.reveal(n.Path)
		return
	}
	if n.IsDir() && !m.expanded[n.Path] {
		m.expanded[n.Path] = true
		m.refresh()
	}
}

func (m *pickModel) reveal(path string) {
	for _, p := range m.sess.Index.Ancestors(path) {
		m.expanded[p] = true
	}
	m.query = ""
	m.refresh()
	for i, r := range m.rows {
		if r.node.Path == path {
			m.cursor = i
			break
		}
	}
	m.renderList()
}

// collapse folds the current directory, or jumps to the parent.
func (m *pickModel) collapse() {
	n := m.current()
	if n == nil || m.query != "" {
		return
	}
	if n.IsDir() && m.expanded[n.Path] && !n.IsRoot() {
		delete(m.expanded, n.Path)
		m.refresh()
		return
	}
	parent, ok := m.sess.Index.Parent(n.Path)
	if !ok {
		return
	}
	for i, r := range m.rows {
		if r.node.Path == parent {
			m.cursor = i
			break
		}
	}
	m.renderList()
}

func (m *pickModel) run() tea.Cmd {
	if m.sess == nil || m.loading {
		return nil
	}
	if m.running {
		m.status = "repomix is already running"
		return nil
	}

	req := m.pipe.NewPackRequest(m.sess)
	req.Style = m.style
	req.RemoveComments = m.removeComments
	req.RemoveEmptyLines = m.removeEmptyLines
	req.Copy = m.autoCopy

	var empty *pattern.EmptySelectionError
	if err := pattern.Validate(req.Selection); errors.As(err, &empty) {
		m.status = "Please " + empty.Error()
		return nil
	}

	m.running = true
	m.status = "Running repomix..."
	gen := m.sess.Generation
	ctx, pipe := m.ctx, m.pipe
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := pipe.Pack(ctx, req)
		return packedMsg{gen: gen, res: res, err: err}
	})
}

func (m *pickModel) copyOutput() tea.Cmd {
	if m.output == "" {
		m.status = "Nothing to copy yet"
		return nil
	}
	output, cb := m.output, m.pipe.Clipboard
	return func() tea.Msg {
		return copiedMsg{err: cb.Copy(output)}
	}
}

func (m *pickModel) previewCurrent() tea.Cmd {
	n := m.current()
	if n == nil || n.IsDir() {
		m.status = "Select a file to preview"
		return nil
	}
	dir, rel := m.dir, n.Path
	return func() tea.Msg {
		pv, err := preview.Read(dir, rel)
		return previewMsg{pv: pv, err: err}
	}
}

// refresh rebuilds the visible rows and the selection summary.
func (m *pickModel) refresh() {
	m.rows = m.visibleRows()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.summary = m.summarize()
	m.renderList()
}

func (m *pickModel) visibleRows() []row {
	if m.sess == nil {
		return nil
	}
	if m.query != "" {
		return m.searchRows()
	}

	var rows []row
	var walk func(n *tree.Node, depth int)
	walk = func(n *tree.Node, depth int) {
		rows = append(rows, row{node: n, depth: depth})
		if n.IsDir() && m.expanded[n.Path] {
			for _, c := range n.Children {
				walk(c, depth+1)
			}
		}
	}
	walk(m.sess.Tree, 0)
	return rows
}

// searchRows lists every node whose path matches the query, best match
// first.
func (m *pickModel) searchRows() []row {
	q, err := search.Parse(m.query)
	if err != nil {
		m.status = err.Error()
		return nil
	}

	var nodes []*tree.Node
	var paths []string
	for _, n := range m.sess.Index.Nodes() {
		if n.IsRoot() {
			continue
		}
		nodes = append(nodes, n)
		paths = append(paths, n.Path)
	}

	matches := q.Filter(paths)
	rows := make([]row, len(matches))
	for i, match := range matches {
		n := nodes[match.Index]
		label := n.Path
		if n.IsDir() {
			label += "/"
		}
		rows[i] = row{node: n, label: label}
	}
	return rows
}

func (m *pickModel) summarize() string {
	if m.sess == nil {
		return ""
	}
	snap := m.sess.Selection.Snapshot()
	if err := pattern.Validate(snap); err != nil {
		return "Nothing selected"
	}
	res := pattern.Synthesize(snap)
	files, err := pattern.CoveredFiles(res, m.sess.Index)
	if err != nil {
		return err.Error()
	}
	include := res.Include
	if res.UsesWholeRoot {
		include = "(whole directory)"
	}
	return fmt.Sprintf("%d files · include: %s", len(files), include)
}
