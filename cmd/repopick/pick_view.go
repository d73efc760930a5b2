package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hayeah/repopick/defaults"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

const headerHeight = 2

// resize lays out the list and pane for the current window size.
func (m *pickModel) resize() {
	if m.width == 0 {
		return
	}
	m.help.Width = m.width

	footer := 2 + lipgloss.Height(m.help.View(m.keys))
	if m.mode != inputNone {
		footer++
	}
	// borders take two lines and two columns
	body := max(m.height-headerHeight-footer-2, 1)

	listWidth := m.width / 2
	m.list.Width = max(listWidth-2, 1)
	m.list.Height = body
	m.pane.Width = max(m.width-listWidth-2, 1)
	m.pane.Height = max(body-1, 1)
	m.renderList()
}

// renderList writes the rows into the list viewport and keeps the cursor
// in view.
func (m *pickModel) renderList() {
	var sb strings.Builder
	for i, r := range m.rows {
		sb.WriteString(m.renderRow(i, r))
		sb.WriteString("\n")
	}
	m.list.SetContent(sb.String())

	top := m.list.YOffset
	bottom := top + m.list.Height - 1
	if m.cursor < top {
		m.list.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.list.SetYOffset(m.cursor - m.list.Height + 1)
	}
}

func (m *pickModel) renderRow(i int, r row) string {
	n := r.node

	check := "[ ]"
	if m.sess.Selection.IsSelected(n.Path) {
		check = "[x]"
	}

	name := r.label
	if name == "" {
		name = n.Name
		if n.IsRoot() {
			name = m.dir
		}
		if n.IsDir() {
			arrow := "▸ "
			if m.expanded[n.Path] {
				arrow = "▾ "
			}
			name = arrow + name + "/"
		} else {
			name = "  " + name
		}
	}

	line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", r.depth), check, name)

	a := defaults.Annotate(n, m.sess.Defaults)
	switch {
	case i == m.cursor:
		return cursorStyle.Render(line)
	case a.IsDefault:
		return defaultStyle.Render(line + " *")
	case a.ContainsDefault && !n.IsRoot():
		return line + dimStyle.Render(" +")
	}
	return line
}

func (m *pickModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := titleStyle.Render("repopick") + " " + m.dir + "\n" + m.flagsLine()

	var list string
	switch {
	case m.sess == nil && m.loading:
		list = m.spinner.View() + " Loading..."
	case m.sess == nil:
		list = "No directory loaded"
	default:
		list = m.list.View()
	}

	paneTitle := "Output"
	if m.paneMode == panePreview {
		paneTitle = "Preview"
	}
	pane := m.pane.View()
	if m.running {
		pane = m.spinner.View() + " Processing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(m.list.Width).Height(m.list.Height).Render(list),
		paneStyle.Width(m.pane.Width).Height(m.list.Height).Render(dimStyle.Render(paneTitle)+"\n"+pane),
	)

	var footer []string
	if m.mode != inputNone {
		footer = append(footer, m.input.View())
	}
	footer = append(footer, m.summary)
	status := m.status
	if m.err != nil || strings.HasPrefix(status, "Load failed") {
		status = errorStyle.Render(status)
	}
	footer = append(footer, status, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, strings.Join(footer, "\n"))
}

func (m *pickModel) flagsLine() string {
	on := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	filter := on(m.filterMode)
	if m.sess != nil && m.filterMode && !m.sess.FilterActive() {
		filter += " (no defaults)"
	}
	return dimStyle.Render(fmt.Sprintf(
		"style: %s  remove comments: %s  remove empty lines: %s  copy: %s  default files only: %s",
		m.style, on(m.removeComments), on(m.removeEmptyLines), on(m.autoCopy), filter,
	))
}
