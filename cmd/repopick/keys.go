package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the picker's keybindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Collapse key.Binding
	Expand   key.Binding

	Toggle    key.Binding
	SelectAll key.Binding
	ClearAll  key.Binding

	Search       key.Binding
	Directory    key.Binding
	Filter       key.Binding
	Style        key.Binding
	Comments     key.Binding
	EmptyLines   key.Binding
	AutoCopy     key.Binding
	Run          key.Binding
	Copy         key.Binding
	Save         key.Binding
	Preview      key.Binding
	Reload       key.Binding
	PaneUp       key.Binding
	PaneDown     key.Binding
	Help         key.Binding
	Cancel       key.Binding
	Quit         key.Binding
	InputConfirm key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "bottom")),
		Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),

		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		ClearAll:  key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "deselect all")),

		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Directory:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "directory")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "default files only")),
		Style:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "style")),
		Comments:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove comments")),
		EmptyLines: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "remove empty lines")),
		AutoCopy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy after run")),
		Run:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run repomix")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy output")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save output")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview file")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		PaneUp:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "scroll pane up")),
		PaneDown:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "scroll pane down")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		InputConfirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Run, k.Filter, k.Search, k.Preview, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Collapse, k.Expand},
		{k.Toggle, k.SelectAll, k.ClearAll, k.Search, k.Directory, k.Filter, k.Reload},
		{k.Style, k.Comments, k.EmptyLines, k.AutoCopy, k.Run},
		{k.Copy, k.Save, k.Preview, k.PaneUp, k.PaneDown, k.Cancel, k.Quit},
	}
}
