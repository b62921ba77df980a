package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application. The bindings
// translate key presses into engine calls; the engine itself knows
// nothing about keys.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding
	Add           key.Binding
	AddFolder     key.Binding
	Edit          key.Binding
	Delete        key.Binding
	Archive       key.Binding
	ArchiveFirst  key.Binding
	Undo          key.Binding
	Search        key.Binding
	Palette       key.Binding
	CycleFolder   key.Binding
	CycleTag      key.Binding
	ToggleArchive key.Binding
	Sort          key.Binding
	Paste         key.Binding
	Close         key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o/enter", "open in browser"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add bookmark"),
		),
		AddFolder: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "add folder"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive/unarchive"),
		),
		ArchiveFirst: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "archive first result"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Palette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "quick open"),
		),
		CycleFolder: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle folder"),
		),
		CycleTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle tag"),
		),
		ToggleArchive: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show archived"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle sort"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste URL"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
