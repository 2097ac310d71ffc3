package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the dashboard.
type keyMap struct {
	Quit       key.Binding
	NextPanel  key.Binding
	PrevPanel  key.Binding
	ToggleAnim key.Binding
}

// keys holds the active bindings.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
	NextPanel: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next panel"),
	),
	PrevPanel: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev panel"),
	),
	ToggleAnim: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle animation"),
	),
}
