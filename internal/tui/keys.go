package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Interest key.Binding
	Filter   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Logout   key.Binding
	Refresh  key.Binding
	Submit   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Yes      key.Binding
	No       key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add property")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit property")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Interest: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "I'm interested")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Refresh:  key.NewBinding(key.WithKeys("R", "r"), key.WithHelp("r", "refresh")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
}
