package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit          key.Binding
	Focus           key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	ClearCompleted  key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	Dismiss         key.Binding
	Reload          key.Binding
	Quit            key.Binding
	ForceQuit       key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch focus"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	ClearCompleted: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear completed"),
	),
	FilterAll: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "all"),
	),
	FilterActive: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "active"),
	),
	FilterCompleted: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "completed"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// listHelp is the key reference shown while the list has focus.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Delete, k.ClearCompleted, k.FilterAll, k.FilterActive, k.FilterCompleted, k.Dismiss, k.Reload, k.Quit}
}

// inputHelp is the key reference shown while the input has focus.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Focus}
}
