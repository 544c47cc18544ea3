package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Simulate key.Binding
	Next     key.Binding
	Prev     key.Binding
	Picker   key.Binding
	Help     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Simulate: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "simulate policy")),
		Next:     key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n/tab", "next sector")),
		Prev:     key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev sector")),
		Picker:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find sector")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Picker, k.Next, k.Simulate, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Picker, k.Next, k.Prev},
		{k.Simulate, k.Refresh},
		{k.Help, k.Quit},
	}
}
