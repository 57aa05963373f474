package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the console.
type keyMap struct {
	send      key.Binding
	reminders key.Binding
	replies   key.Binding
	back      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		send:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		reminders: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "my reminders")),
		replies:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "replies")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.send, k.reminders, k.replies, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.send, k.back},
		{k.reminders, k.replies, k.quit},
	}
}
