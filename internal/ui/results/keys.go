package results

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the results view key bindings
type KeyMap struct {
	NextTab        key.Binding
	PrevTab        key.Binding
	ConceptsTab    key.Binding
	AnnotationsTab key.Binding
	Up             key.Binding
	Down           key.Binding
	Open           key.Binding
	Retry          key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "previous tab"),
		),
		ConceptsTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "concepts"),
		),
		AnnotationsTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "annotations"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
	}
}
