package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"odsearch/internal/ui/results"
)

// keyMap holds the shell bindings plus the results view bindings shown in help
type keyMap struct {
	Search  key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Results results.KeyMap
}

func newKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Results: results.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Results.NextTab, k.Results.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Results.Up, k.Results.Down, k.Results.Open},
		{k.Results.NextTab, k.Results.PrevTab, k.Results.ConceptsTab, k.Results.AnnotationsTab},
		{k.Search, k.Submit, k.Cancel, k.Results.Retry},
		{k.Help, k.Quit},
	}
}

// editingKeyMap is shown while the query bar has focus
type editingKeyMap struct {
	keys keyMap
}

func (k editingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.Submit, k.keys.Cancel}
}

func (k editingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
