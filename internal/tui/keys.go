package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Hit      key.Binding
	Stand    key.Binding
	BetUp    key.Binding
	BetDown  key.Binding
	Reset    key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hit:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		BetUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bet up")),
		BetDown:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "bet down")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ScrollUp: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll log")),
		ScrollDn: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll log")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.BetUp, k.BetDown, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stand, k.Reset},
		{k.BetUp, k.BetDown},
		{k.ScrollUp, k.ScrollDn, k.Quit},
	}
}
