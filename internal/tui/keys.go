package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the table key bindings. Developer bindings are only active
// while the developer panel is open.
type keyMap struct {
	Deal  key.Binding
	Hit   key.Binding
	Stand key.Binding

	Dev        key.Binding
	ForceEnd   key.Binding
	DealPlayer key.Binding
	DealDealer key.Binding
	DealNow    key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Deal: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d", "deal"),
		),
		Hit: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hit"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stand"),
		),
		Dev: key.NewBinding(
			key.WithKeys("`"),
			key.WithHelp("`", "dev panel"),
		),
		ForceEnd: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "end round"),
		),
		DealPlayer: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "card to player"),
		),
		DealDealer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "card to dealer"),
		),
		DealNow: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "deal now"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll log"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Hit, k.Stand, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Hit, k.Stand},
		{k.ScrollUp, k.ScrollDown},
		{k.Dev, k.ForceEnd, k.DealPlayer, k.DealDealer, k.DealNow},
		{k.Help, k.Quit},
	}
}
