package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding // esc — cancel a run or leave the results
	Up        key.Binding
	Down      key.Binding
	Less      key.Binding // h/← — shorter range
	More      key.Binding // l/→ — longer range
	SinceLast key.Binding // t — reach back to the last catch-up
	Start     key.Binding // enter — start or open
	Delete    key.Binding // d — delete a stored catch-up
	Confirm   key.Binding // y — confirm a delete

	NextCategory key.Binding // tab
	PrevCategory key.Binding // shift+tab
	Sort         key.Binding // s — cycle sort key
	Order        key.Binding // S — flip sort order
	Group        key.Binding // g — group by author
	Author       key.Binding // a — cycle authors
	ClearAuthor  key.Binding // A — show all authors
	Links        key.Binding // L — top links
	Open         key.Binding // o — open in browser

	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Less: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "shorter"),
		),
		More: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "longer"),
		),
		SinceLast: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "since last"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next filter"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Order: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "order"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group"),
		),
		Author: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "author"),
		),
		ClearAuthor: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "all authors"),
		),
		Links: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "top links"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
	}
}
