package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the token browser.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Mapping rows.
	Toggle    key.Binding
	ToggleAll key.Binding

	// Search box.
	Search      key.Binding // Focus the search box.
	Submit      key.Binding // Apply the query now and leave the box.
	Leave       key.Binding // Leave the box; the pending query still applies.
	ClearSearch key.Binding // Drop the query (table focus only).

	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "expand/collapse all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply search"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc", "back to table"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// flat disables the bindings that only make sense when mapping rows can
// be expanded.
func (k KeyMap) flat() KeyMap {
	k.Toggle.SetEnabled(false)
	k.ToggleAll.SetEnabled(false)
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Toggle, k.ToggleAll},
		{k.Search, k.Submit, k.Leave, k.ClearSearch},
		{k.Dismiss, k.Help, k.Quit},
	}
}

// searchHelp is shown in place of the short help while the search box has
// focus.
func (k KeyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Leave}
}
