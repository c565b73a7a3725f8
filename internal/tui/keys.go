package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keybindings for the dashboard
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Play        key.Binding
	PlayResult  key.Binding
	Search      key.Binding
	Filters     key.Binding
	HideWatched key.Binding
	Sort        key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Primary     key.Binding
	SearchTab   key.Binding
	HistoryTab  key.Binding
	Refresh     key.Binding
	Copy        key.Binding
	Browser     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		PlayResult: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "play search result"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filters: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "filters"),
		),
		HideWatched: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide watched"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Primary: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "current view"),
		),
		SearchTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "search tab"),
		),
		HistoryTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history tab"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Browser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll details up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll details down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Search, k.Filters, k.HideWatched, k.Sort, k.NextTab, k.Help}
}

// FullHelp returns the bindings shown in the help panel
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play, k.PlayResult, k.ScrollUp, k.ScrollDown},
		{k.Search, k.Filters, k.HideWatched, k.Sort, k.Refresh},
		{k.NextTab, k.PrevTab, k.Primary, k.SearchTab, k.HistoryTab},
		{k.Copy, k.Browser, k.Help, k.Quit},
	}
}
