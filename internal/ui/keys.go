package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// Sidebar
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	NewFolder key.Binding
	DelFolder key.Binding

	// Cards
	Next          key.Binding
	Prev          key.Binding
	First         key.Binding
	Flip          key.Binding
	Favorite      key.Binding
	Shuffle       key.Binding
	ResetOrder    key.Binding
	Search        key.Binding
	FavoritesOnly key.Binding
	AddWord       key.Binding
	DeleteWord    key.Binding
	Refresh       key.Binding

	// Dialogs
	Confirm   key.Binding
	Yes       key.Binding
	No        key.Binding
	Translate key.Binding
	NextField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Dismiss notice / close"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open list"),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New folder"),
		),
		DelFolder: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete folder"),
		),

		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next card"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous card"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First card"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Flip card"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Shuffle"),
		),
		ResetOrder: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "Original order"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		FavoritesOnly: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Favorites only"),
		),
		AddWord: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add word"),
		),
		DeleteWord: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete word"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload from server"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "No"),
		),
		Translate: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Translate into empty field"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "up", "down"),
			key.WithHelp("tab", "Next field"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Next, k.Favorite, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Up, k.Down, k.Open, k.NewFolder, k.DelFolder},
		{k.Next, k.Prev, k.First, k.Flip},
		{k.Favorite, k.Shuffle, k.ResetOrder, k.Search, k.FavoritesOnly},
		{k.AddWord, k.DeleteWord, k.Refresh, k.Translate},
		{k.CycleTheme, k.Escape, k.Help, k.Quit},
	}
}
