package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines global and pane-specific bindings.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Refresh     key.Binding
	Worktree    key.Binding
	ToggleFocus key.Binding
	CommitsPane key.Binding
	FilesPane   key.Binding
	DiffPane    key.Binding

	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Open       key.Binding
	Collapse   key.Binding
	Expand     key.Binding
	Review     key.Binding
	Copy       key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Worktree:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "worktree diff")),
		ToggleFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		CommitsPane: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "commits")),
		FilesPane:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "files")),
		DiffPane:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "diff")),

		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		ScrollUp:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "scroll down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Collapse:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "collapse")),
		Expand:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "expand")),
		Review:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle reviewed")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	}
}
