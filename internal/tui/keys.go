package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Search   key.Binding
	Type     key.Binding
	Sort     key.Binding
	Reorder  key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Reset    key.Binding
	Login    key.Binding
	Logout   key.Binding
	Retry    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Type:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Reorder:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reorder")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Reset:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "reset order")),
		Login:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log in")),
		Logout:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "log out")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpFor renders "key action" pairs for the footer.
func helpFor(bs ...key.Binding) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}
