package notes

import "github.com/charmbracelet/bubbles/key"

type browserKeyMap struct {
	next      key.Binding
	prev      key.Binding
	enter     key.Binding
	leave     key.Binding
	add       key.Binding
	edit      key.Binding
	delete    key.Binding
	copy      key.Binding
	refresh   key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newBrowserKeyMap() *browserKeyMap {
	return &browserKeyMap{
		next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next"),
		),
		prev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev"),
		),
		enter: key.NewBinding(
			key.WithKeys("l", "enter", "right"),
			key.WithHelp("l/↵", "open"),
		),
		leave: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "back"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (m browserKeyMap) shortHelp() []key.Binding {
	return []key.Binding{m.enter, m.leave, m.add, m.edit, m.delete, m.quit}
}

type dialogKeyMap struct {
	toggle  key.Binding
	confirm key.Binding
	cancel  key.Binding
}

func newDialogKeyMap() *dialogKeyMap {
	return &dialogKeyMap{
		toggle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab"),
			key.WithHelp("←/→", "choose"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func (m dialogKeyMap) shortHelp() []key.Binding {
	return []key.Binding{m.toggle, m.confirm, m.cancel}
}
