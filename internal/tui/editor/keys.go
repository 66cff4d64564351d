package editor

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Commit        key.Binding
	Cancel        key.Binding
	NextField     key.Binding
	PrevField     key.Binding
	NewLine       key.Binding
	Left          key.Binding
	Right         key.Binding
	Up            key.Binding
	Down          key.Binding
	Home          key.Binding
	End           key.Binding
	TopHome       key.Binding
	BottomEnd     key.Binding
	Backspace     key.Binding
	Delete        key.Binding
	BackspaceWord key.Binding
	DeleteWord    key.Binding
	LeftWord      key.Binding
	RightWord     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Commit: key.NewBinding(
			key.WithKeys("ctrl+g", "ctrl+s"),
			key.WithHelp("ctrl+g", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		NewLine: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "newline"),
		),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
		TopHome:   key.NewBinding(key.WithKeys("ctrl+home")),
		BottomEnd: key.NewBinding(key.WithKeys("ctrl+end")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		BackspaceWord: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
		),
		DeleteWord: key.NewBinding(
			key.WithKeys("ctrl+delete", "alt+d", "alt+delete"),
		),
		LeftWord:  key.NewBinding(key.WithKeys("ctrl+left", "alt+left", "alt+b")),
		RightWord: key.NewBinding(key.WithKeys("ctrl+right", "alt+right", "alt+f")),
	}
}

// ShortHelp lists the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Commit, k.Cancel}
}
