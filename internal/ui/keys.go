package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	SecondWindow key.Binding
	Fullscreen   key.Binding
	Save         key.Binding
	Export       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next option"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle/press"),
		),
		SecondWindow: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "add/remove 2nd window"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "fullscreen"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save profile"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.SecondWindow, k.Save, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right, k.Toggle},
		{k.SecondWindow, k.Fullscreen, k.Save, k.Export},
		{k.Help, k.Quit},
	}
}
