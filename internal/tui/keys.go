package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Help     key.Binding
	Fasting  key.Binding
	Suhoor   key.Binding
	Prayer   key.Binding
	Morning  key.Binding
	Evening  key.Binding
	Pages    key.Binding
	Goal     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.PrevDay, k.NextDay, k.Today},
		{k.Fasting, k.Suhoor, k.Prayer, k.Morning, k.Evening, k.Pages, k.Goal},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Fasting: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle fast"),
		),
		Suhoor: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle suhoor"),
		),
		Prayer: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "toggle prayer"),
		),
		Morning: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "morning azkar"),
		),
		Evening: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "evening azkar"),
		),
		Pages: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "log pages"),
		),
		Goal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "change goal"),
		),
	}
}
