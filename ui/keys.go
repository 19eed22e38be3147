package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	StartStop key.Binding
	Tap       key.Binding
	Digit     key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	Slower    key.Binding
	Faster    key.Binding
	MuchSlow  key.Binding
	MuchFast  key.Binding
	NextSig   key.Binding
	PrevSig   key.Binding
	Left      key.Binding
	Right     key.Binding
	Accent    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartStop, k.Tap, k.Digit, k.NextSig, k.Accent, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartStop, k.Tap, k.Quit},
		{k.Digit, k.Commit, k.Cancel},
		{k.Slower, k.Faster, k.MuchSlow, k.MuchFast},
		{k.NextSig, k.PrevSig, k.Left, k.Right, k.Accent},
	}
}

var keys = keyMap{
	StartStop: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/stop")),
	Tap:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tap")),
	Digit: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "type bpm"),
	),
	Commit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "set bpm")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "show bpm")),
	Slower:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "-1")),
	Faster:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "+1")),
	MuchSlow: key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "-10")),
	MuchFast: key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "+10")),
	NextSig:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next signature")),
	PrevSig:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev signature")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move")),
	Accent:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "cycle accent")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
