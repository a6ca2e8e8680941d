package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay  key.Binding
	distraction key.Binding
	stop        key.Binding
	quit        key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause/resume"),
	),
	distraction: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "log distraction"),
	),
	stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "end session"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
