// Package tui renders a running focus session in the terminal and collects
// the post-session annotation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/lockin/engine"
	"github.com/ayoisaiah/lockin/internal/config"
)

const (
	padding  = 2
	maxWidth = 80
)

type tickMsg time.Time

// Model drives the session view. It polls the controller once per second
// rather than owning any timing state itself.
type Model struct {
	ctrl       *engine.Controller
	cfg        *config.Config
	form       *huh.Form
	difficulty string
	comment    string
	duration   time.Duration
	progress   progress.Model
	help       help.Model
	styles     styles
	unbounded  bool
	annotating bool
	quitting   bool
}

// New returns a model for a session that has already been started on ctrl.
func New(
	ctrl *engine.Controller,
	cfg *config.Config,
	duration time.Duration,
) *Model {
	return &Model{
		ctrl:      ctrl,
		cfg:       cfg,
		duration:  duration,
		unbounded: duration == engine.Unbounded,
		progress:  progress.New(progress.WithDefaultGradient()),
		help:      help.New(),
		styles:    newStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// annotationForm collects a difficulty rating and an optional comment for the
// session that just ended.
func (m *Model) annotationForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How difficult was this session?").
				Options(
					huh.NewOption("Easy", "easy"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Hard", "hard"),
				).
				Value(&m.difficulty),
			huh.NewText().
				Title("Any notes?").
				CharLimit(280).
				Value(&m.comment),
		),
	)
}
