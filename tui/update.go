package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/lockin/engine"
	"github.com/ayoisaiah/lockin/ledger"
)

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.ctrl.State() != engine.StateIdle {
		err := m.writeStatusFile()
		if err != nil {
			slog.Error("unable to write status file", slog.Any("error", err))
		}

		return m, tick()
	}

	// the session expired on its own
	return m, m.beginAnnotation()
}

// beginAnnotation switches to the post-session form, or quits when there is
// nothing to annotate.
func (m *Model) beginAnnotation() tea.Cmd {
	if m.annotating {
		return nil
	}

	if m.ctrl.LastSessionID() == "" {
		m.quitting = true
		return tea.Batch(tea.ClearScreen, tea.Quit)
	}

	m.annotating = true
	m.form = m.annotationForm()

	return m.form.Init()
}

// saveAnnotation applies the completed form to the session that just ended.
func (m *Model) saveAnnotation() {
	patch := ledger.SessionPatch{}

	if m.difficulty != "" {
		d := ledger.Difficulty(m.difficulty)
		patch.Difficulty = &d
	}

	if m.comment != "" {
		patch.Comment = &m.comment
	}

	if patch.Difficulty == nil && patch.Comment == nil {
		return
	}

	err := m.ctrl.AmendSession(m.ctrl.LastSessionID(), patch)
	if err != nil {
		slog.Error("unable to save annotation", slog.Any("error", err))
	}
}

func (m *Model) handleFormMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Batch(tea.ClearScreen, tea.Quit)
		}
	}

	slog.Debug(spew.Sdump(msg))

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.saveAnnotation()

		m.quitting = true

		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.togglePlay):
		if m.ctrl.State() == engine.StateRunning {
			m.ctrl.Pause()
		} else {
			m.ctrl.Resume()
		}

		return m, nil

	case key.Matches(msg, defaultKeymap.distraction):
		m.ctrl.LogDistraction()
		return m, nil

	case key.Matches(msg, defaultKeymap.stop):
		m.ctrl.Stop()
		return m, m.beginAnnotation()

	case key.Matches(msg, defaultKeymap.quit):
		m.ctrl.Stop()

		m.quitting = true

		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.annotating {
		if _, ok := msg.(tickMsg); ok {
			return m, nil
		}

		return m.handleFormMsg(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

		// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		var progressModel tea.Model

		var cmd tea.Cmd

		progressModel, cmd = m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}
