package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/metro/control"
	"github.com/robmorgan/metro/effect"
	"github.com/robmorgan/metro/rhythm"
)

// frameRate is how often the flash is redrawn.
const frameRate = 25 * time.Millisecond

// Controller runs commands for the UI. *control.Master implements it.
type Controller interface {
	Handle(cmd control.Command) error
	Metronome() *rhythm.Metronome
}

// Model is the terminal front end. Keys become commands; pulses arrive through a PulseSink.
type Model struct {
	controller Controller
	pulses     <-chan rhythm.Pulse

	snap  rhythm.Snapshot
	last  rhythm.Pulse
	flash *effect.Flash
	high  colorful.Color
	low   colorful.Color
	now   time.Time

	// subdivision of the active signature that accent edits apply to
	edit int

	err      error
	keys     keyMap
	help     help.Model
	quitting bool
}

// NewModel creates the UI model. highHex and lowHex colour the strong and weak accents.
func NewModel(c Controller, pulses <-chan rhythm.Pulse, highHex, lowHex string) (Model, error) {
	high, err := colorful.Hex(highHex)
	if err != nil {
		return Model{}, err
	}
	low, err := colorful.Hex(lowHex)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		controller: c,
		pulses:     pulses,
		flash:      effect.NewFlash(150 * time.Millisecond),
		high:       high,
		low:        low,
		keys:       keys,
		help:       help.New(),
	}
	m.refresh()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForPulse(m.pulses))
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type pulseMsg rhythm.Pulse

func waitForPulse(pulses <-chan rhythm.Pulse) tea.Cmd {
	if pulses == nil {
		return nil
	}
	return func() tea.Msg {
		return pulseMsg(<-pulses)
	}
}

// refresh reads the session and keeps the edit cursor inside the active bar.
func (m *Model) refresh() {
	m.snap = m.controller.Metronome().Snapshot()
	total := m.snap.ActiveSignature().Total()
	if m.edit >= total {
		m.edit = total - 1
	}
	if m.edit < 0 {
		m.edit = 0
	}
}
