package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/metro/control"
	"github.com/robmorgan/metro/rhythm"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if key.Matches(msg, m.keys.Left) {
			m.edit--
			m.refresh()
			return m, nil
		}
		if key.Matches(msg, m.keys.Right) {
			m.edit++
			m.refresh()
			return m, nil
		}
		if cmd, ok := m.command(msg); ok {
			m.err = m.controller.Handle(cmd)
			m.refresh()
		}
	case pulseMsg:
		m.last = rhythm.Pulse(msg)
		switch msg.Accent {
		case rhythm.High:
			m.flash.Trigger(msg.At, 1)
		case rhythm.Low:
			m.flash.Trigger(msg.At, 0.5)
		}
		m.refresh()
		return m, waitForPulse(m.pulses)
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// command maps a key press onto a command.
func (m Model) command(msg tea.KeyMsg) (control.Command, bool) {
	switch {
	case key.Matches(msg, m.keys.StartStop):
		return control.StartStop(), true
	case key.Matches(msg, m.keys.Tap):
		return control.Tap(time.Now()), true
	case key.Matches(msg, m.keys.Digit):
		return control.Digit(int(msg.String()[0] - '0')), true
	case key.Matches(msg, m.keys.Commit):
		return control.CommitEntry(), true
	case key.Matches(msg, m.keys.Cancel):
		return control.CancelEntry(), true
	case key.Matches(msg, m.keys.Slower):
		return control.AdjustBPM(-1), true
	case key.Matches(msg, m.keys.Faster):
		return control.AdjustBPM(1), true
	case key.Matches(msg, m.keys.MuchSlow):
		return control.AdjustBPM(-10), true
	case key.Matches(msg, m.keys.MuchFast):
		return control.AdjustBPM(10), true
	case key.Matches(msg, m.keys.NextSig):
		return control.NextSignature(), true
	case key.Matches(msg, m.keys.PrevSig):
		return control.PrevSignature(), true
	case key.Matches(msg, m.keys.Accent):
		return control.CycleAccent(m.snap.Active, m.edit), true
	}
	return control.Command{}, false
}
