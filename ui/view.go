package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/metro/rhythm"
)

var (
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
	tempoStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	entryStyle   = tempoStyle.Copy().BorderForeground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Margin(1, 0)
	background   = colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	accentGlyphs = map[rhythm.Accent]string{rhythm.Off: "·", rhythm.Low: "•", rhythm.High: "●"}
)

func (m Model) View() string {
	var s strings.Builder

	display := tempoStyle.Render(m.snap.Display)
	if m.snap.Reading {
		display = entryStyle.Render(m.snap.Display)
	}

	transport := dimStyle.Render("■ stopped")
	if m.snap.Running {
		transport = activeStyle.Render("▶ playing")
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		display, "  BPM   ", transport, "   ", activeStyle.Render(m.snap.Active), "  ", dimStyle.Render(m.snap.GetMarker()),
	))
	s.WriteString("\n\n")
	s.WriteString(m.barView())
	s.WriteString("\n\n")
	s.WriteString(m.signaturesView())
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	if m.quitting {
		s.WriteString("\n")
	}
	return appStyle.Render(s.String())
}

// barView draws one cell per subdivision with a gap between groups. The current cell glows while the flash
// fades.
func (m Model) barView() string {
	sig := m.snap.ActiveSignature()
	accents := m.snap.Accents[sig.ID]
	cursor := m.snap.Cursor()
	level := m.flash.Level(m.now)

	cells := make([]string, 0, len(accents)+sig.Groups)
	for i, a := range accents {
		if i > 0 && sig.Divisions > 0 && i%sig.Divisions == 0 {
			cells = append(cells, " ")
		}

		style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(m.accentColor(a).Hex()))
		if i == cursor {
			glow := background
			if m.snap.Running {
				glow = background.BlendRgb(m.accentColor(a), level)
			}
			style = style.Background(lipgloss.Color(glow.Hex()))
		}
		if i == m.edit {
			style = style.Underline(true)
		}
		cells = append(cells, style.Render(accentGlyphs[a]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) signaturesView() string {
	ids := make([]string, 0, len(m.snap.Signatures))
	for _, sig := range m.snap.Signatures {
		if sig.ID == m.snap.Active {
			ids = append(ids, activeStyle.Render(fmt.Sprintf("[%s]", sig.ID)))
			continue
		}
		ids = append(ids, dimStyle.Render(sig.ID))
	}
	return strings.Join(ids, " ")
}

func (m Model) accentColor(a rhythm.Accent) colorful.Color {
	switch a {
	case rhythm.High:
		return m.high
	case rhythm.Low:
		return m.low
	default:
		return colorful.Color{R: 0.4, G: 0.4, B: 0.4}
	}
}
