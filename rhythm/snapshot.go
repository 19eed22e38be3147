package rhythm

import (
	"fmt"
	"time"
)

// Snapshot is a point-in-time copy of the session, safe to hand to renderers and the state codec.
type Snapshot struct {
	// Tempo is the committed tempo in BPM.
	Tempo int

	// Active is the id of the selected signature.
	Active string

	// Running reports whether the scheduler was playing.
	Running bool

	// Reading reports whether a tempo was being typed in.
	Reading bool

	// Display is the three character tempo readout.
	Display string

	// Signatures lists every registered signature in registration order.
	Signatures []Signature

	// Accents holds the accent pattern of every signature.
	Accents map[string][]Accent

	// Cursors holds the current subdivision of every signature.
	Cursors map[string]int
}

// Snapshot captures the current session.
func (m *Metronome) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Tempo:      m.tempo,
		Active:     m.active.sig.ID,
		Running:    m.scheduler.Running(),
		Reading:    m.entry.Reading(),
		Display:    m.entry.Display(m.tempo),
		Signatures: m.registry.List(),
		Accents:    make(map[string][]Accent, len(m.bars)),
		Cursors:    make(map[string]int, len(m.bars)),
	}
	for id, bar := range m.bars {
		s.Accents[id] = bar.Accents()
		s.Cursors[id] = bar.Cursor()
	}
	return s
}

// ActiveSignature returns the selected signature.
func (s Snapshot) ActiveSignature() Signature {
	for _, sig := range s.Signatures {
		if sig.ID == s.Active {
			return sig
		}
	}
	return Signature{}
}

// Cursor returns the current subdivision of the active signature.
func (s Snapshot) Cursor() int {
	return s.Cursors[s.Active]
}

// GetBeatInterval gets the beat length at the snapshot tempo.
func (s Snapshot) GetBeatInterval() time.Duration {
	return beatsToDuration(1, s.Tempo)
}

// GetBarInterval gets the length of one full bar of the active signature.
func (s Snapshot) GetBarInterval() time.Duration {
	sig := s.ActiveSignature()
	return subdivisionInterval(s.Tempo, sig.Divisions) * time.Duration(sig.Total())
}

// GetGroupWithinBar returns the 1-based accent group the cursor is in.
func (s Snapshot) GetGroupWithinBar() int {
	sig := s.ActiveSignature()
	if sig.Divisions == 0 {
		return 0
	}
	return s.Cursor()/sig.Divisions + 1
}

// IsDownBeat checks whether the cursor is on the first subdivision of the bar.
func (s Snapshot) IsDownBeat() bool {
	return s.Cursor() == 0
}

// GetMarker returns the cursor position as "group.subdivision", both 1-based.
func (s Snapshot) GetMarker() string {
	sig := s.ActiveSignature()
	if sig.Divisions == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%d.%d", s.Cursor()/sig.Divisions+1, s.Cursor()%sig.Divisions+1)
}
