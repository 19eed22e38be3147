package rhythm

import (
	"sync"
	"time"

	"github.com/robmorgan/metro/engine/scale"
	"github.com/robmorgan/metro/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

const (
	MinTempo     = 1
	MaxTempo     = 999
	DefaultTempo = 120
)

// Pulse is emitted every time a subdivision becomes current while the metronome is playing.
type Pulse struct {
	Signature string
	Index     int
	Accent    Accent
	Tempo     int
	At        time.Time
}

// PulseFunc consumes pulses. It is called with the metronome locked, so it must not block or call back into the
// metronome.
type PulseFunc func(Pulse)

// Metronome holds the session: the active signature, the tempo and one bar per registered signature. It owns the
// scheduler that plays the active bar. All methods are safe for concurrent use.
type Metronome struct {
	mu sync.Mutex

	clock     clock.WithTicker
	registry  *Registry
	bars      map[string]*Bar
	active    *Bar
	tempo     int
	entry     *Entry
	taps      *TapTempo
	scheduler *Scheduler
	onPulse   PulseFunc
}

// NewMetronome creates a stopped metronome at DefaultTempo with a default bar for every signature in registry.
// defaultSignature is selected when registered, otherwise the first registered signature is.
func NewMetronome(clk clock.WithTicker, registry *Registry, defaultSignature string) (*Metronome, error) {
	sig, found := registry.Default(defaultSignature)
	if !found {
		return nil, invalid("new metronome", ErrUnknownSignature, "registry is empty")
	}

	m := &Metronome{
		clock:    clk,
		registry: registry,
		bars:     make(map[string]*Bar, registry.Len()),
		tempo:    DefaultTempo,
		entry:    NewEntry(),
		taps:     NewTapTempo(),
	}
	for _, s := range registry.List() {
		m.bars[s.ID] = NewBar(s)
	}
	m.active = m.bars[sig.ID]
	m.scheduler = NewScheduler(clk, &m.mu, m.step)

	return m, nil
}

// OnPulse sets the pulse consumer.
func (m *Metronome) OnPulse(f PulseFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPulse = f
}

// Registry returns the signature registry the metronome was built from.
func (m *Metronome) Registry() *Registry {
	return m.registry
}

// GetTempo returns the tempo in BPM.
func (m *Metronome) GetTempo() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tempo
}

// SetTempo clamps bpm to [MinTempo, MaxTempo] and applies it. A running scheduler is re-armed with the new period
// without moving the cursor. It reports whether the tempo changed.
func (m *Metronome) SetTempo(bpm int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setTempoLocked(bpm)
}

func (m *Metronome) setTempoLocked(bpm int) bool {
	bpm = scale.Clamp(bpm, MinTempo, MaxTempo)
	if bpm == m.tempo {
		return false
	}
	m.tempo = bpm
	m.scheduler.Restart(m.periodLocked())

	logger.GetProjectLogger().WithFields(logrus.Fields{"bpm": bpm, "running": m.scheduler.Running()}).Debug("tempo changed")
	return true
}

// AdjustTempo moves the tempo by delta and leaves digit entry, displaying the committed tempo.
func (m *Metronome) AdjustTempo(delta int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry.Cancel()
	m.setTempoLocked(m.tempo + delta)
	return m.tempo
}

// Tap records a tap at ts and applies the estimated tempo once at least one interval is known. Tapping leaves
// digit entry.
func (m *Metronome) Tap(ts time.Time) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entry.Cancel()
	bpm, ok := m.taps.Record(ts)
	if !ok {
		return m.tempo, false
	}
	m.setTempoLocked(bpm)
	return m.tempo, true
}

// BeginEntry starts composing a new tempo.
func (m *Metronome) BeginEntry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry.Begin()
}

// PushDigit shifts d into the entry buffer, starting entry when needed.
func (m *Metronome) PushDigit(d int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry.Push(d)
}

// CommitEntry applies the entry buffer as the tempo. Without pending entry it keeps the current tempo.
func (m *Metronome) CommitEntry() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entry.Reading() {
		m.setTempoLocked(m.entry.Finish())
	}
	return m.tempo
}

// CancelEntry drops the entry buffer and goes back to showing the tempo.
func (m *Metronome) CancelEntry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry.Cancel()
}

// Display returns the three character tempo readout.
func (m *Metronome) Display() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry.Display(m.tempo)
}

// SelectSignature makes id the active signature and rewinds its bar. When playing, the scheduler is re-armed
// for the new subdivision length and the first subdivision sounds immediately.
func (m *Metronome) SelectSignature(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectLocked(id)
}

func (m *Metronome) selectLocked(id string) error {
	bar, found := m.bars[id]
	if !found {
		return invalid("select signature", ErrUnknownSignature, "%q", id)
	}

	m.active = bar
	bar.Rewind()

	logger.GetProjectLogger().WithFields(logrus.Fields{"signature": id}).Debug("signature selected")

	if m.scheduler.Restart(m.periodLocked()) {
		m.emit()
	}
	return nil
}

// StepSignature selects the signature step positions away from the active one in registry order, wrapping at
// both ends.
func (m *Metronome) StepSignature(step int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.registry.List()
	i := m.registry.IndexOf(m.active.sig.ID) + step
	i = ((i % len(list)) + len(list)) % len(list)
	_ = m.selectLocked(list[i].ID)
	return list[i].ID
}

// CycleAccent advances the accent of one subdivision of signature id.
func (m *Metronome) CycleAccent(id string, index int) (Accent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bar, found := m.bars[id]
	if !found {
		return Off, invalid("cycle accent", ErrUnknownSignature, "%q", id)
	}
	return bar.Cycle(index)
}

// SetAccents replaces the accent pattern of signature id.
func (m *Metronome) SetAccents(id string, accents []Accent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bar, found := m.bars[id]
	if !found {
		return invalid("set accents", ErrUnknownSignature, "%q", id)
	}
	return bar.SetAccents(accents)
}

// Start begins playing. The current subdivision sounds immediately and the cursor advances one subdivision per
// period from there. It is a no-op when already playing.
func (m *Metronome) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startLocked()
}

func (m *Metronome) startLocked() bool {
	if !m.scheduler.Start(m.periodLocked()) {
		return false
	}
	logger.GetProjectLogger().WithFields(logrus.Fields{
		"bpm":       m.tempo,
		"signature": m.active.sig.ID,
		"period":    m.scheduler.Period(),
	}).Info("metronome started")
	m.emit()
	return true
}

// Stop stops playing. It is a no-op when already stopped.
func (m *Metronome) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopLocked()
}

func (m *Metronome) stopLocked() bool {
	if !m.scheduler.Stop() {
		return false
	}
	logger.GetProjectLogger().WithFields(logrus.Fields{"signature": m.active.sig.ID}).Info("metronome stopped")
	return true
}

// StartStop toggles playback and returns whether the metronome is now playing.
func (m *Metronome) StartStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scheduler.Running() {
		m.stopLocked()
		return false
	}
	m.startLocked()
	return true
}

// Running reports whether the metronome is playing.
func (m *Metronome) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduler.Running()
}

// GetBeatInterval returns the length of one beat at the current tempo.
func (m *Metronome) GetBeatInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return beatsToDuration(1, m.tempo)
}

// GetSubdivisionInterval returns the scheduler period for the active signature.
func (m *Metronome) GetSubdivisionInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.periodLocked()
}

// periodLocked divides the beat by the divisions of one group. Groups do not change the subdivision length.
func (m *Metronome) periodLocked() time.Duration {
	return subdivisionInterval(m.tempo, m.active.sig.Divisions)
}

// step is the scheduler callback, run with m.mu held.
func (m *Metronome) step() {
	m.active.Advance()
	m.emit()
}

func (m *Metronome) emit() {
	p := Pulse{
		Signature: m.active.sig.ID,
		Index:     m.active.Cursor(),
		Accent:    m.active.Current(),
		Tempo:     m.tempo,
		At:        m.clock.Now(),
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"signature": p.Signature,
		"index":     p.Index,
		"accent":    p.Accent,
	}).Debug("pulse")

	if m.onPulse != nil {
		m.onPulse(p)
	}
}

// beatsToDuration calculates the length of the given number of beats at tempo.
func beatsToDuration(beats, tempo int) time.Duration {
	return time.Duration(float64(time.Minute) / float64(tempo) * float64(beats))
}

// subdivisionInterval calculates the length of one subdivision when a beat is split into divisions.
func subdivisionInterval(tempo, divisions int) time.Duration {
	return time.Duration(float64(time.Minute) / float64(tempo) / float64(divisions))
}
