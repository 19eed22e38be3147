package rhythm

import (
	"math"
	"time"
)

const (
	// TapWindow is the number of recent intervals averaged into a tap estimate.
	TapWindow = 6

	// TapTimeout separates one tapping session from the next.
	TapTimeout = 2 * time.Second
)

// TapTempo estimates a tempo from the intervals between taps.
type TapTempo struct {
	last   time.Time
	deltas []time.Duration
}

// NewTapTempo creates an estimator with an empty queue.
func NewTapTempo() *TapTempo {
	return &TapTempo{deltas: make([]time.Duration, 0, TapWindow)}
}

// Record registers a tap at ts. It returns the estimated BPM and true when at least one interval is queued.
// A tap more than TapTimeout after the previous one starts a new session and yields no estimate, as does the
// very first tap or a timestamp that does not move forward.
func (t *TapTempo) Record(ts time.Time) (int, bool) {
	first := t.last.IsZero()
	delta := ts.Sub(t.last)
	t.last = ts

	if first || delta > TapTimeout || delta <= 0 {
		t.deltas = t.deltas[:0]
		return 0, false
	}

	if len(t.deltas) == TapWindow {
		copy(t.deltas, t.deltas[1:])
		t.deltas = t.deltas[:TapWindow-1]
	}
	t.deltas = append(t.deltas, delta)

	var sum time.Duration
	for _, d := range t.deltas {
		sum += d
	}
	average := float64(sum) / float64(len(t.deltas))
	return int(math.Round(float64(time.Minute) / average)), true
}

// Intervals returns a copy of the queued intervals, oldest first.
func (t *TapTempo) Intervals() []time.Duration {
	out := make([]time.Duration, len(t.deltas))
	copy(out, t.deltas)
	return out
}

// Reset forgets the previous tap and all queued intervals.
func (t *TapTempo) Reset() {
	t.last = time.Time{}
	t.deltas = t.deltas[:0]
}
