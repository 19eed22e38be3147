package rhythm

import "fmt"

const emptySlot = -1

// Entry is the three digit BPM entry buffer. Digits shift in from the right; the oldest falls off the left.
type Entry struct {
	slots   [3]int // hundreds, tens, ones
	reading bool
}

// NewEntry creates an idle entry buffer.
func NewEntry() *Entry {
	e := &Entry{}
	e.clear()
	return e
}

func (e *Entry) clear() {
	for i := range e.slots {
		e.slots[i] = emptySlot
	}
}

// Reading reports whether a new value is being composed.
func (e *Entry) Reading() bool {
	return e.reading
}

// Begin clears the buffer and starts composing, unless already composing.
func (e *Entry) Begin() {
	if e.reading {
		return
	}
	e.clear()
	e.reading = true
}

// Push shifts d into the ones slot.
func (e *Entry) Push(d int) error {
	if d < 0 || d > 9 {
		return invalid("push digit", ErrInvalidDigit, "got %d", d)
	}
	e.Begin()
	e.slots[0], e.slots[1], e.slots[2] = e.slots[1], e.slots[2], d
	return nil
}

// Value returns the buffer as a number; empty slots count as zero.
func (e *Entry) Value() int {
	v := 0
	for _, d := range e.slots {
		if d == emptySlot {
			d = 0
		}
		v = v*10 + d
	}
	return v
}

// Digits returns the buffer, with -1 marking empty slots.
func (e *Entry) Digits() [3]int {
	return e.slots
}

// Finish ends composing and returns the buffered value.
func (e *Entry) Finish() int {
	v := e.Value()
	e.reading = false
	return v
}

// Cancel ends composing and drops the buffer.
func (e *Entry) Cancel() {
	e.clear()
	e.reading = false
}

// Display renders the three digit readout. While composing, empty slots are blank; otherwise it shows bpm
// right aligned.
func (e *Entry) Display(bpm int) string {
	if !e.reading {
		return fmt.Sprintf("%3d", bpm)
	}
	out := make([]byte, 3)
	for i, d := range e.slots {
		if d == emptySlot {
			out[i] = ' '
		} else {
			out[i] = byte('0' + d)
		}
	}
	return string(out)
}
