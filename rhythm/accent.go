package rhythm

import "fmt"

// Accent is the strength of a single subdivision.
type Accent int

const (
	Off Accent = iota
	Low
	High
)

// Next returns the accent that follows a in the Off -> Low -> High -> Off cycle.
func (a Accent) Next() Accent {
	return (a + 1) % 3
}

// Valid reports whether a is one of Off, Low or High.
func (a Accent) Valid() bool {
	return a >= Off && a <= High
}

// Digit returns the persisted form of the accent ('0', '1' or '2').
func (a Accent) Digit() byte {
	return '0' + byte(a)
}

// AccentFromDigit parses the persisted form of an accent.
func AccentFromDigit(c byte) (Accent, bool) {
	a := Accent(c) - '0'
	if !a.Valid() {
		return Off, false
	}
	return a, true
}

func (a Accent) String() string {
	switch a {
	case Off:
		return "off"
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return fmt.Sprintf("accent(%d)", int(a))
	}
}
