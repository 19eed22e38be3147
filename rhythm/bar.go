package rhythm

// Bar is the accent pattern of one signature plus its current subdivision.
type Bar struct {
	sig     Signature
	accents []Accent
	cursor  int
}

// NewBar creates a bar with the default accent template: the first subdivision of the first group is High, the
// first subdivision of every other group is Low and everything else is Off.
func NewBar(sig Signature) *Bar {
	b := &Bar{
		sig:     sig,
		accents: make([]Accent, sig.Total()),
	}
	for g := 0; g < sig.Groups; g++ {
		if g == 0 {
			b.accents[0] = High
		} else {
			b.accents[g*sig.Divisions] = Low
		}
	}
	return b
}

// Signature returns the signature this bar belongs to.
func (b *Bar) Signature() Signature {
	return b.sig
}

// Len returns the number of subdivisions.
func (b *Bar) Len() int {
	return len(b.accents)
}

// Cursor returns the current subdivision.
func (b *Bar) Cursor() int {
	return b.cursor
}

// Accent returns the accent at index.
func (b *Bar) Accent(index int) Accent {
	return b.accents[index]
}

// Current returns the accent of the current subdivision.
func (b *Bar) Current() Accent {
	return b.accents[b.cursor]
}

// Accents returns a copy of the pattern.
func (b *Bar) Accents() []Accent {
	out := make([]Accent, len(b.accents))
	copy(out, b.accents)
	return out
}

// Cycle advances the accent at index and returns the new value.
func (b *Bar) Cycle(index int) (Accent, error) {
	if index < 0 || index >= len(b.accents) {
		return Off, invalid("cycle accent", ErrIndexOutOfRange, "%s: index %d of %d", b.sig.ID, index, len(b.accents))
	}
	b.accents[index] = b.accents[index].Next()
	return b.accents[index], nil
}

// SetAccents replaces the whole pattern. The length has to match the signature.
func (b *Bar) SetAccents(accents []Accent) error {
	if len(accents) != len(b.accents) {
		return invalid("set accents", ErrPatternLength, "%s: got %d, want %d", b.sig.ID, len(accents), len(b.accents))
	}
	for i, a := range accents {
		if !a.Valid() {
			return invalid("set accents", ErrInvalidAccent, "%s: bad accent %d at %d", b.sig.ID, int(a), i)
		}
	}
	copy(b.accents, accents)
	return nil
}

// Advance moves the cursor one subdivision forward, wrapping at the end of the bar, and returns the new index.
func (b *Bar) Advance() int {
	b.cursor = (b.cursor + 1) % len(b.accents)
	return b.cursor
}

// Rewind puts the cursor back on the first subdivision.
func (b *Bar) Rewind() {
	b.cursor = 0
}
