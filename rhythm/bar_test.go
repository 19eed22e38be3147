package rhythm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarTemplate(t *testing.T) {
	t.Parallel()

	b := NewBar(Signature{ID: "4/4", Groups: 4, Divisions: 4})
	assert.Equal(t, []Accent{
		High, Off, Off, Off,
		Low, Off, Off, Off,
		Low, Off, Off, Off,
		Low, Off, Off, Off,
	}, b.Accents())
	assert.Equal(t, 0, b.Cursor())

	single := NewBar(Signature{ID: "3/4", Groups: 3, Divisions: 1})
	assert.Equal(t, []Accent{High, Low, Low}, single.Accents())
}

func TestCycleIsThreeCycle(t *testing.T) {
	t.Parallel()

	b := NewBar(Signature{ID: "6/8", Groups: 2, Divisions: 3})
	for i := 0; i < b.Len(); i++ {
		original := b.Accent(i)
		seen := []Accent{}
		for n := 0; n < 3; n++ {
			a, err := b.Cycle(i)
			require.NoError(t, err)
			seen = append(seen, a)
		}
		assert.Equal(t, original, b.Accent(i))
		assert.ElementsMatch(t, []Accent{Off, Low, High}, seen)
	}
}

func TestCycleOutOfRange(t *testing.T) {
	t.Parallel()

	b := NewBar(Signature{ID: "2/4", Groups: 2, Divisions: 2})
	before := b.Accents()

	for _, index := range []int{-1, 4, 100} {
		_, err := b.Cycle(index)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	}
	assert.Equal(t, before, b.Accents())
}

func TestAdvanceWraps(t *testing.T) {
	t.Parallel()

	b := NewBar(Signature{ID: "3/4", Groups: 3, Divisions: 1})
	assert.Equal(t, 1, b.Advance())
	assert.Equal(t, 2, b.Advance())
	assert.Equal(t, 0, b.Advance())
	b.Advance()
	b.Rewind()
	assert.Equal(t, 0, b.Cursor())
}

func TestSetAccents(t *testing.T) {
	t.Parallel()

	b := NewBar(Signature{ID: "2/4", Groups: 2, Divisions: 2})
	require.NoError(t, b.SetAccents([]Accent{Low, Low, High, Off}))
	assert.Equal(t, []Accent{Low, Low, High, Off}, b.Accents())

	err := b.SetAccents([]Accent{High})
	assert.True(t, errors.Is(err, ErrPatternLength))

	err = b.SetAccents([]Accent{High, Accent(7), Off, Off})
	assert.True(t, errors.Is(err, ErrInvalidAccent))
	assert.Equal(t, []Accent{Low, Low, High, Off}, b.Accents())
}

func TestAccentDigits(t *testing.T) {
	t.Parallel()

	for _, a := range []Accent{Off, Low, High} {
		back, ok := AccentFromDigit(a.Digit())
		require.True(t, ok)
		assert.Equal(t, a, back)
	}
	_, ok := AccentFromDigit('3')
	assert.False(t, ok)
	_, ok = AccentFromDigit('x')
	assert.False(t, ok)
	assert.Equal(t, "high", High.String())
}
