package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestTapSteadyQuarterNotes(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo()
	_, ok := tt.Record(epoch)
	require.False(t, ok)

	var bpm int
	for i := 1; i <= 4; i++ {
		bpm, ok = tt.Record(epoch.Add(ms(500 * i)))
		require.True(t, ok)
	}
	assert.Equal(t, 120, bpm)
}

func TestTapAveragesLastSixIntervals(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo()
	ts := epoch
	tt.Record(ts)

	// one slow interval followed by six steady ones; the slow one must be evicted
	ts = ts.Add(ms(1500))
	tt.Record(ts)
	var bpm int
	for i := 0; i < TapWindow; i++ {
		ts = ts.Add(ms(400))
		bpm, _ = tt.Record(ts)
	}
	assert.Equal(t, 150, bpm)
	assert.Len(t, tt.Intervals(), TapWindow)
	assert.Equal(t, ms(400), tt.Intervals()[0])
}

func TestTapRounding(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo()
	tt.Record(epoch)
	tt.Record(epoch.Add(ms(700)))
	bpm, ok := tt.Record(epoch.Add(ms(1400)))
	require.True(t, ok)
	assert.Equal(t, 86, bpm) // 60000/700 = 85.71
}

func TestTapTimeoutStartsNewSession(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo()
	tt.Record(epoch)
	tt.Record(epoch.Add(ms(500)))
	require.Len(t, tt.Intervals(), 1)

	// more than two seconds later: queue cleared, no estimate
	late := epoch.Add(ms(500 + 2001))
	_, ok := tt.Record(late)
	assert.False(t, ok)
	assert.Empty(t, tt.Intervals())

	bpm, ok := tt.Record(late.Add(ms(1000)))
	require.True(t, ok)
	assert.Equal(t, 60, bpm)
}

func TestTapExactlyAtTimeoutContinues(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo()
	tt.Record(epoch)
	bpm, ok := tt.Record(epoch.Add(TapTimeout))
	require.True(t, ok)
	assert.Equal(t, 30, bpm)
}

func TestTapNonIncreasingTimestampResets(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo()
	tt.Record(epoch)
	tt.Record(epoch.Add(ms(500)))
	_, ok := tt.Record(epoch.Add(ms(500)))
	assert.False(t, ok)
	assert.Empty(t, tt.Intervals())

	tt.Reset()
	_, ok = tt.Record(epoch.Add(ms(600)))
	assert.False(t, ok)
}
