package state

import (
	"errors"
	"testing"
	"time"

	"github.com/robmorgan/metro/rhythm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	testingclock "k8s.io/utils/clock/testing"
)

func newTestMetronome(t *testing.T) *rhythm.Metronome {
	t.Helper()

	r := rhythm.NewRegistry()
	require.NoError(t, r.Register("4/4", 4, 4))
	require.NoError(t, r.Register("3/4", 3, 1))
	require.NoError(t, r.Register("6/8", 2, 3))

	m, err := rhythm.NewMetronome(testingclock.NewFakeClock(time.Unix(0, 0)), r, "")
	require.NoError(t, err)
	return m
}

func TestEncode(t *testing.T) {
	t.Parallel()

	m := newTestMetronome(t)
	m.SetTempo(87)
	require.NoError(t, m.SelectSignature("6/8"))

	rec := Encode(m.Snapshot())
	assert.Equal(t, RecordVersion, rec.Version)
	assert.Equal(t, "087", rec.BPM)
	assert.Equal(t, "6/8", rec.Bar)
	assert.Equal(t, map[string]string{
		"4/4": "2000100010001000",
		"3/4": "211",
		"6/8": "200100",
	}, rec.Ticks)
}

func TestMarshalIsYAML(t *testing.T) {
	t.Parallel()

	m := newTestMetronome(t)
	m.SetTempo(7)
	blob, err := Save(m)
	require.NoError(t, err)

	var rec Record
	require.NoError(t, yaml.Unmarshal([]byte(blob), &rec))
	assert.Equal(t, "007", rec.BPM)
	assert.Equal(t, "4/4", rec.Bar)
	assert.Len(t, rec.Ticks, 3)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	src := newTestMetronome(t)
	src.SetTempo(203)
	require.NoError(t, src.SelectSignature("3/4"))
	for _, c := range []struct {
		id    string
		index int
		times int
	}{
		{"4/4", 1, 1}, {"4/4", 2, 2}, {"4/4", 0, 1}, {"3/4", 2, 2}, {"6/8", 5, 1},
	} {
		for i := 0; i < c.times; i++ {
			_, err := src.CycleAccent(c.id, c.index)
			require.NoError(t, err)
		}
	}

	blob, err := Save(src)
	require.NoError(t, err)

	dst := newTestMetronome(t)
	require.NoError(t, Load(dst, blob))

	want, got := src.Snapshot(), dst.Snapshot()
	assert.Equal(t, want.Tempo, got.Tempo)
	assert.Equal(t, want.Active, got.Active)
	assert.Equal(t, want.Accents, got.Accents)
}

func TestLoadEmptyBlob(t *testing.T) {
	t.Parallel()

	m := newTestMetronome(t)
	before := m.Snapshot()
	require.NoError(t, Load(m, "  \n"))
	assert.Equal(t, before, m.Snapshot())
}

func TestLoadClampsTempo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		blob     string
		expected int
	}{
		{`bpm: "1500"`, 999},
		{`bpm: "000"`, 1},
		{`bpm: "-20"`, 1},
		{`bpm: 140`, 140},
		{`bpm: " 64"`, 64},
		{`bpm: "99999999999999999999"`, 999},
		{`bpm: "-99999999999999999999"`, 1},
	}

	for _, testCase := range testCases {
		m := newTestMetronome(t)
		require.NoError(t, Load(m, testCase.blob), testCase.blob)
		assert.Equal(t, testCase.expected, m.GetTempo(), testCase.blob)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	m := newTestMetronome(t)
	require.NoError(t, Load(m, `{"version":1,"bpm":"095","bar":"3/4","ticks":{"3/4":"012"}}`))

	snap := m.Snapshot()
	assert.Equal(t, 95, snap.Tempo)
	assert.Equal(t, "3/4", snap.Active)
	assert.Equal(t, []rhythm.Accent{rhythm.Off, rhythm.Low, rhythm.High}, snap.Accents["3/4"])
}

func TestLoadSkipsBadFields(t *testing.T) {
	t.Parallel()

	defaults := newTestMetronome(t).Snapshot()

	testCases := []struct {
		name   string
		blob   string
		tempo  int
		active string
		check  func(t *testing.T, snap rhythm.Snapshot)
	}{
		{
			name:   "tempo not a number",
			blob:   "bpm: abc\nbar: 6/8\n",
			tempo:  120,
			active: "6/8",
		},
		{
			name:   "unknown signature",
			blob:   "bpm: \"100\"\nbar: 7/8\n",
			tempo:  100,
			active: "4/4",
		},
		{
			name:   "length mismatch",
			blob:   "ticks:\n  4/4: \"2\"\n  3/4: \"222\"\n",
			tempo:  120,
			active: "4/4",
			check: func(t *testing.T, snap rhythm.Snapshot) {
				assert.Equal(t, defaults.Accents["4/4"], snap.Accents["4/4"])
				assert.Equal(t, []rhythm.Accent{rhythm.High, rhythm.High, rhythm.High}, snap.Accents["3/4"])
			},
		},
		{
			name:   "bad accent digit",
			blob:   "ticks:\n  6/8: \"200109\"\n",
			tempo:  120,
			active: "4/4",
			check: func(t *testing.T, snap rhythm.Snapshot) {
				assert.Equal(t, defaults.Accents["6/8"], snap.Accents["6/8"])
			},
		},
		{
			name:   "ticks of wrong shape",
			blob:   "bpm: \"90\"\nticks: [1, 2]\n",
			tempo:  90,
			active: "4/4",
		},
		{
			name:   "tick of wrong shape",
			blob:   "ticks:\n  3/4: [0, 1, 2]\n  6/8: \"000000\"\n",
			tempo:  120,
			active: "4/4",
			check: func(t *testing.T, snap rhythm.Snapshot) {
				assert.Equal(t, defaults.Accents["3/4"], snap.Accents["3/4"])
				assert.Equal(t, make([]rhythm.Accent, 6), snap.Accents["6/8"])
			},
		},
		{
			name:   "unknown signature in ticks",
			blob:   "bpm: \"80\"\nticks:\n  7/8: \"2000000\"\n",
			tempo:  80,
			active: "4/4",
		},
		{
			name:   "not yaml",
			blob:   "{{{ bpm",
			tempo:  120,
			active: "4/4",
		},
		{
			name:   "not a mapping",
			blob:   "- bpm\n- bar\n",
			tempo:  120,
			active: "4/4",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMetronome(t)
			err := Load(m, testCase.blob)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedState))

			var malformed *MalformedStateError
			require.True(t, errors.As(err, &malformed))
			assert.NotEmpty(t, malformed.Problems)

			snap := m.Snapshot()
			assert.Equal(t, testCase.tempo, snap.Tempo)
			assert.Equal(t, testCase.active, snap.Active)
			if testCase.check != nil {
				testCase.check(t, snap)
			}
		})
	}
}

func TestLoadLegacy(t *testing.T) {
	t.Parallel()

	m := newTestMetronome(t)
	blob := "METRO=bpm096sel2bar1tick0tick1tick2bar2tick2tick0tick0tick1tick0tick0"
	require.NoError(t, Load(m, blob))

	snap := m.Snapshot()
	assert.Equal(t, 96, snap.Tempo)
	assert.Equal(t, "6/8", snap.Active)
	assert.Equal(t, []rhythm.Accent{rhythm.Off, rhythm.Low, rhythm.High}, snap.Accents["3/4"])
	assert.Equal(t, []rhythm.Accent{rhythm.High, rhythm.Off, rhythm.Off, rhythm.Low, rhythm.Off, rhythm.Off}, snap.Accents["6/8"])
}

func TestLoadLegacyMismatch(t *testing.T) {
	t.Parallel()

	m := newTestMetronome(t)
	before := m.Snapshot()

	err := Load(m, "bpm100sel9bar0tick2bar1tick2tick2tick21")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedState))

	snap := m.Snapshot()
	assert.Equal(t, 100, snap.Tempo)
	assert.Equal(t, "4/4", snap.Active)
	assert.Equal(t, before.Accents, snap.Accents)
}
