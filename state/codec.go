package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/robmorgan/metro/engine/scale"
	"github.com/robmorgan/metro/logger"
	"github.com/robmorgan/metro/rhythm"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// RecordVersion is written into every record.
const RecordVersion = 1

// Record is the persisted form of a session.
type Record struct {
	Version int               `yaml:"version"`
	BPM     string            `yaml:"bpm"`
	Bar     string            `yaml:"bar"`
	Ticks   map[string]string `yaml:"ticks"`
}

// Encode builds the record for snap. Every registered signature gets a ticks entry.
func Encode(snap rhythm.Snapshot) Record {
	rec := Record{
		Version: RecordVersion,
		BPM:     fmt.Sprintf("%03d", snap.Tempo),
		Bar:     snap.Active,
		Ticks:   make(map[string]string, len(snap.Signatures)),
	}
	for _, sig := range snap.Signatures {
		rec.Ticks[sig.ID] = encodeAccents(snap.Accents[sig.ID])
	}
	return rec
}

// Marshal serializes snap.
func Marshal(snap rhythm.Snapshot) (string, error) {
	out, err := yaml.Marshal(Encode(snap))
	if err != nil {
		return "", errors.Wrap(err, "marshal state")
	}
	return string(out), nil
}

// Save serializes the current session of m.
func Save(m *rhythm.Metronome) (string, error) {
	return Marshal(m.Snapshot())
}

// Load applies blob to m: the tempo first, then the active signature, then the accent patterns. Whatever cannot
// be parsed or does not fit a registered signature is skipped and reported in a *MalformedStateError; the rest is
// applied regardless. An empty blob leaves m untouched.
func Load(m *rhythm.Metronome, blob string) error {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return nil
	}

	problems := &MalformedStateError{}
	var rec Record
	if isLegacy(blob) {
		rec = decodeLegacy(blob, m.Registry(), problems)
	} else {
		rec = decodeRecord(blob, problems)
	}
	apply(m, rec, problems)

	err := problems.orNil()
	if err != nil {
		logger.GetProjectLogger().WithFields(logrus.Fields{"problems": len(problems.Problems)}).Warn(err)
	}
	return err
}

// decodeRecord reads the structured record field by field so one bad field does not discard the others.
func decodeRecord(blob string, problems *MalformedStateError) Record {
	rec := Record{}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(blob), &doc); err != nil {
		problems.add("parse record: %v", err)
		return rec
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		problems.add("record is not a mapping")
		return rec
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "version":
			if err := value.Decode(&rec.Version); err != nil {
				problems.add("version: %v", err)
			} else if rec.Version > RecordVersion {
				problems.add("version %d is newer than %d", rec.Version, RecordVersion)
			}
		case "bpm":
			if err := decodeScalar(value, &rec.BPM); err != nil {
				problems.add("bpm: %v", err)
			}
		case "bar":
			if err := decodeScalar(value, &rec.Bar); err != nil {
				problems.add("bar: %v", err)
			}
		case "ticks":
			rec.Ticks = decodeTicks(value, problems)
		default:
			problems.add("unknown field %q", key)
		}
	}
	return rec
}

func decodeTicks(node *yaml.Node, problems *MalformedStateError) map[string]string {
	ticks := make(map[string]string)
	if node.Kind != yaml.MappingNode {
		problems.add("ticks is not a mapping")
		return ticks
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		var pattern string
		if err := decodeScalar(node.Content[i+1], &pattern); err != nil {
			problems.add("ticks %s: %v", id, err)
			continue
		}
		ticks[id] = pattern
	}
	return ticks
}

func decodeScalar(node *yaml.Node, out *string) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New("expected a scalar")
	}
	*out = node.Value
	return nil
}

func apply(m *rhythm.Metronome, rec Record, problems *MalformedStateError) {
	if rec.BPM != "" {
		bpm, err := parseTempo(rec.BPM)
		if err != nil {
			problems.add("bpm %q is not a number", rec.BPM)
		} else {
			m.SetTempo(bpm)
		}
	}

	if rec.Bar != "" {
		if err := m.SelectSignature(rec.Bar); err != nil {
			problems.add("bar: %v", err)
		}
	}

	ids := maps.Keys(rec.Ticks)
	slices.Sort(ids)
	for _, id := range ids {
		sig, found := m.Registry().Get(id)
		if !found {
			problems.add("ticks %s: unknown signature", id)
			continue
		}
		pattern := rec.Ticks[id]
		if len(pattern) != sig.Total() {
			problems.add("ticks %s: %d subdivisions, want %d", id, len(pattern), sig.Total())
			continue
		}
		accents, err := decodeAccents(pattern)
		if err != nil {
			problems.add("ticks %s: %v", id, err)
			continue
		}
		if err := m.SetAccents(id, accents); err != nil {
			problems.add("ticks %s: %v", id, err)
		}
	}
}

// parseTempo reads a decimal tempo. Values too large for an int saturate so they still clamp.
func parseTempo(s string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return int(scale.Clamp(v, rhythm.MinTempo, rhythm.MaxTempo)), nil
}

func encodeAccents(accents []rhythm.Accent) string {
	out := make([]byte, len(accents))
	for i, a := range accents {
		out[i] = a.Digit()
	}
	return string(out)
}

func decodeAccents(pattern string) ([]rhythm.Accent, error) {
	accents := make([]rhythm.Accent, len(pattern))
	for i := 0; i < len(pattern); i++ {
		a, ok := rhythm.AccentFromDigit(pattern[i])
		if !ok {
			return nil, errors.Errorf("bad accent %q at %d", pattern[i], i)
		}
		accents[i] = a
	}
	return accents, nil
}
