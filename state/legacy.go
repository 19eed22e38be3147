package state

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/robmorgan/metro/rhythm"
)

// The legacy blob is one line of key+number tokens, optionally in cookie form:
//
//	METRO=bpm120sel0bar0tick2tick0tick1tick0bar1tick2tick1tick1
//
// sel and bar refer to signatures by registration index. Each bar token starts a run of tick tokens.
const legacyCookie = "METRO="

var (
	legacyBlob  = regexp.MustCompile(`^([a-z]+[0-9]+)+$`)
	legacyToken = regexp.MustCompile(`([a-z]+)([0-9]+)`)
)

func isLegacy(blob string) bool {
	return legacyBlob.MatchString(strings.TrimPrefix(blob, legacyCookie))
}

func decodeLegacy(blob string, registry *rhythm.Registry, problems *MalformedStateError) Record {
	rec := Record{Ticks: make(map[string]string)}
	sigs := registry.List()

	signatureAt := func(token, number string) (string, bool) {
		i, err := strconv.Atoi(number)
		if err != nil || i < 0 || i >= len(sigs) {
			problems.add("legacy %s%s: no such signature", token, number)
			return "", false
		}
		return sigs[i].ID, true
	}

	current := ""
	var run strings.Builder
	flush := func() {
		if current != "" {
			rec.Ticks[current] = run.String()
		}
		current = ""
		run.Reset()
	}

	for _, m := range legacyToken.FindAllStringSubmatch(strings.TrimPrefix(blob, legacyCookie), -1) {
		key, number := m[1], m[2]
		switch key {
		case "bpm":
			rec.BPM = number
		case "sel":
			if id, ok := signatureAt(key, number); ok {
				rec.Bar = id
			}
		case "bar":
			flush()
			if id, ok := signatureAt(key, number); ok {
				current = id
			}
		case "tick":
			if current == "" {
				continue
			}
			if len(number) != 1 {
				problems.add("legacy tick%s: not a single digit", number)
				number = "x"
			}
			run.WriteString(number)
		default:
			problems.add("legacy token %q", key)
		}
	}
	flush()

	return rec
}
