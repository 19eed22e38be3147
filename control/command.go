package control

import (
	"fmt"
	"time"
)

// Kind identifies a command.
type Kind int

const (
	KindTap Kind = iota
	KindDigit
	KindCommitEntry
	KindCancelEntry
	KindAdjustBPM
	KindSetBPM
	KindSelectSignature
	KindStepSignature
	KindCycleAccent
	KindStartStop
	KindStart
	KindStop
)

var kindNames = map[Kind]string{
	KindTap:             "tap",
	KindDigit:           "digit",
	KindCommitEntry:     "commit",
	KindCancelEntry:     "cancel",
	KindAdjustBPM:       "adjust",
	KindSetBPM:          "set_bpm",
	KindSelectSignature: "select",
	KindStepSignature:   "step",
	KindCycleAccent:     "cycle_accent",
	KindStartStop:       "start_stop",
	KindStart:           "start",
	KindStop:            "stop",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one user action. Value carries the digit, the BPM or the delta; Signature and Index address a
// signature and one of its subdivisions. At is when a tap happened.
type Command struct {
	Kind      Kind
	Value     int
	Signature string
	Index     int
	At        time.Time
}

func (c Command) String() string {
	switch c.Kind {
	case KindDigit, KindAdjustBPM, KindSetBPM, KindStepSignature:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Value)
	case KindSelectSignature:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Signature)
	case KindCycleAccent:
		return fmt.Sprintf("%s(%s,%d)", c.Kind, c.Signature, c.Index)
	default:
		return c.Kind.String()
	}
}

// Tap records a tap made at ts. A zero ts is stamped when the command is handled.
func Tap(ts time.Time) Command { return Command{Kind: KindTap, At: ts} }

func Digit(d int) Command { return Command{Kind: KindDigit, Value: d} }

func CommitEntry() Command { return Command{Kind: KindCommitEntry} }

// CancelEntry also serves as "show": it leaves entry and shows the committed tempo.
func CancelEntry() Command { return Command{Kind: KindCancelEntry} }

func AdjustBPM(delta int) Command { return Command{Kind: KindAdjustBPM, Value: delta} }

func SetBPM(bpm int) Command { return Command{Kind: KindSetBPM, Value: bpm} }

func SelectSignature(id string) Command { return Command{Kind: KindSelectSignature, Signature: id} }

func NextSignature() Command { return Command{Kind: KindStepSignature, Value: 1} }

func PrevSignature() Command { return Command{Kind: KindStepSignature, Value: -1} }

func CycleAccent(id string, index int) Command {
	return Command{Kind: KindCycleAccent, Signature: id, Index: index}
}

func StartStop() Command { return Command{Kind: KindStartStop} }

func Start() Command { return Command{Kind: KindStart} }

func Stop() Command { return Command{Kind: KindStop} }
