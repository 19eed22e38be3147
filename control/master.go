package control

import (
	"context"
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/metro/logger"
	"github.com/robmorgan/metro/rhythm"
	"github.com/robmorgan/metro/state"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// queueDepth bounds how many commands can wait for the processing loop.
const queueDepth = 16

type handler func(c *Master, cmd Command) error

var handlers = map[Kind]handler{
	KindTap: func(c *Master, cmd Command) error {
		ts := cmd.At
		if ts.IsZero() {
			ts = c.clock.Now()
		}
		c.metronome.Tap(ts)
		return nil
	},
	KindDigit: func(c *Master, cmd Command) error {
		return c.metronome.PushDigit(cmd.Value)
	},
	KindCommitEntry: func(c *Master, _ Command) error {
		c.metronome.CommitEntry()
		return nil
	},
	KindCancelEntry: func(c *Master, _ Command) error {
		c.metronome.CancelEntry()
		return nil
	},
	KindAdjustBPM: func(c *Master, cmd Command) error {
		c.metronome.AdjustTempo(cmd.Value)
		return nil
	},
	KindSetBPM: func(c *Master, cmd Command) error {
		c.metronome.SetTempo(cmd.Value)
		return nil
	},
	KindSelectSignature: func(c *Master, cmd Command) error {
		return c.metronome.SelectSignature(cmd.Signature)
	},
	KindStepSignature: func(c *Master, cmd Command) error {
		c.metronome.StepSignature(cmd.Value)
		return nil
	},
	KindCycleAccent: func(c *Master, cmd Command) error {
		_, err := c.metronome.CycleAccent(cmd.Signature, cmd.Index)
		return err
	},
	KindStartStop: func(c *Master, _ Command) error {
		c.metronome.StartStop()
		return nil
	},
	KindStart: func(c *Master, _ Command) error {
		c.metronome.Start()
		return nil
	},
	KindStop: func(c *Master, _ Command) error {
		c.metronome.Stop()
		return nil
	},
}

// Master runs commands against the metronome one at a time and saves the session after each of them.
type Master struct {
	metronome *rhythm.Metronome
	store     state.Store
	clock     clock.Clock
	commands  chan Command

	lock     sync.Mutex
	onChange func(rhythm.Snapshot)
}

// NewMaster creates a Master. Taps without a timestamp are stamped from clk.
func NewMaster(clk clock.Clock, m *rhythm.Metronome, store state.Store) *Master {
	return &Master{
		metronome: m,
		store:     store,
		clock:     clk,
		commands:  make(chan Command, queueDepth),
	}
}

// Metronome returns the metronome the master drives.
func (c *Master) Metronome() *rhythm.Metronome {
	return c.metronome
}

// OnChange registers a listener that receives the session after every handled command.
func (c *Master) OnChange(f func(rhythm.Snapshot)) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.onChange = f
}

// EnQueue hands cmd to the processing loop. It blocks while the queue is full.
func (c *Master) EnQueue(cmd Command) {
	c.commands <- cmd
}

// ProcessForever handles queued commands until ctx is done.
func (c *Master) ProcessForever(ctx context.Context, wg *sync.WaitGroup) {
	log := logger.GetProjectLogger()
	log.Info("Processing commands...")

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				log.Info("ProcessForever shutdown")
				return
			case cmd := <-c.commands:
				if err := c.Handle(cmd); err != nil {
					log.WithFields(logrus.Fields{"command": cmd.String()}).Warnf("command failed: %v", err)
				}
			}
		}
	}()
}

// Handle runs cmd and saves the session. A rejected command leaves the session untouched and is not saved.
func (c *Master) Handle(cmd Command) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	h, found := handlers[cmd.Kind]
	if !found {
		return errors.WithStackTrace(UnknownCommandError{Kind: cmd.Kind})
	}
	if err := h(c, cmd); err != nil {
		return err
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"command": cmd.String(),
		"bpm":     c.metronome.GetTempo(),
	}).Debug("command handled")

	snap := c.metronome.Snapshot()
	if err := c.persist(snap); err != nil {
		return err
	}
	if c.onChange != nil {
		c.onChange(snap)
	}
	return nil
}

func (c *Master) persist(snap rhythm.Snapshot) error {
	blob, err := state.Marshal(snap)
	if err != nil {
		return err
	}
	if err := c.store.Save(blob); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

// UnknownCommandError is returned for a command kind with no handler.
type UnknownCommandError struct {
	Kind Kind
}

func (err UnknownCommandError) Error() string {
	return "unknown command " + err.Kind.String()
}
