package output

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/robmorgan/metro/logger"
	"github.com/robmorgan/metro/rhythm"
	"github.com/sirupsen/logrus"
)

// Sink renders pulses: a click, a light, a network message.
type Sink interface {
	Name() string
	Pulse(p rhythm.Pulse) error
}

// Fanout hands every pulse to each sink on its own goroutine. Each sink has a one pulse buffer; a pulse arriving
// while the buffer is full is dropped for that sink only.
type Fanout struct {
	sinks   []Sink
	queues  []chan rhythm.Pulse
	dropped atomic.Int64
}

// NewFanout creates a Fanout for sinks.
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{
		sinks:  sinks,
		queues: make([]chan rhythm.Pulse, len(sinks)),
	}
	for i := range sinks {
		f.queues[i] = make(chan rhythm.Pulse, 1)
	}
	return f
}

// Publish queues p for every sink without blocking. It matches rhythm.PulseFunc.
func (f *Fanout) Publish(p rhythm.Pulse) {
	for _, q := range f.queues {
		select {
		case q <- p:
		default:
			f.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped because a sink was still busy.
func (f *Fanout) Dropped() int64 {
	return f.dropped.Load()
}

// Run starts one worker per sink. Workers exit when ctx is done.
func (f *Fanout) Run(ctx context.Context, wg *sync.WaitGroup) {
	log := logger.GetProjectLogger()
	log.WithFields(logrus.Fields{"sinks": len(f.sinks)}).Info("Starting pulse outputs...")

	for i := range f.sinks {
		wg.Add(1)
		go f.deliver(ctx, f.sinks[i], f.queues[i], wg)
	}
}

func (f *Fanout) deliver(ctx context.Context, sink Sink, queue <-chan rhythm.Pulse, wg *sync.WaitGroup) {
	defer wg.Done()

	log := logger.GetProjectLogger()
	for {
		select {
		case <-ctx.Done():
			log.WithFields(logrus.Fields{"sink": sink.Name()}).Debug("output shutdown")
			return
		case p := <-queue:
			if err := sink.Pulse(p); err != nil {
				log.WithFields(logrus.Fields{"sink": sink.Name(), "index": p.Index}).Warnf("pulse not delivered: %v", err)
			}
		}
	}
}
