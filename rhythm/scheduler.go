package rhythm

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Scheduler calls fire once per period until stopped.
//
// The scheduler keeps no lock of its own. The owner hands over the lock guarding its state and must hold it
// while calling Start, Stop and Restart; every firing takes the same lock. Each arming gets a generation number
// and a firing from an older generation is dropped, so a tick that raced a Restart can never land after the new
// period has been armed. Ticks that arrive while a firing is still running are coalesced by the ticker channel
// rather than queued.
type Scheduler struct {
	clock clock.WithTicker
	lock  sync.Locker
	fire  func()

	running bool
	period  time.Duration
	gen     uint64
	ticker  clock.Ticker
	done    chan struct{}
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(clk clock.WithTicker, lock sync.Locker, fire func()) *Scheduler {
	return &Scheduler{
		clock: clk,
		lock:  lock,
		fire:  fire,
	}
}

// Running reports whether the scheduler is armed.
func (s *Scheduler) Running() bool {
	return s.running
}

// Period returns the period of the current arming.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Start arms the scheduler. It is a no-op when already running or when period is not positive.
func (s *Scheduler) Start(period time.Duration) bool {
	if s.running || period <= 0 {
		return false
	}
	s.arm(period)
	return true
}

// Stop cancels the periodic firing. It is a no-op when already stopped.
func (s *Scheduler) Stop() bool {
	if !s.running {
		return false
	}
	s.disarm()
	return true
}

// Restart re-arms a running scheduler with a new period. The first firing of the new period happens one full
// period after the restart.
func (s *Scheduler) Restart(period time.Duration) bool {
	if !s.running || period <= 0 {
		return false
	}
	s.disarm()
	s.arm(period)
	return true
}

func (s *Scheduler) arm(period time.Duration) {
	s.gen++
	s.running = true
	s.period = period
	s.ticker = s.clock.NewTicker(period)
	s.done = make(chan struct{})
	go s.loop(s.gen, s.ticker, s.done)
}

func (s *Scheduler) disarm() {
	s.running = false
	s.ticker.Stop()
	close(s.done)
	s.ticker = nil
	s.done = nil
}

func (s *Scheduler) loop(gen uint64, ticker clock.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			s.lock.Lock()
			if s.running && s.gen == gen {
				s.fire()
			}
			s.lock.Unlock()
		}
	}
}
