package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/metro/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// UniverseSize is the number of channels in one DMX512 universe.
const UniverseSize = 512

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

type dmxOperation struct {
	universe, channel, value int
}

func (s *DMXState) getValue(universe, channel int) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.universes[universe] == nil {
		return 0
	}
	return int(s.universes[universe][channel-1])
}

func (s *DMXState) set(ops ...dmxOperation) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, op := range ops {
		if op.channel < 1 || op.channel > UniverseSize {
			return fmt.Errorf("dmx channel (%d) not in range, op=%v", op.channel, op)
		}

		s.initializeUniverse(op.universe)
		s.universes[op.universe][op.channel-1] = byte(op.value)
	}

	return nil
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes == nil {
		s.universes = make(map[int][]byte)
	}
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, UniverseSize)
	}
}

// snapshot copies every universe so it can be sent without holding the lock.
func (s *DMXState) snapshot() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		values := make([]byte, len(v))
		copy(values, v)
		out[k] = values
	}
	return out
}

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// Frame renders the light state for one DMX frame.
type Frame interface {
	Update(now time.Time) error
}

// SendDMXWorker renders frame and sends OLA the current dmxState across all universes every tick until ctx is
// done.
func SendDMXWorker(ctx context.Context, clk clock.Clock, client OLAClient, tick time.Duration, frame Frame, manager *StateManager, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	log := logger.GetProjectLogger()

	t := clk.NewTimer(tick)
	defer t.Stop()
	log.WithFields(logrus.Fields{"tick": tick}).Info("SendDMXWorker started")

	for {
		select {
		case <-ctx.Done():
			log.Info("SendDMXWorker shutdown")
			return ctx.Err()
		case <-t.C():
			if err := frame.Update(clk.Now()); err != nil {
				log.Errorf("could not render dmx frame: %v", err)
			}
			for k, v := range manager.GetDMXState().snapshot() {
				if _, err := client.SendDmx(k, v); err != nil {
					log.WithFields(logrus.Fields{"universe": k}).Debugf("SendDmx: %v", err)
				}
			}
			t.Reset(tick)
		}
	}
}
