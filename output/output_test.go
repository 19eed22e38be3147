package output

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"
	"github.com/robmorgan/metro/config"
	"github.com/robmorgan/metro/rhythm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSink struct {
	name   string
	pulses chan rhythm.Pulse
	err    error
}

func (s *chanSink) Name() string { return s.name }

func (s *chanSink) Pulse(p rhythm.Pulse) error {
	s.pulses <- p
	return s.err
}

func TestFanoutDeliversToEverySink(t *testing.T) {
	t.Parallel()

	a := &chanSink{name: "a", pulses: make(chan rhythm.Pulse, 4)}
	b := &chanSink{name: "b", pulses: make(chan rhythm.Pulse, 4), err: errors.New("unplugged")}
	f := NewFanout(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	f.Run(ctx, wg)

	f.Publish(rhythm.Pulse{Signature: "4/4", Index: 3, Accent: rhythm.Low})

	for _, s := range []*chanSink{a, b} {
		select {
		case p := <-s.pulses:
			assert.Equal(t, 3, p.Index, s.name)
		case <-time.After(time.Second):
			t.Fatalf("sink %s got no pulse", s.name)
		}
	}

	cancel()
	wg.Wait()
}

func TestFanoutDropsWhenBusy(t *testing.T) {
	t.Parallel()

	// not running, so the one slot fills up
	f := NewFanout(&chanSink{name: "stuck"})
	f.Publish(rhythm.Pulse{Index: 0})
	f.Publish(rhythm.Pulse{Index: 1})
	f.Publish(rhythm.Pulse{Index: 2})

	assert.Equal(t, int64(2), f.Dropped())
	assert.Equal(t, 0, (<-f.queues[0]).Index)
}

type recordingSender struct {
	messages []*osc.Message
	err      error
}

func (r *recordingSender) Send(packet osc.Packet) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, packet.(*osc.Message))
	return nil
}

func TestOSCSink(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	s := NewOSCSinkWithSender(sender, "/metro")
	require.Equal(t, "osc", s.Name())

	require.NoError(t, s.Pulse(rhythm.Pulse{Signature: "6/8", Index: 0, Accent: rhythm.High, Tempo: 90}))
	require.NoError(t, s.Pulse(rhythm.Pulse{Signature: "6/8", Index: 1, Accent: rhythm.Off, Tempo: 90}))

	require.Len(t, sender.messages, 3)
	assert.Equal(t, "/metro/bpm", sender.messages[0].Address)
	assert.Equal(t, []interface{}{int32(90)}, sender.messages[0].Arguments)
	assert.Equal(t, "/metro/pulse", sender.messages[1].Address)
	assert.Equal(t, []interface{}{"6/8", int32(0), int32(2)}, sender.messages[1].Arguments)
	assert.Equal(t, []interface{}{"6/8", int32(1), int32(0)}, sender.messages[2].Arguments)
}

func TestOSCSinkSendError(t *testing.T) {
	t.Parallel()

	s := NewOSCSinkWithSender(&recordingSender{err: errors.New("no route")}, "/metro")
	require.Error(t, s.Pulse(rhythm.Pulse{Tempo: 120}))
}

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func peak(samples [][2]float64) float64 {
	max := 0.0
	for _, s := range samples {
		max = math.Max(max, math.Abs(s[0]))
	}
	return max
}

func TestClickSink(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewMetroConfig()
	require.NoError(t, err)

	var played []beep.Streamer
	c := newClickSink(cfg.Audio, func(s ...beep.Streamer) { played = append(played, s...) })
	require.Equal(t, "audio", c.Name())

	high := drain(c.Click(rhythm.High))
	low := drain(c.Click(rhythm.Low))
	require.Len(t, high, 1323)
	require.Len(t, low, 1323)
	assert.Greater(t, peak(high), peak(low))
	assert.LessOrEqual(t, peak(high), 1.0)
	assert.Nil(t, c.Click(rhythm.Off))

	require.NoError(t, c.Pulse(rhythm.Pulse{Accent: rhythm.Off}))
	require.NoError(t, c.Pulse(rhythm.Pulse{Accent: rhythm.Low}))
	assert.Len(t, played, 1)
}
