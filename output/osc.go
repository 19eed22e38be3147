package output

import (
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/metro/rhythm"
)

// Sender sends one OSC packet. *osc.Client implements it.
type Sender interface {
	Send(packet osc.Packet) error
}

// OSCSink sends "<prefix>/pulse signature index accent" for every pulse and "<prefix>/bpm tempo" whenever the
// tempo differs from the last one sent.
type OSCSink struct {
	client  Sender
	prefix  string
	lastBPM int
}

// NewOSCSink creates an OSCSink sending UDP messages to host:port.
func NewOSCSink(host string, port int, prefix string) *OSCSink {
	return NewOSCSinkWithSender(osc.NewClient(host, port), prefix)
}

// NewOSCSinkWithSender creates an OSCSink on top of an existing sender.
func NewOSCSinkWithSender(client Sender, prefix string) *OSCSink {
	return &OSCSink{client: client, prefix: prefix}
}

func (s *OSCSink) Name() string {
	return "osc"
}

// Pulse is only called from one Fanout worker, so lastBPM needs no lock.
func (s *OSCSink) Pulse(p rhythm.Pulse) error {
	if p.Tempo != s.lastBPM {
		if err := s.client.Send(osc.NewMessage(s.prefix+"/bpm", int32(p.Tempo))); err != nil {
			return errors.WithStackTrace(err)
		}
		s.lastBPM = p.Tempo
	}

	msg := osc.NewMessage(s.prefix+"/pulse", p.Signature, int32(p.Index), int32(p.Accent))
	if err := s.client.Send(msg); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}
