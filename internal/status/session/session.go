// Package session speaks the Wayland side of ristate: it binds the globals
// river status needs, subscribes to status objects and turns incoming
// messages into dispatcher events.
package session

import (
	"sort"

	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/internal/status/dispatch"
	"github.com/grovetools/ristate/pkg/wayland"
	"github.com/sirupsen/logrus"
)

// Transport is the message stream to the compositor. *wayland.Conn
// implements it.
type Transport interface {
	Send(wayland.Message) error
	ReadBatch() ([]wayland.Message, error)
	Close() error
}

// Options selects which status objects are subscribed.
type Options struct {
	SubscribeOutputs bool
	SubscribeSeats   bool
}

// Session tracks every object the client created on one connection.
type Session struct {
	conn   Transport
	opts   Options
	logger *logrus.Entry

	ids      wayland.IDAllocator
	registry wayland.ObjectID
	manager  wayland.ObjectID
	objects  map[wayland.ObjectID]*proxy
	globals  map[uint32]wayland.ObjectID

	ready   bool
	pending []dispatch.Event
}

// New creates a Session over conn. Nothing is sent until Bootstrap.
func New(conn Transport, opts Options, logger *logrus.Entry) *Session {
	return &Session{
		conn:   conn,
		opts:   opts,
		logger: logger,
		objects: map[wayland.ObjectID]*proxy{
			wayland.DisplayID: {iface: wayland.InterfaceDisplay, version: 1},
		},
		globals: make(map[uint32]wayland.ObjectID),
	}
}

// Bootstrap binds the registry globals and waits for two round trips: the
// first delivers the globals, the second their initial events. Afterwards
// every output and seat is subscribed as configured. Events seen during
// bootstrap are returned by the first NextBatch.
func (s *Session) Bootstrap() error {
	s.registry = s.ids.Next()
	s.objects[s.registry] = &proxy{iface: wayland.InterfaceRegistry, version: 1}
	if err := s.send(wayland.GetRegistry(s.registry)); err != nil {
		return err
	}

	for round := 1; round <= 2; round++ {
		if err := s.roundtrip(); err != nil {
			return err
		}
		s.logger.WithField("round", round).Debug("Round trip complete")
	}

	s.ready = true
	if err := s.subscribeAll(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"outputs":        s.count(wayland.InterfaceOutput),
		"seats":          s.count(wayland.InterfaceSeat),
		"status_manager": s.manager != 0,
	}).Info("Session ready")
	return nil
}

// NextBatch blocks until the compositor sends something and returns the
// events it translates to. A batch may be empty when it only held
// registry or bookkeeping messages.
func (s *Session) NextBatch() ([]dispatch.Event, error) {
	if s.pending != nil {
		events := s.pending
		s.pending = nil
		return events, nil
	}

	msgs, err := s.conn.ReadBatch()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConnectFailed, "lost connection to compositor")
	}

	events := make([]dispatch.Event, 0, len(msgs))
	for _, m := range msgs {
		ev, err := s.handle(m)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

// Close closes the connection. It unblocks a pending NextBatch.
func (s *Session) Close() error {
	return s.conn.Close()
}

// roundtrip sends wl_display.sync and handles messages until its callback
// fires.
func (s *Session) roundtrip() error {
	cb := s.ids.Next()
	p := &proxy{iface: wayland.InterfaceCallback, version: 1}
	s.objects[cb] = p
	if err := s.send(wayland.Sync(cb)); err != nil {
		return err
	}

	for !p.done {
		msgs, err := s.conn.ReadBatch()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConnectFailed, "connection closed during bootstrap")
		}
		for _, m := range msgs {
			ev, err := s.handle(m)
			if err != nil {
				return err
			}
			if ev != nil {
				s.pending = append(s.pending, ev)
			}
		}
	}
	return nil
}

func (s *Session) send(m wayland.Message) error {
	if err := s.conn.Send(m); err != nil {
		return errors.Wrap(err, errors.ErrCodeConnectFailed, "failed to send request").
			WithDetail("object", uint32(m.Sender)).
			WithDetail("opcode", m.Opcode)
	}
	return nil
}

func (s *Session) bind(name uint32, iface string, version uint32) error {
	want := maxVersion(iface)
	if want == 0 {
		return nil
	}
	if version < want {
		want = version
	}

	id := s.ids.Next()
	if err := s.send(wayland.Bind(s.registry, name, iface, want, id)); err != nil {
		return err
	}
	s.objects[id] = &proxy{iface: iface, version: want, global: name}
	s.globals[name] = id

	s.logger.WithFields(logrus.Fields{
		"interface": iface,
		"version":   want,
		"object":    id,
	}).Debug("Bound global")

	if iface == wayland.InterfaceRiverStatusManager {
		s.manager = id
		return nil
	}
	if s.ready {
		return s.subscribe(id)
	}
	return nil
}

func (s *Session) subscribeAll() error {
	ids := make([]wayland.ObjectID, 0, len(s.objects))
	for id := range s.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := s.subscribe(id); err != nil {
			return err
		}
	}

	if s.manager == 0 && (s.opts.SubscribeOutputs || s.opts.SubscribeSeats) {
		return errors.CapabilityMissing(wayland.InterfaceRiverStatusManager)
	}
	return nil
}

// subscribe creates the river status object for an output or seat when the
// options ask for it.
func (s *Session) subscribe(id wayland.ObjectID) error {
	p := s.objects[id]
	if p == nil || p.zombie || p.status != 0 {
		return nil
	}

	var (
		iface string
		msg   func(manager, status, target wayland.ObjectID) wayland.Message
	)
	switch {
	case p.iface == wayland.InterfaceOutput && s.opts.SubscribeOutputs:
		iface, msg = wayland.InterfaceRiverOutputStatus, wayland.GetRiverOutputStatus
	case p.iface == wayland.InterfaceSeat && s.opts.SubscribeSeats:
		iface, msg = wayland.InterfaceRiverSeatStatus, wayland.GetRiverSeatStatus
	default:
		return nil
	}

	if s.manager == 0 {
		return errors.CapabilityMissing(wayland.InterfaceRiverStatusManager)
	}

	status := s.ids.Next()
	if err := s.send(msg(s.manager, status, id)); err != nil {
		return err
	}
	s.objects[status] = &proxy{iface: iface, version: s.objects[s.manager].version, target: id}
	p.status = status

	s.logger.WithFields(logrus.Fields{"interface": iface, "target": id}).Debug("Subscribed")
	return nil
}

// release destroys an object and its status object. They stay known as
// zombies until the compositor acknowledges the destruction.
func (s *Session) release(id wayland.ObjectID) error {
	p := s.objects[id]
	if p == nil || p.zombie {
		return nil
	}
	if p.status != 0 {
		if err := s.release(p.status); err != nil {
			return err
		}
	}
	p.zombie = true
	if id == s.manager {
		s.manager = 0
	}
	if opcode, ok := releaseOpcode(p); ok {
		return s.send(wayland.Destroy(id, opcode))
	}
	return nil
}

func (s *Session) count(iface string) int {
	n := 0
	for _, p := range s.objects {
		if p.iface == iface && !p.zombie {
			n++
		}
	}
	return n
}
