package session

import (
	"io"
	"net"
	"testing"

	"github.com/grovetools/ristate/pkg/wayland"
	"github.com/stretchr/testify/require"
)

type global struct {
	name    uint32
	iface   string
	version uint32
	// label is the geometry make of an output or the name of a seat.
	label string
}

type request struct {
	sender wayland.ObjectID
	opcode uint16
}

// fakeCompositor is a scripted Transport. Every request is answered by
// queueing the batch a compositor would send back.
type fakeCompositor struct {
	t       *testing.T
	globals []global

	registry      wayland.ObjectID
	manager       wayland.ObjectID
	bound         map[wayland.ObjectID]global
	boundVersion  map[wayland.ObjectID]uint32
	subscriptions map[wayland.ObjectID]wayland.ObjectID
	destroyed     []request

	batches [][]wayland.Message
	closed  bool
}

func newFakeCompositor(t *testing.T, globals ...global) *fakeCompositor {
	return &fakeCompositor{
		t:             t,
		globals:       globals,
		bound:         make(map[wayland.ObjectID]global),
		boundVersion:  make(map[wayland.ObjectID]uint32),
		subscriptions: make(map[wayland.ObjectID]wayland.ObjectID),
	}
}

func event(sender wayland.ObjectID, opcode uint16, w *wayland.ArgWriter) wayland.Message {
	m := wayland.Message{Sender: sender, Opcode: opcode}
	if w != nil {
		m.Args = w.Bytes()
	}
	return m
}

func args() *wayland.ArgWriter { return new(wayland.ArgWriter) }

func (f *fakeCompositor) push(msgs ...wayland.Message) {
	f.batches = append(f.batches, msgs)
}

func (f *fakeCompositor) globalEvent(g global) wayland.Message {
	return event(f.registry, wayland.RegistryEventGlobal, args().Uint(g.name).String(g.iface).Uint(g.version))
}

func (f *fakeCompositor) Send(m wayland.Message) error {
	r := wayland.NewArgReader(m.Args)
	switch {
	case m.Sender == wayland.DisplayID && m.Opcode == wayland.DisplayGetRegistry:
		id, err := r.ReadObject()
		require.NoError(f.t, err)
		f.registry = id
		var batch []wayland.Message
		for _, g := range f.globals {
			batch = append(batch, f.globalEvent(g))
		}
		f.push(batch...)

	case m.Sender == wayland.DisplayID && m.Opcode == wayland.DisplaySync:
		cb, err := r.ReadObject()
		require.NoError(f.t, err)
		f.push(
			event(cb, wayland.CallbackEventDone, args().Uint(1)),
			event(wayland.DisplayID, wayland.DisplayEventDeleteID, args().Uint(uint32(cb))),
		)

	case m.Sender == f.registry && m.Opcode == wayland.RegistryBind:
		name, err := r.ReadUint()
		require.NoError(f.t, err)
		iface, err := r.ReadString()
		require.NoError(f.t, err)
		version, err := r.ReadUint()
		require.NoError(f.t, err)
		id, err := r.ReadObject()
		require.NoError(f.t, err)

		var g global
		for _, candidate := range f.globals {
			if candidate.name == name {
				g = candidate
			}
		}
		require.Equal(f.t, g.iface, iface)
		f.bound[id] = g
		f.boundVersion[id] = version

		switch iface {
		case wayland.InterfaceOutput:
			f.push(
				event(id, wayland.OutputEventGeometry,
					args().Int(0).Int(0).Int(600).Int(340).Int(0).String(g.label).String("model").Int(0)),
				event(id, wayland.OutputEventDone, nil),
			)
		case wayland.InterfaceSeat:
			f.push(
				event(id, wayland.SeatEventCapabilities, args().Uint(3)),
				event(id, wayland.SeatEventName, args().String(g.label)),
			)
		case wayland.InterfaceRiverStatusManager:
			f.manager = id
		}

	case m.Sender == f.manager && f.manager != 0 &&
		(m.Opcode == wayland.RiverStatusManagerGetOutputStatus || m.Opcode == wayland.RiverStatusManagerGetSeatStatus):
		id, err := r.ReadObject()
		require.NoError(f.t, err)
		target, err := r.ReadObject()
		require.NoError(f.t, err)
		f.subscriptions[id] = target

	default:
		f.destroyed = append(f.destroyed, request{sender: m.Sender, opcode: m.Opcode})
	}
	return nil
}

func (f *fakeCompositor) ReadBatch() ([]wayland.Message, error) {
	if f.closed {
		return nil, net.ErrClosed
	}
	if len(f.batches) == 0 {
		return nil, io.EOF
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeCompositor) Close() error {
	f.closed = true
	return nil
}

// boundID returns the object id the client bound the named global to.
func (f *fakeCompositor) boundID(name uint32) wayland.ObjectID {
	for id, g := range f.bound {
		if g.name == name {
			return id
		}
	}
	f.t.Fatalf("global %d was not bound", name)
	return 0
}

// statusFor returns the status object subscribed for target.
func (f *fakeCompositor) statusFor(target wayland.ObjectID) wayland.ObjectID {
	for id, tgt := range f.subscriptions {
		if tgt == target {
			return id
		}
	}
	f.t.Fatalf("object %d was not subscribed", target)
	return 0
}
