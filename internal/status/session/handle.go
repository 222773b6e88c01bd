package session

import (
	"fmt"

	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/internal/status/dispatch"
	"github.com/grovetools/ristate/pkg/wayland"
	"github.com/sirupsen/logrus"
)

// handle processes one incoming message. Display, registry and callback
// traffic is consumed here; output, seat and status events are returned for
// the dispatcher.
func (s *Session) handle(m wayland.Message) (dispatch.Event, error) {
	p, ok := s.objects[m.Sender]
	if !ok {
		return nil, errors.ProtocolViolation("unknown", uint32(m.Sender),
			fmt.Sprintf("opcode %d", m.Opcode))
	}

	name := wayland.EventName(p.iface, m.Opcode)
	if name == "" {
		return nil, errors.ProtocolViolation(p.iface, uint32(m.Sender),
			fmt.Sprintf("opcode %d", m.Opcode))
	}

	if p.zombie {
		s.logger.WithFields(logrus.Fields{
			"interface": p.iface,
			"object":    m.Sender,
			"event":     name,
		}).Debug("Dropping event for released object")
		return nil, nil
	}

	r := wayland.NewArgReader(m.Args)
	ev, err := s.decode(m.Sender, p, m.Opcode, r)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.ProtocolViolation(p.iface, uint32(m.Sender),
			fmt.Sprintf("%s: %v", name, err))
	}
	return ev, nil
}

func (s *Session) decode(id wayland.ObjectID, p *proxy, opcode uint16, r *wayland.ArgReader) (dispatch.Event, error) {
	switch p.iface {
	case wayland.InterfaceDisplay:
		return nil, s.displayEvent(opcode, r)
	case wayland.InterfaceRegistry:
		return nil, s.registryEvent(opcode, r)
	case wayland.InterfaceCallback:
		if _, err := r.ReadUint(); err != nil {
			return nil, err
		}
		p.done = true
		return nil, nil
	case wayland.InterfaceOutput:
		return outputEvent(id, opcode, r)
	case wayland.InterfaceSeat:
		return seatEvent(id, opcode, r)
	case wayland.InterfaceRiverOutputStatus:
		return outputStatusEvent(p.target, opcode, r)
	case wayland.InterfaceRiverSeatStatus:
		return seatStatusEvent(p.target, opcode, r)
	}
	return nil, fmt.Errorf("no events expected")
}

func (s *Session) displayEvent(opcode uint16, r *wayland.ArgReader) error {
	switch opcode {
	case wayland.DisplayEventError:
		object, err := r.ReadObject()
		if err != nil {
			return err
		}
		code, err := r.ReadUint()
		if err != nil {
			return err
		}
		message, err := r.ReadString()
		if err != nil {
			return err
		}
		return errors.CompositorReported(uint32(object), code, message)

	case wayland.DisplayEventDeleteID:
		id, err := r.ReadUint()
		if err != nil {
			return err
		}
		delete(s.objects, wayland.ObjectID(id))
	}
	return nil
}

func (s *Session) registryEvent(opcode uint16, r *wayland.ArgReader) error {
	switch opcode {
	case wayland.RegistryEventGlobal:
		name, err := r.ReadUint()
		if err != nil {
			return err
		}
		iface, err := r.ReadString()
		if err != nil {
			return err
		}
		version, err := r.ReadUint()
		if err != nil {
			return err
		}
		return s.bind(name, iface, version)

	case wayland.RegistryEventGlobalRemove:
		name, err := r.ReadUint()
		if err != nil {
			return err
		}
		id, ok := s.globals[name]
		if !ok {
			return nil
		}
		delete(s.globals, name)
		s.logger.WithFields(logrus.Fields{
			"interface": s.objects[id].iface,
			"object":    id,
		}).Info("Global removed")
		return s.release(id)
	}
	return nil
}

func outputEvent(id wayland.ObjectID, opcode uint16, r *wayland.ArgReader) (dispatch.Event, error) {
	if opcode != wayland.OutputEventGeometry {
		return nil, nil
	}
	// x, y, physical_width, physical_height, subpixel
	for i := 0; i < 5; i++ {
		if _, err := r.ReadInt(); err != nil {
			return nil, err
		}
	}
	manufacturer, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	model, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadInt(); err != nil {
		return nil, err
	}
	return dispatch.OutputGeometry{Output: id, Make: manufacturer, Model: model}, nil
}

func seatEvent(id wayland.ObjectID, opcode uint16, r *wayland.ArgReader) (dispatch.Event, error) {
	if opcode != wayland.SeatEventName {
		return nil, nil
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return dispatch.SeatName{Seat: id, Name: name}, nil
}

func outputStatusEvent(output wayland.ObjectID, opcode uint16, r *wayland.ArgReader) (dispatch.Event, error) {
	switch opcode {
	case wayland.RiverOutputStatusEventFocusedTags:
		mask, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		return dispatch.OutputFocusedTags{Output: output, Mask: mask}, nil
	case wayland.RiverOutputStatusEventViewTags:
		raw, err := r.ReadArray()
		if err != nil {
			return nil, err
		}
		return dispatch.OutputViewTags{Output: output, Raw: raw}, nil
	case wayland.RiverOutputStatusEventUrgentTags:
		mask, err := r.ReadUint()
		if err != nil {
			return nil, err
		}
		return dispatch.OutputUrgentTags{Output: output, Mask: mask}, nil
	case wayland.RiverOutputStatusEventLayoutName:
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return dispatch.OutputLayoutName{Output: output, Name: name}, nil
	case wayland.RiverOutputStatusEventLayoutNameClear:
		return dispatch.OutputLayoutNameClear{Output: output}, nil
	}
	return nil, nil
}

func seatStatusEvent(seat wayland.ObjectID, opcode uint16, r *wayland.ArgReader) (dispatch.Event, error) {
	if opcode != wayland.RiverSeatStatusEventFocusedView {
		return nil, nil
	}
	title, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return dispatch.SeatFocusedView{Seat: seat, Title: title}, nil
}
