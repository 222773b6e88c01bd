package session

import (
	"testing"

	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/internal/status/dispatch"
	"github.com/grovetools/ristate/pkg/wayland"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	globalOutput     = 1
	globalSeat       = 2
	globalManager    = 3
	globalCompositor = 4
)

func riverGlobals() []global {
	return []global{
		{name: globalOutput, iface: wayland.InterfaceOutput, version: 4, label: "Dell Inc."},
		{name: globalSeat, iface: wayland.InterfaceSeat, version: 8, label: "default"},
		{name: globalManager, iface: wayland.InterfaceRiverStatusManager, version: 4},
		{name: globalCompositor, iface: "wl_compositor", version: 6},
	}
}

func newSession(t *testing.T, opts Options, globals ...global) (*Session, *fakeCompositor) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := newFakeCompositor(t, globals...)
	return New(f, opts, logrus.NewEntry(logger)), f
}

func bootstrapped(t *testing.T, opts Options) (*Session, *fakeCompositor) {
	t.Helper()
	s, f := newSession(t, opts, riverGlobals()...)
	require.NoError(t, s.Bootstrap())
	return s, f
}

func TestBootstrap_BindsAndSubscribes(t *testing.T) {
	s, f := bootstrapped(t, Options{SubscribeOutputs: true, SubscribeSeats: true})

	require.Len(t, f.bound, 3, "wl_compositor is not bound")
	output := f.boundID(globalOutput)
	seat := f.boundID(globalSeat)
	manager := f.boundID(globalManager)

	assert.Equal(t, uint32(3), f.boundVersion[output])
	assert.Equal(t, uint32(7), f.boundVersion[seat])
	assert.Equal(t, uint32(4), f.boundVersion[manager])

	require.Len(t, f.subscriptions, 2)
	f.statusFor(output)
	f.statusFor(seat)

	events, err := s.NextBatch()
	require.NoError(t, err)
	assert.Equal(t, []dispatch.Event{
		dispatch.OutputGeometry{Output: output, Make: "Dell Inc.", Model: "model"},
		dispatch.SeatName{Seat: seat, Name: "default"},
	}, events)
}

func TestBootstrap_OnlyRequestedSubscriptions(t *testing.T) {
	_, f := bootstrapped(t, Options{SubscribeOutputs: true})
	require.Len(t, f.subscriptions, 1)
	f.statusFor(f.boundID(globalOutput))

	_, f = bootstrapped(t, Options{SubscribeSeats: true})
	require.Len(t, f.subscriptions, 1)
	f.statusFor(f.boundID(globalSeat))
}

func TestBootstrap_CapabilityMissing(t *testing.T) {
	globals := []global{
		{name: globalOutput, iface: wayland.InterfaceOutput, version: 3, label: "LG"},
	}

	s, _ := newSession(t, Options{SubscribeOutputs: true}, globals...)
	err := s.Bootstrap()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCapabilityMissing))

	s, _ = newSession(t, Options{SubscribeSeats: true})
	err = s.Bootstrap()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCapabilityMissing))

	s, _ = newSession(t, Options{}, globals...)
	assert.NoError(t, s.Bootstrap())
}

func TestBootstrap_ConnectionClosed(t *testing.T) {
	s, f := newSession(t, Options{}, riverGlobals()...)
	f.closed = true

	err := s.Bootstrap()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConnectFailed))
}

func TestNextBatch_StatusEvents(t *testing.T) {
	s, f := bootstrapped(t, Options{SubscribeOutputs: true, SubscribeSeats: true})
	_, err := s.NextBatch()
	require.NoError(t, err)

	output := f.boundID(globalOutput)
	seat := f.boundID(globalSeat)
	outputStatus := f.statusFor(output)
	seatStatus := f.statusFor(seat)
	views := []byte{1, 0, 0, 0, 4, 0, 0, 0}

	f.push(
		event(outputStatus, wayland.RiverOutputStatusEventFocusedTags, args().Uint(5)),
		event(outputStatus, wayland.RiverOutputStatusEventViewTags, args().Array(views)),
		event(outputStatus, wayland.RiverOutputStatusEventUrgentTags, args().Uint(0)),
		event(outputStatus, wayland.RiverOutputStatusEventLayoutName, args().String("rivertile")),
		event(outputStatus, wayland.RiverOutputStatusEventLayoutNameClear, nil),
		event(seatStatus, wayland.RiverSeatStatusEventFocusedOutput, args().Object(output)),
		event(seatStatus, wayland.RiverSeatStatusEventFocusedView, args().String("foot")),
		event(seatStatus, wayland.RiverSeatStatusEventMode, args().String("normal")),
		event(output, wayland.OutputEventDone, nil),
	)

	events, err := s.NextBatch()
	require.NoError(t, err)
	assert.Equal(t, []dispatch.Event{
		dispatch.OutputFocusedTags{Output: output, Mask: 5},
		dispatch.OutputViewTags{Output: output, Raw: views},
		dispatch.OutputUrgentTags{Output: output, Mask: 0},
		dispatch.OutputLayoutName{Output: output, Name: "rivertile"},
		dispatch.OutputLayoutNameClear{Output: output},
		dispatch.SeatFocusedView{Seat: seat, Title: "foot"},
	}, events)
}

func TestNextBatch_EmptyBatch(t *testing.T) {
	s, f := bootstrapped(t, Options{SubscribeOutputs: true})
	_, err := s.NextBatch()
	require.NoError(t, err)

	f.push(event(f.boundID(globalOutput), wayland.OutputEventDone, nil))
	events, err := s.NextBatch()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNextBatch_HotplugOutput(t *testing.T) {
	s, f := bootstrapped(t, Options{SubscribeOutputs: true})
	_, err := s.NextBatch()
	require.NoError(t, err)

	hotplug := global{name: 9, iface: wayland.InterfaceOutput, version: 3, label: "LG"}
	f.globals = append(f.globals, hotplug)
	f.push(f.globalEvent(hotplug))

	events, err := s.NextBatch()
	require.NoError(t, err)
	assert.Empty(t, events)

	output := f.boundID(9)
	f.statusFor(output)

	events, err = s.NextBatch()
	require.NoError(t, err)
	assert.Equal(t, []dispatch.Event{
		dispatch.OutputGeometry{Output: output, Make: "LG", Model: "model"},
	}, events)
}

func TestNextBatch_GlobalRemove(t *testing.T) {
	s, f := bootstrapped(t, Options{SubscribeOutputs: true})
	_, err := s.NextBatch()
	require.NoError(t, err)

	output := f.boundID(globalOutput)
	status := f.statusFor(output)

	f.push(event(f.registry, wayland.RegistryEventGlobalRemove, args().Uint(globalOutput)))
	_, err = s.NextBatch()
	require.NoError(t, err)
	assert.Equal(t, []request{
		{sender: status, opcode: wayland.RiverOutputStatusDestroy},
		{sender: output, opcode: wayland.OutputRelease},
	}, f.destroyed)

	// Events racing the release are dropped.
	f.push(event(status, wayland.RiverOutputStatusEventFocusedTags, args().Uint(1)))
	events, err := s.NextBatch()
	require.NoError(t, err)
	assert.Empty(t, events)

	// Once the compositor confirms, the id is unknown again.
	f.push(
		event(wayland.DisplayID, wayland.DisplayEventDeleteID, args().Uint(uint32(status))),
		event(status, wayland.RiverOutputStatusEventFocusedTags, args().Uint(1)),
	)
	_, err = s.NextBatch()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeProtocolViolation))
}

func TestNextBatch_ProtocolViolations(t *testing.T) {
	tests := []struct {
		name string
		msg  func(f *fakeCompositor) wayland.Message
	}{
		{
			name: "unknown object",
			msg: func(f *fakeCompositor) wayland.Message {
				return event(999, 0, args().Uint(1))
			},
		},
		{
			name: "unknown opcode",
			msg: func(f *fakeCompositor) wayland.Message {
				return event(f.statusFor(f.boundID(globalOutput)), 7, nil)
			},
		},
		{
			name: "truncated arguments",
			msg: func(f *fakeCompositor) wayland.Message {
				return event(f.statusFor(f.boundID(globalOutput)), wayland.RiverOutputStatusEventFocusedTags, nil)
			},
		},
		{
			name: "unterminated string",
			msg: func(f *fakeCompositor) wayland.Message {
				return event(f.statusFor(f.boundID(globalOutput)), wayland.RiverOutputStatusEventLayoutName,
					args().Uint(4).Uint(0x61616161))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, f := bootstrapped(t, Options{SubscribeOutputs: true})
			_, err := s.NextBatch()
			require.NoError(t, err)

			f.push(tt.msg(f))
			_, err = s.NextBatch()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeProtocolViolation), "got %v", err)
		})
	}
}

func TestNextBatch_DisplayError(t *testing.T) {
	s, f := bootstrapped(t, Options{SubscribeOutputs: true})
	_, err := s.NextBatch()
	require.NoError(t, err)

	f.push(event(wayland.DisplayID, wayland.DisplayEventError,
		args().Object(f.boundID(globalOutput)).Uint(1).String("invalid method")))

	_, err = s.NextBatch()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCompositorReported))
	assert.Contains(t, err.Error(), "invalid method")
}

func TestNextBatch_ConnectionLost(t *testing.T) {
	s, _ := bootstrapped(t, Options{SubscribeOutputs: true})
	_, err := s.NextBatch()
	require.NoError(t, err)

	require.NoError(t, s.Close())
	_, err = s.NextBatch()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConnectFailed))
}
