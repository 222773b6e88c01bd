package session

import "github.com/grovetools/ristate/pkg/wayland"

// Highest interface versions this client understands.
const (
	outputVersion        uint32 = 3
	seatVersion          uint32 = 7
	statusManagerVersion uint32 = 4
)

// proxy is the client-side record of a live protocol object.
type proxy struct {
	iface   string
	version uint32
	// global is the registry name the object was bound from, zero otherwise.
	global uint32
	// target is the wl_output or wl_seat a status object reports on.
	target wayland.ObjectID
	// status is the river status object subscribed for an output or seat.
	status wayland.ObjectID
	// zombie objects were destroyed by the client; their events are dropped
	// until the compositor confirms with delete_id.
	zombie bool
	done   bool
}

// maxVersion returns the version to bind a global with, or zero when the
// interface is of no interest.
func maxVersion(iface string) uint32 {
	switch iface {
	case wayland.InterfaceOutput:
		return outputVersion
	case wayland.InterfaceSeat:
		return seatVersion
	case wayland.InterfaceRiverStatusManager:
		return statusManagerVersion
	}
	return 0
}

// releaseOpcode returns the destructor request of an object, if its bound
// version has one.
func releaseOpcode(p *proxy) (uint16, bool) {
	switch p.iface {
	case wayland.InterfaceOutput:
		return wayland.OutputRelease, p.version >= 3
	case wayland.InterfaceSeat:
		return wayland.SeatRelease, p.version >= 5
	case wayland.InterfaceRiverStatusManager:
		return wayland.RiverStatusManagerDestroy, true
	case wayland.InterfaceRiverOutputStatus:
		return wayland.RiverOutputStatusDestroy, true
	case wayland.InterfaceRiverSeatStatus:
		return wayland.RiverSeatStatusDestroy, true
	}
	return 0, false
}
