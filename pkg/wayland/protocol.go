package wayland

// Interface names.
const (
	InterfaceDisplay            = "wl_display"
	InterfaceRegistry           = "wl_registry"
	InterfaceCallback           = "wl_callback"
	InterfaceOutput             = "wl_output"
	InterfaceSeat               = "wl_seat"
	InterfaceRiverStatusManager = "zriver_status_manager_v1"
	InterfaceRiverOutputStatus  = "zriver_output_status_v1"
	InterfaceRiverSeatStatus    = "zriver_seat_status_v1"
)

// wl_display
const (
	DisplaySync        uint16 = 0
	DisplayGetRegistry uint16 = 1

	DisplayEventError    uint16 = 0
	DisplayEventDeleteID uint16 = 1
)

// wl_registry
const (
	RegistryBind uint16 = 0

	RegistryEventGlobal       uint16 = 0
	RegistryEventGlobalRemove uint16 = 1
)

// wl_callback
const (
	CallbackEventDone uint16 = 0
)

// wl_output
const (
	OutputRelease uint16 = 0 // since 3

	OutputEventGeometry    uint16 = 0
	OutputEventMode        uint16 = 1
	OutputEventDone        uint16 = 2
	OutputEventScale       uint16 = 3
	OutputEventName        uint16 = 4
	OutputEventDescription uint16 = 5
)

// wl_seat
const (
	SeatRelease uint16 = 3 // since 5

	SeatEventCapabilities uint16 = 0
	SeatEventName         uint16 = 1
)

// zriver_status_manager_v1
const (
	RiverStatusManagerDestroy         uint16 = 0
	RiverStatusManagerGetOutputStatus uint16 = 1
	RiverStatusManagerGetSeatStatus   uint16 = 2
)

// zriver_output_status_v1
const (
	RiverOutputStatusDestroy uint16 = 0

	RiverOutputStatusEventFocusedTags     uint16 = 0
	RiverOutputStatusEventViewTags        uint16 = 1
	RiverOutputStatusEventUrgentTags      uint16 = 2 // since 2
	RiverOutputStatusEventLayoutName      uint16 = 3 // since 4
	RiverOutputStatusEventLayoutNameClear uint16 = 4 // since 4
)

// zriver_seat_status_v1
const (
	RiverSeatStatusDestroy uint16 = 0

	RiverSeatStatusEventFocusedOutput   uint16 = 0
	RiverSeatStatusEventUnfocusedOutput uint16 = 1
	RiverSeatStatusEventFocusedView     uint16 = 2
	RiverSeatStatusEventMode            uint16 = 3 // since 3
)

var eventNames = map[string][]string{
	InterfaceDisplay:           {"error", "delete_id"},
	InterfaceRegistry:          {"global", "global_remove"},
	InterfaceCallback:          {"done"},
	InterfaceOutput:            {"geometry", "mode", "done", "scale", "name", "description"},
	InterfaceSeat:              {"capabilities", "name"},
	InterfaceRiverOutputStatus: {"focused_tags", "view_tags", "urgent_tags", "layout_name", "layout_name_clear"},
	InterfaceRiverSeatStatus:   {"focused_output", "unfocused_output", "focused_view", "mode"},
}

// EventName returns the protocol name of an event, or "" if the interface
// defines no such opcode.
func EventName(iface string, opcode uint16) string {
	names := eventNames[iface]
	if int(opcode) >= len(names) {
		return ""
	}
	return names[opcode]
}
