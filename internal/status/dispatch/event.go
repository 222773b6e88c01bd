// Package dispatch applies decoded river status notifications to the store.
package dispatch

import "github.com/grovetools/ristate/pkg/wayland"

// Event is one decoded notification. Output events carry the wl_output the
// notification is about, seat events the wl_seat.
type Event interface {
	event()
}

// OutputGeometry carries the wl_output geometry make and model.
type OutputGeometry struct {
	Output wayland.ObjectID
	Make   string
	Model  string
}

// SeatName carries the advertised name of a wl_seat.
type SeatName struct {
	Seat wayland.ObjectID
	Name string
}

// OutputFocusedTags carries the focused tag mask of an output.
type OutputFocusedTags struct {
	Output wayland.ObjectID
	Mask   uint32
}

// OutputUrgentTags carries the urgent tag mask of an output.
type OutputUrgentTags struct {
	Output wayland.ObjectID
	Mask   uint32
}

// OutputViewTags carries the raw per-view tag array of an output.
type OutputViewTags struct {
	Output wayland.ObjectID
	Raw    []byte
}

// OutputLayoutName carries the layout name reported on an output.
type OutputLayoutName struct {
	Output wayland.ObjectID
	Name   string
}

// OutputLayoutNameClear reports that an output no longer has a layout name.
type OutputLayoutNameClear struct {
	Output wayland.ObjectID
}

// SeatFocusedView carries the title of the view focused on a seat.
type SeatFocusedView struct {
	Seat  wayland.ObjectID
	Title string
}

func (OutputGeometry) event()        {}
func (SeatName) event()              {}
func (OutputFocusedTags) event()     {}
func (OutputUrgentTags) event()      {}
func (OutputViewTags) event()        {}
func (OutputLayoutName) event()      {}
func (OutputLayoutNameClear) event() {}
func (SeatFocusedView) event()       {}
