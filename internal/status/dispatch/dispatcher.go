package dispatch

import (
	"fmt"
	"strings"

	"github.com/grovetools/ristate/config"
	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/internal/status/store"
	"github.com/grovetools/ristate/pkg/tags"
	"github.com/grovetools/ristate/pkg/wayland"
	"github.com/sirupsen/logrus"
)

// Dispatcher routes events to store mutations. It is the only writer of the
// store.
type Dispatcher struct {
	cfg    config.Config
	store  *store.Store
	logger *logrus.Entry

	outputs map[wayland.ObjectID]string
	seats   map[wayland.ObjectID]string
}

// New creates a Dispatcher writing to st.
func New(cfg config.Config, st *store.Store, logger *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		store:   st,
		logger:  logger,
		outputs: make(map[wayland.ObjectID]string),
		seats:   make(map[wayland.ObjectID]string),
	}
}

// OutputName normalizes a wl_output make into the name outputs are keyed
// and filtered by.
func OutputName(manufacturer string) string {
	return strings.ReplaceAll(manufacturer, " ", "")
}

// ApplyBatch applies events in order and stops at the first error.
func (d *Dispatcher) ApplyBatch(events []Event) error {
	for _, ev := range events {
		if err := d.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies a single event. The only error is a malformed payload.
func (d *Dispatcher) Apply(ev Event) error {
	switch e := ev.(type) {
	case OutputGeometry:
		if _, ok := d.outputs[e.Output]; ok {
			return nil
		}
		name := OutputName(e.Make)
		d.outputs[e.Output] = name
		d.logger.WithFields(logrus.Fields{"output": name, "object": e.Output}).Debug("Named output")

	case SeatName:
		if _, ok := d.seats[e.Seat]; ok {
			return nil
		}
		d.seats[e.Seat] = e.Name
		d.logger.WithFields(logrus.Fields{"seat": e.Name, "object": e.Seat}).Debug("Named seat")

	case OutputFocusedTags:
		if o := d.output(e.Output, "focused_tags"); o != nil {
			o.FocusedTags.Set(tags.DecodeSet(e.Mask))
		}

	case OutputUrgentTags:
		if o := d.output(e.Output, "urgent_tags"); o != nil {
			o.UrgentTags.Set(tags.DecodeSet(e.Mask))
		}

	case OutputViewTags:
		views, err := tags.DecodeViews(e.Raw)
		if err != nil {
			return errors.MalformedPayload(wayland.InterfaceRiverOutputStatus, "view_tags", err).
				WithDetail("object", uint32(e.Output)).
				WithDetail("length", len(e.Raw))
		}
		if o := d.output(e.Output, "view_tags"); o != nil {
			o.ViewTags.Set(views)
		}

	case OutputLayoutName:
		if o := d.output(e.Output, "layout_name"); o != nil {
			d.store.SetLayout(e.Name)
		}

	case OutputLayoutNameClear:
		if o := d.output(e.Output, "layout_name_clear"); o != nil {
			d.store.ClearLayout()
		}

	case SeatFocusedView:
		if name, ok := d.seat(e.Seat, "focused_view"); ok {
			d.store.SetFocusedView(name, e.Title)
		}

	default:
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("unhandled event %T", ev))
	}
	return nil
}

// output resolves the store entry an output event applies to, or nil when
// the event must be dropped.
func (d *Dispatcher) output(id wayland.ObjectID, event string) *store.Output {
	name, ok := d.outputs[id]
	if !ok {
		d.logger.WithFields(logrus.Fields{"object": id, "event": event}).
			Warn("Dropping event for output without a name")
		return nil
	}
	if !d.cfg.OutputAllowed(name) {
		d.logger.WithFields(logrus.Fields{"output": name, "event": event}).Debug("Output filtered")
		return nil
	}
	return d.store.Output(name)
}

func (d *Dispatcher) seat(id wayland.ObjectID, event string) (string, bool) {
	name, ok := d.seats[id]
	if !ok {
		d.logger.WithFields(logrus.Fields{"object": id, "event": event}).
			Warn("Dropping event for seat without a name")
		return "", false
	}
	if !d.cfg.SeatAllowed(name) {
		d.logger.WithFields(logrus.Fields{"seat": name, "event": event}).Debug("Seat filtered")
		return "", false
	}
	return name, true
}
