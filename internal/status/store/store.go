package store

import "sort"

// Store maps entity names to their attributes. Entities are created on first
// use and never removed.
type Store struct {
	outputs map[string]*Output
	seats   map[string]*Seat

	layout Value[string]
	// focusSeq orders focused-view updates across seats.
	focusSeq uint64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		outputs: make(map[string]*Output),
		seats:   make(map[string]*Seat),
	}
}

// Output returns the named output, creating it if needed.
func (s *Store) Output(name string) *Output {
	o, ok := s.outputs[name]
	if !ok {
		o = &Output{Name: name}
		s.outputs[name] = o
	}
	return o
}

// Seat returns the named seat, creating it if needed.
func (s *Store) Seat(name string) *Seat {
	seat, ok := s.seats[name]
	if !ok {
		seat = &Seat{Name: name}
		s.seats[name] = seat
	}
	return seat
}

// Outputs returns every known output sorted by name.
func (s *Store) Outputs() []*Output {
	result := make([]*Output, 0, len(s.outputs))
	for _, o := range s.outputs {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Seats returns every known seat sorted by name.
func (s *Store) Seats() []*Seat {
	result := make([]*Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		result = append(result, seat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// SetLayout records the process-wide layout name.
func (s *Store) SetLayout(name string) { s.layout.Set(name) }

// ClearLayout forgets the layout name.
func (s *Store) ClearLayout() { s.layout.Clear() }

// Layout returns the layout name and whether one is known.
func (s *Store) Layout() (string, bool) { return s.layout.Get() }

// SetFocusedView records title as the focused view of the named seat.
func (s *Store) SetFocusedView(seat, title string) {
	s.focusSeq++
	st := s.Seat(seat)
	st.FocusedView.Set(title)
	st.focusSeq = s.focusSeq
}

// FocusedView returns the most recently reported title of any seat.
func (s *Store) FocusedView() (string, bool) {
	var latest *Seat
	for _, seat := range s.Seats() {
		if !seat.FocusedView.Observed {
			continue
		}
		if latest == nil || seat.focusSeq > latest.focusSeq {
			latest = seat
		}
	}
	if latest == nil {
		return "", false
	}
	return latest.FocusedView.Get()
}
