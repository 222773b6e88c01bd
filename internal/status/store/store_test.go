package store

import (
	"testing"

	"github.com/grovetools/ristate/pkg/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LazyEntities(t *testing.T) {
	s := New()
	assert.Empty(t, s.Outputs())
	assert.Empty(t, s.Seats())

	o := s.Output("DELL")
	assert.Same(t, o, s.Output("DELL"))
	assert.False(t, o.FocusedTags.Observed)

	seat := s.Seat("default")
	assert.Same(t, seat, s.Seat("default"))
	assert.False(t, seat.FocusedView.Observed)
}

func TestStore_SortedAccessors(t *testing.T) {
	s := New()
	s.Output("LG")
	s.Output("Acme")
	s.Output("DELL")
	s.Seat("seat1")
	s.Seat("default")

	var outputs []string
	for _, o := range s.Outputs() {
		outputs = append(outputs, o.Name)
	}
	assert.Equal(t, []string{"Acme", "DELL", "LG"}, outputs)

	var seats []string
	for _, seat := range s.Seats() {
		seats = append(seats, seat.Name)
	}
	assert.Equal(t, []string{"default", "seat1"}, seats)
}

func TestValue(t *testing.T) {
	var v Value[tags.Set]
	_, ok := v.Get()
	assert.False(t, ok)

	v.Set(tags.Set{})
	got, ok := v.Get()
	assert.True(t, ok, "an empty set is still an observation")
	assert.Empty(t, got)

	v.Set(tags.Set{1, 3})
	got, _ = v.Get()
	assert.Equal(t, tags.Set{1, 3}, got)

	v.Clear()
	_, ok = v.Get()
	assert.False(t, ok)
}

func TestStore_Layout(t *testing.T) {
	s := New()
	_, ok := s.Layout()
	assert.False(t, ok)

	s.SetLayout("rivertile")
	s.SetLayout("monocle")
	layout, ok := s.Layout()
	require.True(t, ok)
	assert.Equal(t, "monocle", layout)

	s.ClearLayout()
	_, ok = s.Layout()
	assert.False(t, ok)
}

func TestStore_FocusedView(t *testing.T) {
	s := New()
	_, ok := s.FocusedView()
	assert.False(t, ok)

	s.SetFocusedView("default", "foot")
	s.SetFocusedView("seat1", "")

	title, ok := s.FocusedView()
	require.True(t, ok)
	assert.Equal(t, "", title)

	got, ok := s.Seat("default").FocusedView.Get()
	require.True(t, ok)
	assert.Equal(t, "foot", got)
}

func TestStore_FocusedViewLatestSeatWins(t *testing.T) {
	s := New()
	s.Seat("aux")
	s.SetFocusedView("seat1", "firefox")
	s.SetFocusedView("default", "foot")

	title, ok := s.FocusedView()
	require.True(t, ok)
	assert.Equal(t, "foot", title)

	s.SetFocusedView("seat1", "mpv")
	title, _ = s.FocusedView()
	assert.Equal(t, "mpv", title)
}
