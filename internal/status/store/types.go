// Package store holds the latest observed state of every river output and
// seat. It has a single owner and is not safe for concurrent use.
package store

import "github.com/grovetools/ristate/pkg/tags"

// Value is an attribute that remembers whether it has ever been observed.
type Value[T any] struct {
	V        T
	Observed bool
}

// Set records v as the latest observed value.
func (a *Value[T]) Set(v T) {
	a.V = v
	a.Observed = true
}

// Clear forgets the value.
func (a *Value[T]) Clear() {
	var zero T
	a.V = zero
	a.Observed = false
}

// Get returns the value and whether it was observed.
func (a Value[T]) Get() (T, bool) { return a.V, a.Observed }

// Output is the state of one output, keyed by its display name.
type Output struct {
	Name        string
	FocusedTags Value[tags.Set]
	UrgentTags  Value[tags.Set]
	ViewTags    Value[tags.Views]
}

// Seat is the state of one seat, keyed by its advertised name.
type Seat struct {
	Name        string
	FocusedView Value[string]

	focusSeq uint64
}
