// Package render turns the store into the JSON record written on stdout.
package render

import (
	"encoding/json"
	"io"

	"github.com/grovetools/ristate/config"
	"github.com/grovetools/ristate/internal/status/store"
)

// Snapshot is one output record. Keys are emitted in field order and
// omitted when the field is disabled or has never been observed.
type Snapshot struct {
	Layout      *string             `json:"layout,omitempty"`
	FocusedView *string             `json:"focused_view,omitempty"`
	FocusedTags map[string][]string `json:"focused_tags,omitempty"`
	Urgency     map[string][]string `json:"urgency,omitempty"`
	ViewTags    map[string][]string `json:"view_tags,omitempty"`
}

// Empty reports whether no field holds a non-empty value. Observed but
// empty values are still rendered when another field makes the record
// non-empty.
func (s Snapshot) Empty() bool {
	if s.Layout != nil && *s.Layout != "" {
		return false
	}
	if s.FocusedView != nil && *s.FocusedView != "" {
		return false
	}
	return !anyEntries(s.FocusedTags) && !anyEntries(s.Urgency) && !anyEntries(s.ViewTags)
}

func anyEntries(m map[string][]string) bool {
	for _, v := range m {
		if len(v) > 0 {
			return true
		}
	}
	return false
}

// Renderer writes snapshots as newline-delimited JSON.
type Renderer struct {
	enc    *json.Encoder
	fields config.FieldSet
}

// New creates a Renderer for the enabled fields writing to w.
func New(w io.Writer, fields config.FieldSet) *Renderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Renderer{enc: enc, fields: fields}
}

// Build collects the enabled, observed fields of st.
func (r *Renderer) Build(st *store.Store) Snapshot {
	var snap Snapshot

	if r.fields.Has(config.FieldLayout) {
		if layout, ok := st.Layout(); ok {
			snap.Layout = &layout
		}
	}
	if r.fields.Has(config.FieldFocusedView) {
		if title, ok := st.FocusedView(); ok {
			snap.FocusedView = &title
		}
	}

	for _, o := range st.Outputs() {
		if r.fields.Has(config.FieldFocusedTags) {
			if set, ok := o.FocusedTags.Get(); ok {
				snap.FocusedTags = put(snap.FocusedTags, o.Name, set.Strings())
			}
		}
		if r.fields.Has(config.FieldUrgentTags) {
			if set, ok := o.UrgentTags.Get(); ok {
				snap.Urgency = put(snap.Urgency, o.Name, set.Strings())
			}
		}
		if r.fields.Has(config.FieldViewTags) {
			if views, ok := o.ViewTags.Get(); ok {
				snap.ViewTags = put(snap.ViewTags, o.Name, views.Strings())
			}
		}
	}

	return snap
}

func put(m map[string][]string, key string, value []string) map[string][]string {
	if m == nil {
		m = make(map[string][]string)
	}
	m[key] = value
	return m
}

// Render writes the current snapshot as one line. It returns false without
// writing when there is nothing to report yet.
func (r *Renderer) Render(st *store.Store) (bool, error) {
	snap := r.Build(st)
	if snap.Empty() {
		return false, nil
	}
	if err := r.enc.Encode(snap); err != nil {
		return false, err
	}
	return true, nil
}
