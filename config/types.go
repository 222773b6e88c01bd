package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Field is one report field of a snapshot.
type Field uint8

const (
	FieldFocusedTags Field = 1 << iota
	FieldUrgentTags
	FieldViewTags
	FieldFocusedView
	FieldLayout
)

// Fields lists every report field in snapshot key order.
var Fields = []Field{FieldLayout, FieldFocusedView, FieldFocusedTags, FieldUrgentTags, FieldViewTags}

var fieldNames = map[Field]string{
	FieldLayout:      "layout",
	FieldFocusedView: "focused_view",
	FieldFocusedTags: "focused_tags",
	FieldUrgentTags:  "urgency",
	FieldViewTags:    "view_tags",
}

var fieldAliases = map[string]Field{
	"tags":        FieldFocusedTags,
	"urgent_tags": FieldUrgentTags,
	"title":       FieldFocusedView,
	"layout_name": FieldLayout,
}

// String returns the snapshot key of the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", uint8(f))
}

// ParseField resolves a field by snapshot key or alias. Dashes and
// underscores are interchangeable.
func ParseField(name string) (Field, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	f, ok := fieldAliases[name]
	return f, ok
}

// FieldSet is a set of enabled report fields.
type FieldSet uint8

// NewFieldSet returns a set holding fields.
func NewFieldSet(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is enabled.
func (s FieldSet) Has(f Field) bool { return s&FieldSet(f) != 0 }

// With returns s with f enabled.
func (s FieldSet) With(f Field) FieldSet { return s | FieldSet(f) }

// Empty reports whether no field is enabled.
func (s FieldSet) Empty() bool { return s == 0 }

// Names returns the enabled field names in snapshot key order.
func (s FieldSet) Names() []string {
	var names []string
	for _, f := range Fields {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}
	return names
}

// Config is the runtime configuration. It is built once at startup and
// never mutated afterwards.
type Config struct {
	Fields FieldSet
	// Output restricts output events to the output with this name. Empty
	// means every output.
	Output string
	// Seat restricts seat events to the seat with this name. Empty means
	// every seat.
	Seat string
}

// OutputAllowed reports whether events of the named output are processed.
func (c Config) OutputAllowed(name string) bool {
	return c.Output == "" || c.Output == name
}

// SeatAllowed reports whether events of the named seat are processed.
func (c Config) SeatAllowed(name string) bool {
	return c.Seat == "" || c.Seat == name
}

// WantsOutputs reports whether any field is fed by output status events.
func (c Config) WantsOutputs() bool {
	return c.Fields.Has(FieldFocusedTags) || c.Fields.Has(FieldUrgentTags) ||
		c.Fields.Has(FieldViewTags) || c.Fields.Has(FieldLayout)
}

// WantsSeats reports whether any field is fed by seat status events.
func (c Config) WantsSeats() bool {
	return c.Fields.Has(FieldFocusedView)
}

// File is the on-disk configuration (ristate.yml or ristate.toml).
type File struct {
	Report  []string               `yaml:"report,omitempty" toml:"report,omitempty" jsonschema:"description=Fields to report (layout focused_view focused_tags urgency view_tags)"`
	Output  string                 `yaml:"output,omitempty" toml:"output,omitempty" jsonschema:"description=Only report the output with this name (make with spaces removed)"`
	Seat    string                 `yaml:"seat,omitempty" toml:"seat,omitempty" jsonschema:"description=Only report the seat with this name"`
	Logging map[string]interface{} `yaml:"logging,omitempty" toml:"logging,omitempty" jsonschema:"description=Logging configuration"`

	// Path is where the file was loaded from. Empty when no file was found.
	Path string `yaml:"-" toml:"-" mapstructure:"-"`
}

// DecodeLogging decodes the logging section into target, which must be a
// pointer. A missing section leaves target untouched.
func (f *File) DecodeLogging(target interface{}) error {
	if f == nil || f.Logging == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(f.Logging); err != nil {
		return fmt.Errorf("failed to decode logging config: %w", err)
	}

	return nil
}
