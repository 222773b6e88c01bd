// Package tags converts river tag bitmasks to and from tag index sets.
//
// A river tag mask is a 32-bit value where bit i set means tag i+1 is a
// member. Tag indices are therefore always in [1,32].
package tags

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"strconv"
)

// NoTag is the index reported for a view whose mask does not name exactly
// one tag.
const NoTag uint8 = 0

// MaxTag is the highest tag index a mask can carry.
const MaxTag = 32

// ErrMalformedViews is returned when a view tag buffer is not made of whole
// 4-byte masks.
var ErrMalformedViews = errors.New("view tag buffer length is not a multiple of 4")

// Set is a set of tag indices in ascending order.
type Set []uint8

// Views holds one tag index per view, in the order the compositor sent them.
type Views []uint8

// DecodeSingle returns the tag index i such that mask == 1<<(i-1).
// It reports false when mask is zero or has more than one bit set.
func DecodeSingle(mask uint32) (uint8, bool) {
	if bits.OnesCount32(mask) != 1 {
		return NoTag, false
	}
	return uint8(bits.TrailingZeros32(mask) + 1), true
}

// DecodeSet returns every tag whose bit is set in mask.
func DecodeSet(mask uint32) Set {
	set := make(Set, 0, bits.OnesCount32(mask))
	for mask != 0 {
		set = append(set, uint8(bits.TrailingZeros32(mask)+1))
		mask &= mask - 1
	}
	return set
}

// EncodeSet is the inverse of DecodeSet. Indices outside [1,32] are ignored.
func EncodeSet(set Set) uint32 {
	var mask uint32
	for _, tag := range set {
		if tag < 1 || tag > MaxTag {
			continue
		}
		mask |= 1 << (tag - 1)
	}
	return mask
}

// DecodeViews splits buf into little-endian 32-bit masks and decodes each with
// DecodeSingle. Masks that do not name exactly one tag keep their position as
// NoTag.
func DecodeViews(buf []byte) (Views, error) {
	if len(buf)%4 != 0 {
		return nil, ErrMalformedViews
	}
	views := make(Views, 0, len(buf)/4)
	for off := 0; off < len(buf); off += 4 {
		tag, _ := DecodeSingle(binary.LittleEndian.Uint32(buf[off : off+4]))
		views = append(views, tag)
	}
	return views, nil
}

// Strings renders the set as decimal strings in ascending order.
func (s Set) Strings() []string {
	return formatIndices(s)
}

// Strings renders the views as decimal strings in view order.
func (v Views) Strings() []string {
	return formatIndices(v)
}

func formatIndices(indices []uint8) []string {
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		out = append(out, strconv.Itoa(int(i)))
	}
	return out
}
