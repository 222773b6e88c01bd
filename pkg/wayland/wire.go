// Package wayland implements the subset of the Wayland wire protocol needed
// to observe a compositor: message framing, argument marshalling and a
// connection that hands out messages one drained batch at a time.
//
// Every message starts with an 8-byte header in host byte order: the sender
// object id, then a word holding the total message size in the upper 16 bits
// and the opcode in the lower 16. Arguments follow, each padded to 4 bytes.
package wayland

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ObjectID identifies a protocol object on one connection.
type ObjectID uint32

// DisplayID is the id of the wl_display singleton.
const DisplayID ObjectID = 1

const (
	headerSize     = 8
	maxMessageSize = 0xFFFF
)

var byteOrder = binary.NativeEndian

// ErrShortMessage is returned when a message is shorter than its arguments.
var ErrShortMessage = errors.New("wayland: message shorter than its arguments")

// Message is a single request or event.
type Message struct {
	Sender ObjectID
	Opcode uint16
	Args   []byte
}

// Encode returns the message framed for the wire.
func (m Message) Encode() ([]byte, error) {
	size := headerSize + len(m.Args)
	if size > maxMessageSize {
		return nil, fmt.Errorf("wayland: message of %d bytes exceeds %d", size, maxMessageSize)
	}
	if len(m.Args)%4 != 0 {
		return nil, fmt.Errorf("wayland: arguments not padded to 4 bytes (%d)", len(m.Args))
	}
	buf := make([]byte, size)
	byteOrder.PutUint32(buf[0:4], uint32(m.Sender))
	byteOrder.PutUint32(buf[4:8], uint32(size)<<16|uint32(m.Opcode))
	copy(buf[headerSize:], m.Args)
	return buf, nil
}

// parseMessage decodes the message at the start of buf. It returns n == 0
// when buf does not yet hold a complete message. Args alias buf.
func parseMessage(buf []byte) (Message, int, error) {
	if len(buf) < headerSize {
		return Message{}, 0, nil
	}
	word := byteOrder.Uint32(buf[4:8])
	size := int(word >> 16)
	if size < headerSize || size%4 != 0 {
		return Message{}, 0, fmt.Errorf("wayland: invalid message size %d", size)
	}
	if len(buf) < size {
		return Message{}, 0, nil
	}
	return Message{
		Sender: ObjectID(byteOrder.Uint32(buf[0:4])),
		Opcode: uint16(word & 0xFFFF),
		Args:   buf[headerSize:size],
	}, size, nil
}

func padded(n int) int {
	return (n + 3) &^ 3
}

// ArgReader decodes event arguments in order.
type ArgReader struct {
	buf []byte
	off int
}

// NewArgReader returns a reader over a message's argument bytes.
func NewArgReader(args []byte) *ArgReader {
	return &ArgReader{buf: args}
}

func (r *ArgReader) word() (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, ErrShortMessage
	}
	v := byteOrder.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// ReadUint decodes a uint argument.
func (r *ArgReader) ReadUint() (uint32, error) {
	return r.word()
}

// ReadInt decodes an int argument.
func (r *ArgReader) ReadInt() (int32, error) {
	v, err := r.word()
	return int32(v), err
}

// ReadObject decodes an object argument. Zero means null.
func (r *ArgReader) ReadObject() (ObjectID, error) {
	v, err := r.word()
	return ObjectID(v), err
}

// ReadArray decodes an array argument. The returned slice is a copy.
func (r *ArgReader) ReadArray() ([]byte, error) {
	n, err := r.word()
	if err != nil {
		return nil, err
	}
	size := int(n)
	if size < 0 || r.off+padded(size) > len(r.buf) {
		return nil, ErrShortMessage
	}
	out := make([]byte, size)
	copy(out, r.buf[r.off:r.off+size])
	r.off += padded(size)
	return out, nil
}

// ReadString decodes a string argument. A null string decodes as "".
func (r *ArgReader) ReadString() (string, error) {
	raw, err := r.ReadArray()
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	if raw[len(raw)-1] != 0 {
		return "", errors.New("wayland: string argument is not NUL terminated")
	}
	return string(raw[:len(raw)-1]), nil
}

// Remaining reports how many argument bytes have not been read.
func (r *ArgReader) Remaining() int {
	return len(r.buf) - r.off
}

// ArgWriter encodes request arguments in order.
type ArgWriter struct {
	buf []byte
}

func (w *ArgWriter) word(v uint32) *ArgWriter {
	w.buf = byteOrder.AppendUint32(w.buf, v)
	return w
}

// Uint appends a uint argument.
func (w *ArgWriter) Uint(v uint32) *ArgWriter { return w.word(v) }

// Int appends an int argument.
func (w *ArgWriter) Int(v int32) *ArgWriter { return w.word(uint32(v)) }

// Object appends an object or new_id argument.
func (w *ArgWriter) Object(id ObjectID) *ArgWriter { return w.word(uint32(id)) }

// Array appends an array argument.
func (w *ArgWriter) Array(b []byte) *ArgWriter {
	w.word(uint32(len(b)))
	w.buf = append(w.buf, b...)
	w.buf = append(w.buf, make([]byte, padded(len(b))-len(b))...)
	return w
}

// String appends a NUL-terminated string argument.
func (w *ArgWriter) String(s string) *ArgWriter {
	return w.Array(append([]byte(s), 0))
}

// Bytes returns the encoded arguments.
func (w *ArgWriter) Bytes() []byte {
	return w.buf
}
