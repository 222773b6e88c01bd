package wayland

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEncodeParse(t *testing.T) {
	m := Bind(2, 7, InterfaceOutput, 3, 4)
	frame, err := m.Encode()
	require.NoError(t, err)
	assert.Zero(t, len(frame)%4)

	got, n, err := parseMessage(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), n)
	assert.Equal(t, ObjectID(2), got.Sender)
	assert.Equal(t, RegistryBind, got.Opcode)

	r := NewArgReader(got.Args)
	name, err := r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), name)
	iface, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, InterfaceOutput, iface)
	version, err := r.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), version)
	id, err := r.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, ObjectID(4), id)
	assert.Zero(t, r.Remaining())
}

func TestParseMessage_Incomplete(t *testing.T) {
	frame, err := Sync(3).Encode()
	require.NoError(t, err)

	_, n, err := parseMessage(frame[:5])
	require.NoError(t, err)
	assert.Zero(t, n)

	_, n, err = parseMessage(frame[:len(frame)-1])
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestParseMessage_InvalidSize(t *testing.T) {
	frame := make([]byte, 8)
	byteOrder.PutUint32(frame[0:4], 1)
	byteOrder.PutUint32(frame[4:8], 4<<16)
	_, _, err := parseMessage(frame)
	assert.Error(t, err)
}

func TestArgReader_ShortMessage(t *testing.T) {
	r := NewArgReader([]byte{1, 0})
	_, err := r.ReadUint()
	assert.ErrorIs(t, err, ErrShortMessage)

	args := new(ArgWriter).Uint(16).Bytes() // claims 16 bytes of array, has none
	_, err = NewArgReader(args).ReadArray()
	assert.ErrorIs(t, err, ErrShortMessage)
}

func TestArgReader_Strings(t *testing.T) {
	args := new(ArgWriter).String("").String("Acme Display").Uint(0).Bytes()
	r := NewArgReader(args)

	empty, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	name, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Acme Display", name)

	// A zero length is the null string.
	null, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", null)
}

func TestArgReader_ArrayPadding(t *testing.T) {
	args := new(ArgWriter).Array([]byte{1, 2, 3, 4, 5}).Int(-1).Bytes()
	assert.Len(t, args, 4+8+4)

	r := NewArgReader(args)
	arr, err := r.ReadArray()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, arr)
	v, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "view_tags", EventName(InterfaceRiverOutputStatus, RiverOutputStatusEventViewTags))
	assert.Equal(t, "", EventName(InterfaceRiverOutputStatus, 42))
	assert.Equal(t, "", EventName("unknown", 0))
}

func TestIDAllocator(t *testing.T) {
	var ids IDAllocator
	assert.Equal(t, ObjectID(2), ids.Next())
	assert.Equal(t, ObjectID(3), ids.Next())
}

func TestConnReadBatch(t *testing.T) {
	client, server := net.Pipe()
	conn := NewConn(client)
	defer conn.Close()

	first, err := Message{Sender: 5, Opcode: 0, Args: new(ArgWriter).Uint(1).Bytes()}.Encode()
	require.NoError(t, err)
	second, err := Message{Sender: 5, Opcode: 0, Args: new(ArgWriter).Uint(2).Bytes()}.Encode()
	require.NoError(t, err)

	go func() {
		// Two messages and the first half of a third in one write.
		payload := append(append(append([]byte{}, first...), second...), first[:6]...)
		_, _ = server.Write(payload)
		_, _ = server.Write(first[6:])
		_ = server.Close()
	}()

	batch, err := conn.ReadBatch()
	require.NoError(t, err)
	require.Len(t, batch, 2)
	v, err := NewArgReader(batch[1].Args).ReadUint()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	batch, err = conn.ReadBatch()
	require.NoError(t, err)
	require.Len(t, batch, 1)

	_, err = conn.ReadBatch()
	assert.ErrorIs(t, err, io.EOF)
}
