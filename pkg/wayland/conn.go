package wayland

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

const readChunk = 4096

// ErrDisplayUnset is returned when the environment names no compositor.
var ErrDisplayUnset = errors.New("wayland: XDG_RUNTIME_DIR is not set")

// Conn is a client connection to a compositor. It is not safe for concurrent
// use apart from Close.
type Conn struct {
	rw      io.ReadWriteCloser
	buf     []byte
	readErr error
	scratch [readChunk]byte
}

// NewConn wraps an established stream.
func NewConn(rw io.ReadWriteCloser) *Conn {
	return &Conn{rw: rw}
}

// SocketPath resolves the compositor socket from WAYLAND_DISPLAY and
// XDG_RUNTIME_DIR.
func SocketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if filepath.IsAbs(display) {
		return display, nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", ErrDisplayUnset
	}
	return filepath.Join(runtimeDir, display), nil
}

// Dial connects to the compositor socket at path.
func Dial(path string) (*Conn, error) {
	c, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return NewConn(c), nil
}

// FromFD adopts an already connected socket, as passed in WAYLAND_SOCKET.
func FromFD(fd int) (*Conn, error) {
	f := os.NewFile(uintptr(fd), "wayland-socket")
	if f == nil {
		return nil, fmt.Errorf("wayland: invalid socket fd %d", fd)
	}
	defer f.Close()
	c, err := net.FileConn(f)
	if err != nil {
		return nil, err
	}
	return NewConn(c), nil
}

// Connect reaches the compositor the way libwayland does: WAYLAND_SOCKET
// first, then the display socket. It returns a description of the endpoint
// for diagnostics.
func Connect() (*Conn, string, error) {
	if raw := os.Getenv("WAYLAND_SOCKET"); raw != "" {
		// The fd belongs to this process only; do not leak it to children.
		_ = os.Unsetenv("WAYLAND_SOCKET")
		fd, err := strconv.Atoi(raw)
		if err != nil {
			return nil, "WAYLAND_SOCKET=" + raw, fmt.Errorf("wayland: WAYLAND_SOCKET is not an fd: %w", err)
		}
		c, err := FromFD(fd)
		return c, "WAYLAND_SOCKET=" + raw, err
	}
	path, err := SocketPath()
	if err != nil {
		return nil, "", err
	}
	c, err := Dial(path)
	return c, path, err
}

// Send writes one request.
func (c *Conn) Send(m Message) error {
	frame, err := m.Encode()
	if err != nil {
		return err
	}
	_, err = c.rw.Write(frame)
	return err
}

// ReadBatch blocks until at least one complete message is available and
// returns every complete message buffered at that point. Partial trailing
// bytes are kept for the next call.
func (c *Conn) ReadBatch() ([]Message, error) {
	for {
		msgs, err := c.drain()
		if err != nil || len(msgs) > 0 {
			return msgs, err
		}
		if c.readErr != nil {
			return nil, c.readErr
		}
		n, err := c.rw.Read(c.scratch[:])
		c.buf = append(c.buf, c.scratch[:n]...)
		if err != nil {
			c.readErr = err
		}
	}
}

func (c *Conn) drain() ([]Message, error) {
	var msgs []Message
	off := 0
	for {
		m, n, err := parseMessage(c.buf[off:])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		m.Args = append([]byte(nil), m.Args...)
		msgs = append(msgs, m)
		off += n
	}
	c.buf = append(c.buf[:0], c.buf[off:]...)
	return msgs, nil
}

// Close closes the underlying stream. It may be called from another
// goroutine to unblock ReadBatch.
func (c *Conn) Close() error {
	return c.rw.Close()
}
