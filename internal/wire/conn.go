//go:build unix

package wire

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Errors returned by the server transport.
var (
	ErrConnNotConnected = errors.New("wire: connection not connected")
	ErrConnClosed       = errors.New("wire: connection closed")
	ErrNoMessage        = errors.New("wire: no message available")
)

// Listener accepts Wayland client connections on a Unix domain socket.
// It mirrors the lock file dance real compositors do: it creates
// "<path>" and "<path>.lock", and removes both on Close.
type Listener struct {
	path string
	ln   *net.UnixListener
	lock *os.File
}

// Listen creates a Listener bound to the given socket path, for example
// "$XDG_RUNTIME_DIR/wayland-1". Listen fails if another Listener holds
// "<path>.lock"; otherwise a socket file already at path is removed and
// replaced.
func Listen(path string) (*Listener, error) {
	lockPath := path + ".lock"
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("wire: acquire lock %s: %w", lockPath, err)
	}
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("wire: socket %s busy: %w", path, err)
	}

	_ = os.Remove(path)

	addr := &net.UnixAddr{Name: path, Net: "unix"}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		_ = lock.Close()
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("wire: listen on %s: %w", path, err)
	}

	return &Listener{path: path, ln: ln, lock: lock}, nil
}

// Path returns the socket path this listener is bound to.
func (l *Listener) Path() string { return l.path }

// Accept blocks until a client connects and returns a ServerConn for it.
func (l *Listener) Accept() (*ServerConn, error) {
	conn, err := l.ln.AcceptUnix()
	if err != nil {
		return nil, err
	}
	return newServerConn(conn)
}

// Close stops accepting connections and releases the socket and lock file.
func (l *Listener) Close() error {
	err := l.ln.Close()
	_ = l.lock.Close()
	_ = os.Remove(l.path + ".lock")
	_ = os.Remove(l.path)
	return err
}

// SerialAllocator hands out monotonically increasing protocol serials, used
// to correlate events (pointer enter, button, configure) with the requests
// that later reference them (set_cursor, ack_configure).
type SerialAllocator struct {
	next atomic.Uint32
}

// Next returns the next serial. Serial 0 is never issued so that callers can
// use it as a sentinel for "no serial yet".
func (a *SerialAllocator) Next() uint32 {
	return a.next.Add(1)
}

// ServerConn is one client's connection to the compositor. It owns object ID
// allocation for objects the compositor creates on behalf of this client and
// moves Message values, including attached file descriptors, across the
// wire.
type ServerConn struct {
	conn     *net.UnixConn
	connFile *os.File

	nextServerID atomic.Uint32 // IDs the compositor allocates for this client (wl_registry.bind targets etc).

	sendMu  sync.Mutex
	readBuf []byte

	closeOnce sync.Once
	closed    atomic.Bool
}

func newServerConn(conn *net.UnixConn) (*ServerConn, error) {
	file, err := conn.File()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("wire: get socket file: %w", err)
	}

	c := &ServerConn{
		conn:     conn,
		connFile: file,
		readBuf:  make([]byte, maxMessageSize),
	}
	// Client-allocated object IDs live in [1, 0xfeffffff]; server-allocated
	// IDs for bind targets reuse the same namespace and are tracked by the
	// caller's object table, not by this type.
	c.nextServerID.Store(1)

	return c, nil
}

// AllocServerID returns a fresh identifier for an object the compositor
// needs to track internally (not part of the wire protocol's own ID space,
// which clients choose themselves for new_id arguments).
func (c *ServerConn) AllocServerID() uint32 {
	return c.nextServerID.Add(1)
}

// SendMessage writes a message (event) to the client, passing any attached
// file descriptors via SCM_RIGHTS.
func (c *ServerConn) SendMessage(msg *Message) error {
	if c.closed.Load() {
		return ErrConnClosed
	}

	data, err := EncodeMessage(msg)
	if err != nil {
		return err
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if len(msg.FDs) > 0 {
		return c.sendWithFDs(data, msg.FDs)
	}

	_, err = c.conn.Write(data)
	return err
}

func (c *ServerConn) sendWithFDs(data []byte, fds []int) error {
	fd := int(c.connFile.Fd())
	rights := unix.UnixRights(fds...)
	return unix.Sendmsg(fd, data, rights, nil, 0)
}

// RecvMessage blocks until a request arrives from the client and returns it.
func (c *ServerConn) RecvMessage() (*Message, error) {
	if c.closed.Load() {
		return nil, ErrConnClosed
	}

	fd := int(c.connFile.Fd())

	// 256-byte control buffer: one SCM_RIGHTS message of up to 60 fds on
	// 64-bit Linux (16-byte header plus 4 bytes per fd).
	oob := make([]byte, 256)

	n, oobn, _, _, err := unix.Recvmsg(fd, c.readBuf, oob, 0)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrNoMessage
		}
		return nil, fmt.Errorf("wire: recvmsg failed: %w", err)
	}
	if n == 0 {
		return nil, ErrConnClosed
	}

	fds, err := parseFileDescriptors(oob[:oobn])
	if err != nil {
		return nil, err
	}

	decoder := NewDecoder(c.readBuf[:n])
	decoder.fds = fds

	msg, err := decoder.DecodeMessage()
	if err != nil {
		return nil, err
	}
	msg.FDs = fds
	return msg, nil
}

// SendError sends a wl_display.error event, the terminal response to a
// client protocol violation, then closes the connection. code is one of the
// DisplayError* constants or an interface-specific error enum value.
func (c *ServerConn) SendError(objectID ObjectID, code uint32, message string) error {
	builder := NewMessageBuilder()
	builder.PutObject(objectID)
	builder.PutUint32(code)
	builder.PutString(message)
	msg := builder.BuildMessage(1, DisplayEventError)

	sendErr := c.SendMessage(msg)
	_ = c.Close()
	return sendErr
}

// SendDeleteID sends wl_display.delete_id, telling the client an object ID
// it allocated is no longer in use and may be recycled.
func (c *ServerConn) SendDeleteID(id ObjectID) error {
	builder := NewMessageBuilder()
	builder.PutUint32(uint32(id))
	msg := builder.BuildMessage(1, DisplayEventDeleteID)
	return c.SendMessage(msg)
}

// Close closes the underlying connection. It is safe to call multiple times.
func (c *ServerConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.connFile != nil {
			_ = c.connFile.Close()
		}
		err = c.conn.Close()
	})
	return err
}

// Fd returns the underlying socket file descriptor, for integration with an
// external poll/epoll-driven event loop.
func (c *ServerConn) Fd() int {
	if c.connFile == nil {
		return -1
	}
	return int(c.connFile.Fd())
}

func parseFileDescriptors(oob []byte) ([]int, error) {
	if len(oob) == 0 {
		return nil, nil
	}

	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, fmt.Errorf("wire: parse control message failed: %w", err)
	}

	var fds []int
	for _, scm := range scms {
		if scm.Header.Level != unix.SOL_SOCKET || scm.Header.Type != unix.SCM_RIGHTS {
			continue
		}
		gotFDs, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return nil, fmt.Errorf("wire: parse unix rights failed: %w", err)
		}
		fds = append(fds, gotFDs...)
	}

	return fds, nil
}
