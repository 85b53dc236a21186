//go:build unix

// Package wire implements the Wayland wire protocol codec and the
// server-side transport that carries it.
//
// This package provides the low-level binary framing used by a Wayland
// compositor, without linking against libwayland-server.so. It speaks
// directly to Unix domain sockets, so the whole stack stays zero-CGO.
//
// # Wire Protocol
//
// Wayland uses a binary wire protocol over Unix domain sockets. Messages
// consist of a header (object ID + size/opcode) followed by arguments.
// All values are encoded as 32-bit little-endian words.
//
// The wire format is:
//
//	+--------+--------+--------+--------+
//	| Object ID (4 bytes)               |
//	+--------+--------+--------+--------+
//	| Size (16 bits) | Opcode (16 bits) |
//	+--------+--------+--------+--------+
//	| Arguments...                      |
//	+--------+--------+--------+--------+
//
// # Argument Types
//
// The protocol supports several argument types:
//   - int: Signed 32-bit integer
//   - uint: Unsigned 32-bit integer
//   - fixed: Signed 24.8 fixed-point number
//   - string: Length-prefixed UTF-8 string (padded to 4 bytes)
//   - object: Object ID (uint32)
//   - new_id: New object ID (uint32), sometimes with interface+version
//   - array: Length-prefixed byte array (padded to 4 bytes)
//   - fd: File descriptor (passed via SCM_RIGHTS)
//
// # Server Transport
//
// Listener accepts client connections on a Unix socket and hands back a
// *ServerConn per client. ServerConn exposes SendMessage/RecvMessage for
// moving Message values across the wire, including any attached file
// descriptors, and a SerialAllocator for handing out the monotonically
// increasing serials the protocol uses to correlate events (enter/leave,
// button presses, configure acks) with later requests.
//
// Everything above the transport -- object lifetimes, dispatch tables,
// the surface and shell state machines -- lives in the packages that
// import wire; this package only owns bytes on the wire.
//
// # File Descriptors
//
// Wayland uses SCM_RIGHTS to pass file descriptors for shared memory
// buffers and DMA-BUF handles. This requires special socket handling
// via the golang.org/x/sys/unix package.
//
// # Thread Safety
//
// A ServerConn's Send side is safe for concurrent use; the compositor
// event loop itself remains single-threaded and the Recv side is driven
// from that one goroutine per connection.
package wire
