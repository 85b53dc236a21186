package gowlcore

import (
	"github.com/charmbracelet/log"
)

// Config configures a Core.
type Config struct {
	// SocketPath is the AF_UNIX path the wire listener binds to.
	// DefaultConfig leaves it empty; picking a path (wayland-server
	// conventionally uses $XDG_RUNTIME_DIR/wayland-0) is left to the host
	// compositor. Core.Run requires a non-empty path.
	SocketPath string

	// EnableXWayland starts the XWayland bridge (internal/xproto
	// connection, window-surface pairing, selection proxying, XDND)
	// alongside the native wire listener.
	EnableXWayland bool

	// XWaylandDisplay is the X11 display name (e.g. ":1") the bridge
	// connects to once EnableXWayland is set. Ignored otherwise.
	XWaylandDisplay string

	// Logger receives structured, leveled logs at component boundaries:
	// bridge teardown, protocol errors, backend failures. Never written
	// to from hot input-dispatch paths. A nil Logger falls back to
	// log.Default() from github.com/charmbracelet/log.
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults: XWayland disabled, default
// logger.
func DefaultConfig() Config {
	return Config{
		EnableXWayland: false,
		Logger:         log.Default(),
	}
}

// WithSocketPath returns a copy of c with SocketPath set.
func (c Config) WithSocketPath(path string) Config {
	c.SocketPath = path
	return c
}

// WithXWayland returns a copy of c with the XWayland bridge enabled
// against the given X11 display name.
func (c Config) WithXWayland(display string) Config {
	c.EnableXWayland = true
	c.XWaylandDisplay = display
	return c
}

// WithLogger returns a copy of c with Logger set.
func (c Config) WithLogger(logger *log.Logger) Config {
	c.Logger = logger
	return c
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
