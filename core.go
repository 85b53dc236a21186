package gowlcore

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/gowlcore/gowlcore/internal/wire"
	"github.com/gowlcore/gowlcore/internal/xproto"
	"github.com/gowlcore/gowlcore/seat"
	"github.com/gowlcore/gowlcore/selection"
	"github.com/gowlcore/gowlcore/shell/committiming"
	"github.com/gowlcore/gowlcore/shell/presentation"
	"github.com/gowlcore/gowlcore/shell/toplevelicon"
	"github.com/gowlcore/gowlcore/shell/wlrlayer"
	"github.com/gowlcore/gowlcore/surface"
	"github.com/gowlcore/gowlcore/xwm"
)

// Client is one connected Wayland client: its wire transport plus the
// per-binding state that is scoped to a single xdg_wm_base (xdg-shell has
// no cross-client sharing, unlike the seat/output/selection singletons
// Core owns at the compositor level).
type Client struct {
	Conn *wire.ServerConn

	mu      sync.Mutex
	objects map[wire.ObjectID]surface.ID
}

func newClient(conn *wire.ServerConn) *Client {
	return &Client{Conn: conn, objects: make(map[wire.ObjectID]surface.ID)}
}

// Dispatcher handles one decoded wire request for a client. Core calls it
// once per message read off the client's socket; everything it needs
// (the surface tree, seats, selection managers, shell states) hangs off
// Core itself. The generated per-interface opcode tables a full
// wayland-scanner output would provide are the caller's responsibility to
// plug in here — Core supplies the transport, object bookkeeping, and
// every domain state machine a dispatcher built against this module
// would call into.
type Dispatcher func(core *Core, client *Client, msg *wire.Message) error

// Core is the compositor-facing facade: it owns the wire listener, the
// surface tree, every shell and input state machine, and (optionally)
// the XWayland bridge. Run accepts clients on one loop and reads each
// client's requests on a goroutine of its own.
type Core struct {
	config Config
	log    *log.Logger

	listener *wire.Listener

	tree *surface.Tree

	wlrShell     *wlrlayer.ShellState
	presentation map[surface.ID]*presentation.Queue
	commitTiming *committiming.Manager
	icons        *toplevelicon.Registry

	seats      map[string]*seat.Seat
	selections map[string]*selection.Manager

	bridge *xwm.Bridge
	x11    *xproto.Connection

	dispatch Dispatcher

	mu       sync.Mutex
	clients  map[*wire.ServerConn]*Client
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}

	onBackendError func(error)
}

// NewCore creates a Core with an empty surface tree and no bound clients.
// Run must be called to start serving.
func NewCore(config Config, dispatch Dispatcher) *Core {
	tree := surface.NewTree()
	return &Core{
		config:       config,
		log:          config.logger(),
		tree:         tree,
		wlrShell:     wlrlayer.NewShellState(tree),
		presentation: make(map[surface.ID]*presentation.Queue),
		commitTiming: committiming.NewManager(),
		icons:        toplevelicon.NewRegistry(),
		seats:        make(map[string]*seat.Seat),
		selections:   make(map[string]*selection.Manager),
		dispatch:     dispatch,
		clients:      make(map[*wire.ServerConn]*Client),
	}
}

// Tree returns the compositor-wide surface tree.
func (c *Core) Tree() *surface.Tree { return c.tree }

// WlrShell returns the zwlr_layer_shell_v1 state machine.
func (c *Core) WlrShell() *wlrlayer.ShellState { return c.wlrShell }

// CommitTiming returns the wp_commit_timing_v1 manager.
func (c *Core) CommitTiming() *committiming.Manager { return c.commitTiming }

// Icons returns the xdg_toplevel_icon_manager_v1 registry.
func (c *Core) Icons() *toplevelicon.Registry { return c.icons }

// PresentationQueue returns (creating if necessary) the wp_presentation
// feedback queue for a surface.
func (c *Core) PresentationQueue(id surface.ID) *presentation.Queue {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.presentation[id]
	if !ok {
		q = &presentation.Queue{}
		c.presentation[id] = q
	}
	return q
}

// DropPresentationQueue discards the feedback queue for a destroyed
// surface, discarding every feedback still queued on it first.
func (c *Core) DropPresentationQueue(id surface.ID) {
	c.mu.Lock()
	q, ok := c.presentation[id]
	delete(c.presentation, id)
	c.mu.Unlock()
	if ok {
		q.DiscardAll()
	}
}

// AddSeat registers a new seat, wired to fire capability-change
// notifications and backed by its own selection manager (clipboard,
// primary, and DnD slots are per-seat).
func (c *Core) AddSeat(name string, onCapabilities func(seat.Capability)) *seat.Seat {
	s := seat.NewSeat(name, onCapabilities)
	c.mu.Lock()
	c.seats[name] = s
	c.selections[name] = selection.NewManager()
	c.mu.Unlock()
	return s
}

// Seat returns the seat registered under name, or nil.
func (c *Core) Seat(name string) *seat.Seat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seats[name]
}

// SelectionManager returns the named seat's selection manager, or nil.
func (c *Core) SelectionManager(seatName string) *selection.Manager {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selections[seatName]
}

// OnBackendError installs a callback for backend errors (buffer import
// failure, X11 request failure) per the error-handling design: logged and
// reported via a compositor callback, never propagated as a panic.
func (c *Core) OnBackendError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onBackendError = fn
}

func (c *Core) reportBackendError(err error) {
	c.log.Errorf("backend error: %v", err)
	c.mu.Lock()
	cb := c.onBackendError
	c.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

// Bridge returns the XWayland bridge, or nil if EnableXWayland was false.
func (c *Core) Bridge() *xwm.Bridge { return c.bridge }

// Run binds the wire listener at Config.SocketPath, optionally starts the
// XWayland bridge, and accepts clients until Stop is called. It blocks
// until the listener stops or a fatal setup error occurs.
func (c *Core) Run() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	if c.config.SocketPath == "" {
		c.mu.Unlock()
		return fmt.Errorf("gowlcore: Config.SocketPath is required")
	}
	c.running = true
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	c.mu.Unlock()

	defer close(c.doneCh)

	ln, err := wire.Listen(c.config.SocketPath)
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return fmt.Errorf("gowlcore: bind wire listener: %w", err)
	}
	c.listener = ln
	defer ln.Close()

	if c.config.EnableXWayland {
		if err := c.startXWayland(); err != nil {
			c.reportBackendError(fmt.Errorf("xwayland bridge disabled: %w", err))
		}
	}

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-c.stopCh:
				wg.Wait()
				return nil
			default:
				c.log.Errorf("accept: %v", err)
				wg.Wait()
				return err
			}
		}

		client := newClient(conn)
		c.mu.Lock()
		c.clients[conn] = client
		c.mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			c.serveClient(client)
		}()
	}
}

// serveClient reads and dispatches messages for one client until it
// disconnects or sends something the transport cannot decode. A malformed
// request from one client never aborts the compositor or any other
// client's connection.
func (c *Core) serveClient(client *Client) {
	defer c.dropClient(client)

	for {
		msg, err := client.Conn.RecvMessage()
		if err != nil {
			return
		}
		if c.dispatch == nil {
			continue
		}
		if err := c.dispatch(c, client, msg); err != nil {
			if pe, ok := AsProtocolError(err); ok {
				c.log.Warnf("protocol error from client: %v", pe)
				_ = client.Conn.SendError(msg.ObjectID, pe.Code, pe.Message)
				return
			}
			c.log.Errorf("dispatch error: %v", err)
		}
	}
}

func (c *Core) dropClient(client *Client) {
	_ = client.Conn.Close()
	c.mu.Lock()
	delete(c.clients, client.Conn)
	c.mu.Unlock()
}

// startXWayland connects the XWayland bridge over Config.XWaylandDisplay.
// Bridge teardown on a lost X11 connection is reported through the same
// backend-error callback as other backend failures and never aborts
// native Wayland clients.
func (c *Core) startXWayland() error {
	conn, err := xproto.ConnectTo(c.config.XWaylandDisplay)
	if err != nil {
		return fmt.Errorf("connect to X11 display %s: %w", c.config.XWaylandDisplay, err)
	}
	atoms, err := conn.InternStandardAtoms()
	if err != nil {
		return fmt.Errorf("intern standard atoms: %w", err)
	}

	bridge := xwm.NewBridge(conn, atoms, func(xwmID uint64, wlSurface surface.ID, x11Window xproto.ResourceID) {
		c.log.Infof("xwayland: paired surface=%v window=%v serial=%d", wlSurface, x11Window, xwmID)
	})

	utility, err := conn.CreateWindow(xproto.WindowConfig{Width: 1, Height: 1})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("create xwm utility window: %w", err)
	}
	bridge.SetUtilityWindow(utility)
	bridge.OnCloseRequested(func(window xproto.ResourceID) {
		c.log.Infof("xwayland: close requested for window=%v", window)
	})

	c.x11 = conn
	c.bridge = bridge

	go c.pumpXWayland(conn, bridge)
	return nil
}

// pumpXWayland reads events off the live X11 connection and hands each one
// to the bridge, exactly as serveClient reads and dispatches Wayland wire
// messages for a native client. The loop ends when the connection closes
// (StopXWayland or a lost connection), at which point WaitForEvent starts
// returning an error.
func (c *Core) pumpXWayland(conn *xproto.Connection, bridge *xwm.Bridge) {
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			if !bridge.Closed() {
				c.reportBackendError(fmt.Errorf("xwayland: event pump stopped: %w", err))
			}
			return
		}
		if err := bridge.HandleEvent(ev); err != nil {
			c.reportBackendError(fmt.Errorf("xwayland: handle event: %w", err))
		}
	}
}

// StopXWayland tears the bridge down without affecting native Wayland
// clients, reporting every surface that lost its X11 pairing.
func (c *Core) StopXWayland() []surface.ID {
	c.mu.Lock()
	bridge := c.bridge
	x11 := c.x11
	c.bridge = nil
	c.x11 = nil
	c.mu.Unlock()

	if bridge == nil {
		return nil
	}
	lost := bridge.Teardown()
	if x11 != nil {
		_ = x11.Close()
	}
	c.log.Infof("xwayland bridge stopped, %d surfaces lost their X11 pairing", len(lost))
	return lost
}

// Stop shuts the listener down and waits for in-flight client handlers to
// return.
func (c *Core) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return ErrNotRunning
	}
	c.running = false
	stopCh := c.stopCh
	doneCh := c.doneCh
	ln := c.listener
	c.mu.Unlock()

	close(stopCh)
	if ln != nil {
		_ = ln.Close()
	}
	if bridge := c.Bridge(); bridge != nil {
		c.StopXWayland()
	}
	<-doneCh
	return nil
}

// SocketPath returns the path the wire listener is bound to, valid only
// while Run is active.
func (c *Core) SocketPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listener == nil {
		return ""
	}
	return c.listener.Path()
}
