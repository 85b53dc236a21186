// Package gowlcore implements the core state machines of a Wayland
// display-server framework: the surface commit pipeline, xdg-shell and
// zwlr_layer_shell_v1 configure/ack handshakes, wp_presentation and
// wp_commit_timing_v1 feedback, seat input routing with grabs, the
// clipboard/primary/DnD selection machinery, and an XWayland bridge.
//
// gowlcore does not open a GPU device, render a pixel, or decide how
// surfaces are composited on screen — it owns protocol state, not
// pixels. A host compositor drives Core's event-loop sources (the wire
// socket, the X11 connection, selection-transfer fds, commit-timing
// deadlines) and supplies a Dispatcher that decodes each client request
// and calls into the packages Core exposes.
//
// # Quick start
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/gowlcore/gowlcore"
//	    "github.com/gowlcore/gowlcore/seat"
//	)
//
//	func main() {
//	    core := gowlcore.NewCore(
//	        gowlcore.DefaultConfig().WithSocketPath("/run/user/1000/wayland-1"),
//	        myDispatcher,
//	    )
//	    core.AddSeat("seat0", func(seat.Capability) {}) // TODO wire capability events
//
//	    if err := core.Run(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
//   - Core: lifecycle, wire listener, client bookkeeping, subsystem
//     wiring (surface.Tree, shell state machines, seats, selection
//     managers, the XWayland bridge).
//   - surface: the surface tree, per-role state bags, and the commit
//     pipeline with pluggable blockers.
//   - shell/xdg, shell/wlrlayer, shell/presentation, shell/committiming,
//     shell/toplevelicon: one package per shell protocol extension.
//   - seat: input routing, focus, grabs, and xkb-style modifier state
//     (seat/xkbstate).
//   - selection: clipboard/primary/DnD source and offer lifecycle.
//   - xwm: the XWayland bridge (window-surface pairing, selection
//     proxy, XDND).
//
// # Configuration
//
// Use Config to customize a Core:
//
//	config := gowlcore.DefaultConfig().
//	    WithSocketPath("/run/user/1000/wayland-1").
//	    WithXWayland(":1")
//
// # Dependencies
//
// gowlcore depends on:
//   - golang.org/x/sys/unix - Unix socket fd-passing for buffers and
//     selection transfers
//   - github.com/charmbracelet/log - structured, leveled logging at
//     component boundaries
//
// github.com/stretchr/testify is listed in go.mod, but the test suites
// use the standard testing package only.
package gowlcore
