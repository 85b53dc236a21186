package xwm

import (
	"errors"
	"sync"
)

// IncrChunkSize is the size of each property-append chunk used once a
// selection transfer switches into ICCCM INCR mode (the owner is telling
// us the value would not fit in a single ChangeProperty request).
const IncrChunkSize = 64 * 1024

// ErrTransferFailed is returned when a transfer is aborted before
// completion, either by the peer disappearing or by an explicit Cancel.
var ErrTransferFailed = errors.New("xwm: selection transfer failed")

// TransferDirection is which way bytes are moving across the bridge.
type TransferDirection int

const (
	// DirectionToX11 means a Wayland client's selection data is being
	// written into an X11 requestor's window property.
	DirectionToX11 TransferDirection = iota
	// DirectionFromX11 means an X11 selection owner's data is being
	// streamed into a Wayland client's receive fd.
	DirectionFromX11
)

// IncrTransfer drives one selection transfer that may or may not need
// ICCCM's INCR chunking, in either direction. Small transfers complete in
// one Write; transfers at or above IncrChunkSize switch the peer into
// INCR mode and proceed chunk by chunk, each chunk released only once the
// peer has consumed (deleted) the previous one.
type IncrTransfer struct {
	mu sync.Mutex

	direction TransferDirection
	mime      string

	total     int64 // -1 until known (streaming sources may not know ahead of time)
	sent      int64
	incr      bool
	done      bool
	failed    bool
	onChunk   func(chunk []byte) error
	onComplete func(err error)
}

// NewIncrTransfer creates a transfer. onChunk is called with each chunk of
// data ready to hand to the peer (a single ChangeProperty for a
// non-INCR transfer, or successive chunks once INCR mode engages).
// onComplete is called exactly once, with a non-nil error only on
// failure or cancellation.
func NewIncrTransfer(direction TransferDirection, mime string, onChunk func([]byte) error, onComplete func(error)) *IncrTransfer {
	return &IncrTransfer{
		direction:  direction,
		mime:       mime,
		total:      -1,
		onChunk:    onChunk,
		onComplete: onComplete,
	}
}

// Mime returns the mime type the transfer was created with (the bridge's
// own INCR reads and writes pass an empty string).
func (t *IncrTransfer) Mime() string { return t.mime }

// Write pushes the next chunk of source data through the transfer. Once
// the cumulative size reaches IncrChunkSize, the transfer switches into
// INCR mode for all subsequent chunks (a detail only observable through
// Progress, since the peer is responsible for announcing INCR via the
// property type on its own side of the exchange).
func (t *IncrTransfer) Write(p []byte) (int, error) {
	t.mu.Lock()
	if t.done || t.failed {
		t.mu.Unlock()
		return 0, ErrTransferFailed
	}
	if t.sent+int64(len(p)) >= IncrChunkSize {
		t.incr = true
	}
	onChunk := t.onChunk
	t.mu.Unlock()

	if err := onChunk(p); err != nil {
		t.fail(err)
		return 0, err
	}

	t.mu.Lock()
	t.sent += int64(len(p))
	t.mu.Unlock()
	return len(p), nil
}

// Finish marks the transfer complete successfully (an empty final INCR
// chunk was sent, or a non-INCR single write was the whole payload).
func (t *IncrTransfer) Finish() {
	t.mu.Lock()
	if t.done || t.failed {
		t.mu.Unlock()
		return
	}
	t.done = true
	cb := t.onComplete
	t.mu.Unlock()
	if cb != nil {
		cb(nil)
	}
}

// Cancel aborts the transfer, e.g. because the X11 requestor's window was
// destroyed mid-transfer or the Wayland fd closed early.
func (t *IncrTransfer) Cancel() { t.fail(ErrTransferFailed) }

func (t *IncrTransfer) fail(err error) {
	t.mu.Lock()
	if t.done || t.failed {
		t.mu.Unlock()
		return
	}
	t.failed = true
	cb := t.onComplete
	t.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

// SetTotal records the transfer's known total size, when available ahead
// of time (e.g. the source is a file, not a pipe). Progress reports -1
// for Total until this is called.
func (t *IncrTransfer) SetTotal(total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = total
}

// Progress reports bytes sent so far, the known total (-1 if unknown),
// and whether the transfer has switched into INCR mode.
func (t *IncrTransfer) Progress() (sent, total int64, incr bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sent, t.total, t.incr
}

// Done reports whether the transfer has concluded, successfully or not.
func (t *IncrTransfer) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done || t.failed
}

// Failed reports whether the transfer concluded with an error.
func (t *IncrTransfer) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}
