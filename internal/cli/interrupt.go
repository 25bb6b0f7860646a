package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type handlerKey struct{}

// InterruptHandler cancels a context on SIGINT or SIGTERM and prints a short
// notice the first time it does.
type InterruptHandler struct {
	writer      io.Writer
	sigChan     chan os.Signal
	note        string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer:  writer,
		sigChan: make(chan os.Signal, 1),
	}
}

// FromContext returns the handler installed by HandleInterrupts, or nil.
func FromContext(ctx context.Context) *InterruptHandler {
	h, _ := ctx.Value(handlerKey{}).(*InterruptHandler)
	return h
}

// HandleInterrupts returns a context that is canceled on interrupt and
// carries h for FromContext. The returned stop function releases the
// signal handler.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.WithValue(ctx, handlerKey{}, h))

	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-h.sigChan:
			h.mu.Lock()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage()
			}
			h.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	stop := func() {
		signal.Stop(h.sigChan)
		cancel()
	}
	return ctx, stop
}

// SetNote sets a line printed after the interrupt notice, such as what
// happens to work done so far.
func (h *InterruptHandler) SetNote(note string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.note = note
}

// showInterruptMessage must be called with h.mu held.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning("Interrupted, shutting down...")
	if h.note != "" {
		msg += "\n" + FormatInfo(h.note)
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort - we're shutting down anyway
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
