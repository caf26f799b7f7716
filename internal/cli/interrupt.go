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

// InterruptHandler turns SIGINT/SIGTERM into context cancellation and prints
// a friendly goodbye instead of dying silently.
type InterruptHandler struct {
	writer      io.Writer
	mentionCart bool
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a handler writing its messages to w, defaulting
// to stdout.
func NewInterruptHandler(w io.Writer) *InterruptHandler {
	if w == nil {
		w = os.Stdout
	}
	return &InterruptHandler{writer: w}
}

// HandleInterrupts installs the signal listener and returns a context that is
// cancelled on the first interrupt. With mentionCart set, the goodbye message
// reminds the user that pending cart items were not submitted.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, mentionCart bool) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.mentionCart = mentionCart

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals

		h.mu.Lock()
		if !h.interrupted {
			h.interrupted = true
			h.goodbye()
		}
		h.mu.Unlock()

		cancel()
	}()

	return ctx
}

// WasInterrupted reports whether an interrupt arrived.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.interrupted
}

func (h *InterruptHandler) goodbye() {
	msg := "\n\n" + FormatWarning("Interrupted!")
	if h.mentionCart {
		msg += "\n" + FormatInfo("Nothing was submitted. Your cart lives only for this session.")
	}
	msg += "\n" + FormatInfo("See you later!") + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}
