// Package signals adapts OS termination signals into a context.Context
// cancellation. Beyond a plain "any signal means shut down" Context(),
// it also reports which signal arrived, since the CLI assigns SIGINT
// and every other terminating signal different exit codes.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var watchedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Handler pairs a cancellable context with the signal, if any, that
// cancelled it.
type Handler struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	caught os.Signal
}

// NewHandler registers for SIGINT and SIGTERM and returns a Handler
// whose Context is cancelled on the first one received. A second
// signal terminates the process immediately with exit code 1, so an
// impatient operator can always force an exit.
func NewHandler() *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handler{ctx: ctx, cancel: cancel}

	c := make(chan os.Signal, 2)
	signal.Notify(c, watchedSignals...)
	go func() {
		sig := <-c
		h.mu.Lock()
		h.caught = sig
		h.mu.Unlock()
		cancel()

		<-c
		os.Exit(1)
	}()

	return h
}

// Context returns the context that is cancelled when a watched signal
// arrives.
func (h *Handler) Context() context.Context { return h.ctx }

// Caught returns the signal that cancelled Context, or nil if none has
// arrived yet.
func (h *Handler) Caught() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.caught
}

// IsInterrupt reports whether the signal that cancelled Context was
// SIGINT specifically, for the CLI's exit-code distinction (3 for
// SIGINT, 2 for any other caught signal).
func (h *Handler) IsInterrupt() bool {
	return h.Caught() == os.Interrupt
}
