// Package hosttest provides a scripted host.Environment for tests.
//
// An Env delivers exactly the signals the test fires, synchronously,
// so callers can assert on controller state between steps.
package hosttest

import (
	"context"
	"sync"

	"github.com/wippyai/wasm-boot/host"
)

// Env is a scripted environment. Fire methods invoke the subscribed
// handlers on the caller's goroutine and record what happened.
type Env struct {
	mu          sync.Mutex
	ready       host.ReadyHandler
	visibility  host.VisibilityHandler
	contextMenu host.ContextMenuHandler
	readyFired  bool

	menuAllowed    int
	menuSuppressed int
}

// New returns an environment with nothing subscribed.
func New() *Env {
	return &Env{}
}

// OnReady implements host.Environment.
func (e *Env) OnReady(h host.ReadyHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = h
}

// OnVisibility implements host.Environment.
func (e *Env) OnVisibility(h host.VisibilityHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visibility = h
}

// OnContextMenu implements host.Environment.
func (e *Env) OnContextMenu(h host.ContextMenuHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.contextMenu = h
}

// FireReady delivers the one-shot ready signal. Second and later calls
// are ignored, matching real environments.
func (e *Env) FireReady(ctx context.Context) {
	e.mu.Lock()
	if e.readyFired {
		e.mu.Unlock()
		return
	}
	e.readyFired = true
	h := e.ready
	e.mu.Unlock()

	if h != nil {
		h(ctx)
	}
}

// FireVisibility delivers one exposure transition.
func (e *Env) FireVisibility(v host.Visibility) {
	e.mu.Lock()
	h := e.visibility
	e.mu.Unlock()

	if h != nil {
		h(v)
	}
}

// FireContextMenu asks the handler about a context menu request,
// records whether the default action ran, and returns the decision.
// With no handler subscribed the default action runs.
func (e *Env) FireContextMenu() host.Decision {
	e.mu.Lock()
	h := e.contextMenu
	e.mu.Unlock()

	d := host.Allow
	if h != nil {
		d = h()
	}

	e.mu.Lock()
	if d == host.Suppress {
		e.menuSuppressed++
	} else {
		e.menuAllowed++
	}
	e.mu.Unlock()
	return d
}

// DefaultActions reports how many context menu requests ran the
// default action.
func (e *Env) DefaultActions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.menuAllowed
}

// Suppressed reports how many context menu requests were cancelled.
func (e *Env) Suppressed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.menuSuppressed
}
