// Package gfxhost presents the boot shim in a graphical window using
// ebiten. The window fires the ready signal on its first frame, maps
// window focus edges to exposure transitions, and asks its subscriber
// what to do with the built-in debug overlay on right click. The frame
// shows a readiness status line and the recent diagnostic feed.
package gfxhost

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wippyai/wasm-boot/diag"
	"github.com/wippyai/wasm-boot/host"
)

// Config shapes the window surface.
type Config struct {
	// Title is the window title. Empty defaults to "wasmboot".
	Title string
	// Width and Height size the window in pixels. Non-positive values
	// fall back to 960x864.
	Width  int
	Height int
	// Status reports module readiness for the status line.
	Status func() bool
	// Feed supplies the diagnostic events drawn under the status line.
	// Nil leaves the area empty.
	Feed *diag.Ring
}

// Environment is a host.Environment backed by an ebiten window. All
// signals are delivered from the game's update goroutine.
type Environment struct {
	mu          sync.Mutex
	ready       host.ReadyHandler
	visibility  host.VisibilityHandler
	contextMenu host.ContextMenuHandler
	ctx         context.Context

	cfg Config
}

// New builds a window surface. Subscribe handlers before Run.
func New(cfg Config) *Environment {
	if cfg.Title == "" {
		cfg.Title = "wasmboot"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width = 960
		cfg.Height = 864
	}
	return &Environment{cfg: cfg}
}

func (e *Environment) OnReady(h host.ReadyHandler) {
	e.mu.Lock()
	e.ready = h
	e.mu.Unlock()
}

func (e *Environment) OnVisibility(h host.VisibilityHandler) {
	e.mu.Lock()
	e.visibility = h
	e.mu.Unlock()
}

func (e *Environment) OnContextMenu(h host.ContextMenuHandler) {
	e.mu.Lock()
	e.contextMenu = h
	e.mu.Unlock()
}

// Run opens the window and blocks until it closes, escape is pressed
// or ctx is canceled. Must be called from the main goroutine. Module
// teardown stays with the caller.
func (e *Environment) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()

	ebiten.SetWindowTitle(e.cfg.Title)
	ebiten.SetWindowSize(e.cfg.Width, e.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(newGame(e))
}

func (e *Environment) expired() bool {
	e.mu.Lock()
	ctx := e.ctx
	e.mu.Unlock()
	return ctx != nil && ctx.Err() != nil
}

func (e *Environment) fireReady() {
	e.mu.Lock()
	h := e.ready
	ctx := e.ctx
	e.mu.Unlock()
	if h == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	h(ctx)
}

func (e *Environment) fireVisibility(v host.Visibility) {
	e.mu.Lock()
	h := e.visibility
	e.mu.Unlock()
	if h != nil {
		h(v)
	}
}

func (e *Environment) fireContextMenu() host.Decision {
	e.mu.Lock()
	h := e.contextMenu
	e.mu.Unlock()
	if h == nil {
		return host.Allow
	}
	return h()
}
