// Package termhost presents the boot shim inside a terminal using a
// bubbletea program. The surface fires the ready signal once the
// program is up, maps terminal focus changes to exposure transitions,
// and asks its subscriber what to do with the built-in context menu on
// right click. The view shows a readiness status line and the recent
// diagnostic feed.
package termhost

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/wasm-boot/diag"
	"github.com/wippyai/wasm-boot/host"
)

// Config shapes the terminal surface.
type Config struct {
	// Title is the text in the title bar. Empty defaults to "wasmboot".
	Title string
	// Status reports module readiness for the status line. While it
	// returns false the surface shows a spinner.
	Status func() bool
	// Feed supplies the diagnostic events rendered in the feed pane.
	// Nil leaves the pane empty.
	Feed *diag.Ring
}

// Environment is a host.Environment backed by a terminal program. All
// signals are delivered from the program's event loop goroutine.
type Environment struct {
	mu          sync.Mutex
	ready       host.ReadyHandler
	visibility  host.VisibilityHandler
	contextMenu host.ContextMenuHandler
	ctx         context.Context

	cfg Config
}

// New builds a terminal surface. Subscribe handlers before Run.
func New(cfg Config) *Environment {
	if cfg.Title == "" {
		cfg.Title = "wasmboot"
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

// Run starts the terminal program and blocks until the user quits or
// ctx is canceled. Module teardown stays with the caller.
func (e *Environment) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()

	p := tea.NewProgram(newBootModel(e),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
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
