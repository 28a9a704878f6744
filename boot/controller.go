package boot

import (
	"context"
	"fmt"
	"sync/atomic"

	wasmboot "github.com/wippyai/wasm-boot"
	"github.com/wippyai/wasm-boot/diag"
	"github.com/wippyai/wasm-boot/errors"
	"github.com/wippyai/wasm-boot/host"
)

// Controller coordinates one-time startup of an execution module and
// relays host lifecycle signals around it. It owns the process-wide
// readiness state: false until the module's initialization settles
// successfully, true from then on, never reset.
//
// All methods are safe for concurrent use. Initialization runs at most
// once per controller; there is no retry, timeout, or teardown path.
type Controller struct {
	mod  wasmboot.Module
	sink diag.Sink

	ready atomic.Bool
	began atomic.Bool
}

// New returns a controller for mod reporting into sink. A nil sink
// discards the journal.
func New(mod wasmboot.Module, sink diag.Sink) *Controller {
	if sink == nil {
		sink = diag.Nop()
	}
	return &Controller{mod: mod, sink: sink}
}

// Ready reports whether module initialization has completed
// successfully. Once true it stays true.
func (c *Controller) Ready() bool {
	return c.ready.Load()
}

// Initialize performs the one-shot startup: it journals the load,
// calls the module's Init, and blocks until that settles. On success
// the readiness flag flips and the journal records the full sequence.
// On failure the flag stays false, exactly one failure entry carrying
// the cause is journaled, and the error is returned. Callers must not
// report a returned error again.
//
// A second call does nothing and returns an already-initialized error,
// whether or not the first attempt succeeded.
func (c *Controller) Initialize(ctx context.Context) error {
	if !c.began.CompareAndSwap(false, true) {
		return errors.AlreadyInitialized("boot controller")
	}

	c.sink.Report(diag.NewEvent(diag.OpLoadStart))

	if err := c.mod.Init(ctx); err != nil {
		c.sink.Report(diag.Failure(err))
		return err
	}

	c.sink.Report(diag.NewEvent(diag.OpLoadSuccess))
	c.sink.Report(diag.NewEvent(diag.OpStarting))
	c.ready.Store(true)
	c.sink.Report(diag.NewEvent(diag.OpSuccess))
	return nil
}

// HandleReady is the host's ready signal. It spawns Initialize on a
// detached goroutine and returns immediately, so the host loop never
// blocks on module startup. Errors Initialize has already journaled
// are not reported again; a panic escaping the module's Init is
// recovered here and journaled, so no failure is ever unobserved and
// nothing propagates into the host loop.
func (c *Controller) HandleReady(ctx context.Context) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.sink.Report(diag.Failure(fmt.Errorf("startup trigger: %v", r)))
			}
		}()
		_ = c.Initialize(ctx)
	}()
}

// HandleVisibility is the host's exposure transition signal. Until the
// module is ready it does nothing. Once ready, every transition is
// journaled as an intent: pause when the host hides, resume when it
// becomes visible again. Intents are advisory only; the controller
// never calls into the module on their behalf.
func (c *Controller) HandleVisibility(v host.Visibility) {
	if !c.ready.Load() {
		return
	}
	switch v {
	case host.Hidden:
		c.sink.Report(diag.NewEvent(diag.OpPauseIntent))
	case host.Visible:
		c.sink.Report(diag.NewEvent(diag.OpResumeIntent))
	}
}

// HandleContextMenu is the host's context menu request signal. The
// default host action is suppressed on every request, regardless of
// readiness.
func (c *Controller) HandleContextMenu() host.Decision {
	return host.Suppress
}

// Attach subscribes the controller's handlers to env. This is the
// whole registration surface: one named handler per signal, bound
// once, before the environment starts delivering.
func (c *Controller) Attach(env host.Environment) {
	env.OnReady(c.HandleReady)
	env.OnVisibility(c.HandleVisibility)
	env.OnContextMenu(c.HandleContextMenu)
}
