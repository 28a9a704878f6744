package host

import "context"

// Visibility is the host surface's exposure state.
type Visibility int

const (
	// Hidden means the surface lost focus or was covered.
	Hidden Visibility = iota
	// Visible means the surface is exposed again.
	Visible
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Decision tells the environment what to do with the default action
// attached to an interaction it asked about.
type Decision int

const (
	// Allow lets the environment run its default action.
	Allow Decision = iota
	// Suppress cancels the default action.
	Suppress
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Suppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// ReadyHandler receives the one-shot ready signal. The context stays
// valid for the lifetime of the host surface.
type ReadyHandler func(ctx context.Context)

// VisibilityHandler receives every exposure transition, in order.
type VisibilityHandler func(v Visibility)

// ContextMenuHandler decides what happens to the environment's default
// action when the user requests a context menu.
type ContextMenuHandler func() Decision

// Environment is a host surface that produces lifecycle signals. Each
// subscription replaces the previous handler for that signal; passing
// nil unsubscribes. Subscribe before the surface starts running, or
// signals may be missed. Implementations deliver all signals from a
// single goroutine and fire the ready signal only once, after the
// surface is fully constructed.
type Environment interface {
	OnReady(h ReadyHandler)
	OnVisibility(h VisibilityHandler)
	OnContextMenu(h ContextMenuHandler)
}
