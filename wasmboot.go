package wasmboot

import "context"

// Module is the boundary to a precompiled, self-starting execution module.
// The shim invokes Init exactly once and otherwise leaves the module alone:
// it never calls typed exports, inspects module state, or controls execution
// after startup.
type Module interface {
	// Init performs one-shot initialization and blocks until it settles.
	// On success the module has begun its own autonomous execution as a
	// side effect of the call; there is no separate start operation.
	Init(ctx context.Context) error
}
