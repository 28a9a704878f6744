// Package wasmboot provides a host-side bootstrap shim for precompiled,
// self-starting WebAssembly modules.
//
// The shim owns exactly one piece of state (a readiness flag) and four
// behaviors: one-shot asynchronous initialization of an external module,
// readiness tracking, relaying host visibility transitions as pause/resume
// intents, and suppressing the host's default context-menu action. The
// module itself (an emulator core, a sandboxed tool, any self-contained
// program) is an opaque collaborator: the hard work lives inside its
// binary, not here.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	wasmboot/            Root package with the external-module contract
//	├── boot/            Lifecycle controller: init, readiness, intents
//	├── diag/            Diagnostic journal: events, sinks, recorder, ring
//	├── host/            Host-environment signals and subscriptions
//	│   ├── gfxhost/     Graphical window host (ebiten)
//	│   ├── hosttest/    Scripted environment for tests
//	│   └── termhost/    Terminal host (bubbletea)
//	├── engine/          wazero-backed module loading and self-start
//	├── errors/          Structured error types
//	└── config/          Boot manifest and environment overlay
//
// # Quick Start
//
// Load a module, wire it to a controller, and run a host:
//
//	eng, err := engine.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	mod, err := eng.Load(ctx, wasmBytes, engine.NewRunConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctrl := boot.New(mod, diag.NewLogSink(logger))
//	env := termhost.New(termhost.Config{Status: ctrl.Ready})
//	ctrl.Attach(env)
//	err = env.Run(ctx)
//
// # Lifecycle Contract
//
// The controller's readiness flag starts false, becomes true exactly once
// when Module.Init settles successfully, and never resets. Initialization
// failures are journaled and absorbed; they are never fatal to the host.
// Visibility transitions produce pause/resume intents only: the shim
// signals desired behavior, it does not enforce it on the module.
//
// # Thread Safety
//
// Host environments dispatch handlers from a single goroutine. The
// controller is safe for that model plus one detached initialization
// task; the readiness flag is the only shared state and is atomic.
package wasmboot
