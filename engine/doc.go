// Package engine hosts precompiled WebAssembly modules on wazero.
//
// An Engine wraps one wazero runtime with the WASI preview1 host
// module installed. Load compiles a core module binary into a Module
// bound to a RunConfig describing its identity, WASI surface, and
// entry export. Module.Init performs the one-shot bring-up: it
// instantiates the module with start functions disabled, runs an
// _initialize export synchronously when one exists, then launches the
// entry export (configured, or the first of _start, run, main) on a
// dedicated goroutine. From that point the module executes
// autonomously; the resulting Instance only exposes completion
// (Done, Err) and teardown (Close).
//
// The boundary stays opaque: no typed calls, no memory access, no
// control beyond launch and close.
package engine
