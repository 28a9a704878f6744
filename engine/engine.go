package engine

import (
	"context"
	"encoding/binary"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/wippyai/wasm-boot/errors"
)

// Engine owns a wazero runtime and compiles execution modules for it.
// One engine can load several modules; closing it invalidates them all.
type Engine struct {
	runtime wazero.Runtime
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means wazero's default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32
}

// New creates an engine with default configuration.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration. The WASI
// preview1 host module is instantiated once per engine so that
// self-contained modules have a system interface to run against.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig().
		WithCloseOnContextDone(true)

	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, errors.Wrap(errors.PhaseInit, errors.KindInstantiation, err,
			"instantiate WASI host module")
	}

	return &Engine{runtime: r}, nil
}

// Load compiles wasmBytes into a Module bound to cfg. Only core
// modules are accepted; component model binaries carry a layer marker
// in the version field and are rejected up front.
func (e *Engine) Load(ctx context.Context, wasmBytes []byte, cfg *RunConfig) (*Module, error) {
	if len(wasmBytes) < 8 ||
		wasmBytes[0] != 0x00 || wasmBytes[1] != 0x61 ||
		wasmBytes[2] != 0x73 || wasmBytes[3] != 0x6D {
		return nil, errors.Load("not a WebAssembly binary", nil)
	}
	if version := binary.LittleEndian.Uint32(wasmBytes[4:8]); version > 1 {
		return nil, errors.Load("component model binary, need a core module", nil)
	}

	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if cfg == nil {
		cfg = NewRunConfig()
	}
	return &Module{engine: e, compiled: compiled, cfg: cfg}, nil
}

// Close releases the runtime and everything instantiated in it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
