package engine

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-boot/errors"
)

// entryCandidates are tried in order when no entry export is
// configured.
var entryCandidates = []string{"_start", "run", "main"}

// reactorInit is the conventional synchronous setup export of reactor
// style modules. When present it runs during Init, before the entry
// export is launched, and its failure fails initialization.
const reactorInit = "_initialize"

// Module is a compiled execution module. Init brings it to life
// exactly once; afterwards the module runs autonomously and the shim
// does not call into it again.
type Module struct {
	engine   *Engine
	compiled wazero.CompiledModule
	cfg      *RunConfig

	began atomic.Bool
	mu    sync.Mutex
	inst  *Instance
}

// Init instantiates the module and starts its autonomous execution.
// It blocks until initialization settles: the instance exists, any
// _initialize export has run, and the entry export has been handed its
// own goroutine. A module exporting no entry initializes successfully
// and stays passive. Init runs at most once per module.
func (m *Module) Init(ctx context.Context) error {
	if !m.began.CompareAndSwap(false, true) {
		return errors.AlreadyInitialized("module")
	}

	instMod, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, m.moduleConfig())
	if err != nil {
		return errors.Instantiation(err)
	}

	if initFn := instMod.ExportedFunction(reactorInit); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			_ = instMod.Close(ctx)
			return errors.StartFailed(reactorInit, err)
		}
	}

	entry, name, err := m.resolveEntry(instMod)
	if err != nil {
		_ = instMod.Close(ctx)
		return err
	}

	inst := newInstance(instMod, name)
	if entry == nil {
		inst.finish(nil)
	} else {
		inst.start(entry)
	}

	m.mu.Lock()
	m.inst = inst
	m.mu.Unlock()

	if name == "" {
		Logger().Info("module initialized, no entry export, staying passive")
	} else {
		Logger().Info("module initialized",
			zap.String("entry", name))
	}
	return nil
}

// Instance returns the live instance, or nil before Init succeeds.
func (m *Module) Instance() *Instance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inst
}

func (m *Module) moduleConfig() wazero.ModuleConfig {
	c := m.cfg

	argv0 := c.name
	if argv0 == "" {
		argv0 = "module"
	}

	// Start functions are disabled so instantiation never runs guest
	// code; the entry export is launched explicitly by Init.
	modCfg := wazero.NewModuleConfig().
		WithName(c.name).
		WithStartFunctions().
		WithArgs(append([]string{argv0}, c.args...)...)

	for k, v := range c.env {
		modCfg = modCfg.WithEnv(k, v)
	}
	if c.stdout != nil {
		modCfg = modCfg.WithStdout(c.stdout)
	}
	if c.stderr != nil {
		modCfg = modCfg.WithStderr(c.stderr)
	}
	if len(c.mounts) > 0 {
		fsCfg := wazero.NewFSConfig()
		for hostDir, guestPath := range c.mounts {
			fsCfg = fsCfg.WithDirMount(hostDir, guestPath)
		}
		modCfg = modCfg.WithFSConfig(fsCfg)
	}
	return modCfg
}

// resolveEntry picks the export that starts the module. A nil function
// with a nil error means the module has no entry and stays passive.
func (m *Module) resolveEntry(mod api.Module) (api.Function, string, error) {
	if m.cfg.entry != "" {
		fn := mod.ExportedFunction(m.cfg.entry)
		if fn == nil {
			return nil, "", errors.NotFound(errors.PhaseInit, "entry export", m.cfg.entry)
		}
		return fn, m.cfg.entry, nil
	}
	for _, name := range entryCandidates {
		if fn := mod.ExportedFunction(name); fn != nil {
			return fn, name, nil
		}
	}
	return nil, "", nil
}

// FuncInfo describes one exported function.
type FuncInfo struct {
	Name    string
	Params  int
	Results int
}

// MemoryInfo describes one exported memory.
type MemoryInfo struct {
	Name     string
	MinPages uint32
	MaxPages uint32
	HasMax   bool
}

// Description is a static summary of a compiled module.
type Description struct {
	Name      string
	Entry     string
	Functions []FuncInfo
	Memories  []MemoryInfo
}

// Describe inspects the compiled module without instantiating it:
// exported functions and memories, plus the entry export Init would
// launch.
func (m *Module) Describe() Description {
	d := Description{Name: m.compiled.Name()}

	exported := m.compiled.ExportedFunctions()
	if m.cfg.entry != "" {
		d.Entry = m.cfg.entry
	} else {
		for _, name := range entryCandidates {
			if _, ok := exported[name]; ok {
				d.Entry = name
				break
			}
		}
	}

	for name, def := range exported {
		d.Functions = append(d.Functions, FuncInfo{
			Name:    name,
			Params:  len(def.ParamTypes()),
			Results: len(def.ResultTypes()),
		})
	}
	sort.Slice(d.Functions, func(i, j int) bool {
		return d.Functions[i].Name < d.Functions[j].Name
	})

	for name, def := range m.compiled.ExportedMemories() {
		mi := MemoryInfo{Name: name, MinPages: def.Min()}
		if max, ok := def.Max(); ok {
			mi.MaxPages = max
			mi.HasMax = true
		}
		d.Memories = append(d.Memories, mi)
	}
	sort.Slice(d.Memories, func(i, j int) bool {
		return d.Memories[i].Name < d.Memories[j].Name
	})

	return d
}
