package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/wasm-boot/boot"
	"github.com/wippyai/wasm-boot/config"
	"github.com/wippyai/wasm-boot/diag"
	"github.com/wippyai/wasm-boot/engine"
	"github.com/wippyai/wasm-boot/host/gfxhost"
	"github.com/wippyai/wasm-boot/host/termhost"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to manifest TOML file")
		modulePath = flag.String("module", "", "Path to module wasm file (overrides manifest)")
		entry      = flag.String("entry", "", "Entry export to launch (overrides manifest)")
		hostKind   = flag.String("host", "", "Host surface: term, gfx or headless (overrides manifest)")
		describe   = flag.Bool("describe", false, "Describe the module and exit")
		verbose    = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if flag.NFlag() == 0 && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: wasmboot [-config boot.toml] [flags] <module.wasm>")
		fmt.Fprintln(os.Stderr, "       wasmboot -describe <module.wasm>")
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	module := *modulePath
	if module == "" && flag.NArg() > 0 {
		module = flag.Arg(0)
	}

	if err := run(*configPath, module, *entry, *hostKind, *describe, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, modulePath, entry, hostKind string, describe, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if modulePath != "" {
		cfg.Module = modulePath
	}
	if entry != "" {
		cfg.Entry = entry
	}
	if hostKind != "" {
		cfg.Host.Kind = hostKind
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kind := cfg.Host.Kind
	if kind == config.HostTerm && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal, using the headless host")
		kind = config.HostHeadless
	}

	logger, err := newLogger(cfg, kind == config.HostTerm)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()
	engine.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wasmBytes, err := os.ReadFile(cfg.Module)
	if err != nil {
		return fmt.Errorf("read module: %w", err)
	}

	eng, err := engine.NewWithConfig(ctx, &engine.Config{
		MemoryLimitPages: cfg.Runtime.MemoryLimitPages,
	})
	if err != nil {
		return err
	}
	defer eng.Close(context.Background())

	runCfg := engine.NewRunConfig().
		WithName(filepath.Base(cfg.Module)).
		WithEntry(cfg.Entry).
		WithArgs(cfg.Run.Args).
		WithEnv(cfg.Run.Env).
		WithMounts(cfg.MountMap())
	if kind == config.HostHeadless {
		runCfg.WithStdout(os.Stdout).WithStderr(os.Stderr)
	}

	mod, err := eng.Load(ctx, wasmBytes, runCfg)
	if err != nil {
		return err
	}

	if describe {
		printDescription(cfg.Module, mod.Describe())
		return nil
	}

	// Visual hosts show the diagnostic journal in their own surface;
	// the headless host logs it instead.
	feed := diag.NewRing(diag.DefaultRingSize)
	var sink diag.Sink = feed
	if kind == config.HostHeadless {
		sink = diag.NewLogSink(logger)
	}
	ctrl := boot.New(mod, sink)

	switch kind {
	case config.HostGfx:
		err = runGfx(ctx, ctrl, cfg, feed)
	case config.HostHeadless:
		err = runHeadless(ctx, logger, ctrl, mod)
	default:
		err = runTerm(ctx, ctrl, cfg, feed)
	}

	if inst := mod.Instance(); inst != nil {
		cerr := inst.Close(context.Background())
		if err == nil {
			err = cerr
		}
	}
	return err
}

func runTerm(ctx context.Context, ctrl *boot.Controller, cfg config.Config, feed *diag.Ring) error {
	env := termhost.New(termhost.Config{
		Title:  cfg.Host.Title,
		Status: ctrl.Ready,
		Feed:   feed,
	})
	ctrl.Attach(env)

	err := env.Run(ctx)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Interrupted, not a surface failure.
		return nil
	}
	return err
}

func runGfx(ctx context.Context, ctrl *boot.Controller, cfg config.Config, feed *diag.Ring) error {
	env := gfxhost.New(gfxhost.Config{
		Title:  cfg.Host.Title,
		Width:  cfg.Host.Width,
		Height: cfg.Host.Height,
		Status: ctrl.Ready,
		Feed:   feed,
	})
	ctrl.Attach(env)
	return env.Run(ctx)
}

// runHeadless boots the module without a surface and waits for it to
// finish or for an interrupt.
func runHeadless(ctx context.Context, log *zap.Logger, ctrl *boot.Controller, mod *engine.Module) error {
	if err := ctrl.Initialize(ctx); err != nil {
		return err
	}

	inst := mod.Instance()
	select {
	case <-inst.Done():
		return inst.Err()
	case <-ctx.Done():
		log.Info("interrupted, closing module")
		return inst.Close(context.Background())
	}
}

// newLogger builds the process logger. The terminal host owns the
// screen, so its logs go to a file in debug mode and nowhere otherwise.
func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	if interactive {
		if cfg.ZapLevel() != zapcore.DebugLevel {
			return zap.NewNop(), nil
		}
		zcfg.OutputPaths = []string{"wasmboot.log"}
		zcfg.ErrorOutputPaths = []string{"wasmboot.log"}
	}
	return zcfg.Build()
}

func printDescription(path string, d engine.Description) {
	fmt.Printf("Module: %s\n", path)
	if d.Name != "" {
		fmt.Printf("Name: %s\n", d.Name)
	}
	if d.Entry != "" {
		fmt.Printf("Entry: %s\n", d.Entry)
	} else {
		fmt.Printf("Entry: none (passive module)\n")
	}

	fmt.Printf("\nExported functions:\n")
	if len(d.Functions) == 0 {
		fmt.Printf("  (none)\n")
	}
	for _, f := range d.Functions {
		fmt.Printf("  %s  params=%d results=%d\n", f.Name, f.Params, f.Results)
	}

	if len(d.Memories) > 0 {
		fmt.Printf("\nExported memories:\n")
		for _, m := range d.Memories {
			if m.HasMax {
				fmt.Printf("  %s  %d..%d pages\n", m.Name, m.MinPages, m.MaxPages)
			} else {
				fmt.Printf("  %s  %d.. pages\n", m.Name, m.MinPages)
			}
		}
	}
}
