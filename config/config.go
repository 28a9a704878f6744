// Package config loads the boot manifest: a TOML file describing the
// module to run, overlaid by WASMBOOT_* environment variables. Flag
// handling stays with the caller; precedence is defaults, then file,
// then environment, then flags.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/wasm-boot/errors"
)

// Host kinds accepted by the manifest.
const (
	HostTerm     = "term"
	HostGfx      = "gfx"
	HostHeadless = "headless"
)

// Config is the boot manifest.
type Config struct {
	// Module is the path to the precompiled module binary.
	Module string `toml:"module" env:"WASMBOOT_MODULE"`
	// Entry overrides the module's entry export.
	Entry string `toml:"entry"`

	Runtime RuntimeConfig `toml:"runtime"`
	Run     RunConfig     `toml:"run"`
	Log     LogConfig     `toml:"log"`
	Host    HostConfig    `toml:"host"`
}

// RuntimeConfig bounds the execution engine.
type RuntimeConfig struct {
	MemoryLimitPages uint32 `toml:"memory_limit_pages"`
}

// RunConfig is the WASI surface handed to the module.
type RunConfig struct {
	Args []string `toml:"args"`
	// Env is passed to the guest as environment variables.
	Env map[string]string `toml:"env"`
	// Mounts are host:guest directory pairs, split on the first colon.
	Mounts []string `toml:"mounts"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" env:"WASMBOOT_LOG_LEVEL"`
}

// HostConfig picks and shapes the host environment.
type HostConfig struct {
	Kind   string `toml:"kind" env:"WASMBOOT_HOST"`
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Default returns the manifest used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Host: HostConfig{
			Kind:   HostTerm,
			Title:  "wasmboot",
			Width:  960,
			Height: 864,
		},
	}
}

// Load builds a Config from defaults, the optional manifest at path,
// and the environment overlay, in that order. An empty path skips the
// file step; a named file that cannot be read or parsed is an error.
// The result is not validated: callers apply flag overrides first,
// then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Config(fmt.Sprintf("load manifest %s", path), err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Config("parse environment overlay", err)
	}

	return cfg, nil
}

// Validate checks the assembled manifest.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Module) == "" {
		return errors.InvalidInput(errors.PhaseConfig, "module path is required")
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("log level %q, want debug, info, warn or error", c.Log.Level))
	}

	switch c.Host.Kind {
	case HostTerm, HostGfx, HostHeadless:
	default:
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("host kind %q, want term, gfx or headless", c.Host.Kind))
	}
	if c.Host.Kind == HostGfx && (c.Host.Width <= 0 || c.Host.Height <= 0) {
		return errors.InvalidInput(errors.PhaseConfig, "gfx host needs positive width and height")
	}

	for i, m := range c.Run.Mounts {
		hostDir, guestPath, ok := strings.Cut(m, ":")
		if !ok || strings.TrimSpace(hostDir) == "" || strings.TrimSpace(guestPath) == "" {
			return errors.InvalidInput(errors.PhaseConfig,
				fmt.Sprintf("mount[%d] %q, want host:guest", i, m))
		}
	}

	return nil
}

// MountMap splits the host:guest mount pairs. Call after Validate.
func (c Config) MountMap() map[string]string {
	if len(c.Run.Mounts) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Run.Mounts))
	for _, m := range c.Run.Mounts {
		hostDir, guestPath, _ := strings.Cut(m, ":")
		out[hostDir] = guestPath
	}
	return out
}

// ZapLevel maps the configured log level, defaulting to info.
func (c Config) ZapLevel() zapcore.Level {
	switch c.Log.Level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
