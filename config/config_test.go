package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/wasm-boot/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wasmboot.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Host.Kind != HostTerm {
		t.Errorf("default host kind = %q, want term", cfg.Host.Kind)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Log.Level)
	}
	if cfg.Host.Width != 960 || cfg.Host.Height != 864 {
		t.Errorf("default window = %dx%d", cfg.Host.Width, cfg.Host.Height)
	}
	if cfg.Module != "" {
		t.Errorf("default module = %q, want empty", cfg.Module)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeManifest(t, `
module = "core.wasm"
entry = "run"

[runtime]
memory_limit_pages = 1024

[run]
args = ["game.rom", "--skip-boot"]
mounts = ["./roms:/roms"]

[run.env]
RUST_BACKTRACE = "1"

[log]
level = "debug"

[host]
kind = "headless"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Module != "core.wasm" {
		t.Errorf("module = %q", cfg.Module)
	}
	if cfg.Entry != "run" {
		t.Errorf("entry = %q", cfg.Entry)
	}
	if cfg.Runtime.MemoryLimitPages != 1024 {
		t.Errorf("memory limit = %d", cfg.Runtime.MemoryLimitPages)
	}
	if len(cfg.Run.Args) != 2 || cfg.Run.Args[0] != "game.rom" {
		t.Errorf("args = %v", cfg.Run.Args)
	}
	if cfg.Run.Env["RUST_BACKTRACE"] != "1" {
		t.Errorf("env = %v", cfg.Run.Env)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Host.Kind != HostHeadless {
		t.Errorf("host kind = %q", cfg.Host.Kind)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Host.Title != "wasmboot" {
		t.Errorf("title = %q, want default", cfg.Host.Title)
	}
}

func TestLoad_MissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("missing named manifest did not error")
	}
	if !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("error = %v, want invalid_data", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeManifest(t, `
module = "from-file.wasm"

[log]
level = "warn"

[host]
kind = "term"
`)

	t.Setenv("WASMBOOT_MODULE", "from-env.wasm")
	t.Setenv("WASMBOOT_LOG_LEVEL", "error")
	t.Setenv("WASMBOOT_HOST", "headless")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Module != "from-env.wasm" {
		t.Errorf("module = %q, want env value", cfg.Module)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %q, want env value", cfg.Log.Level)
	}
	if cfg.Host.Kind != HostHeadless {
		t.Errorf("host kind = %q, want env value", cfg.Host.Kind)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Module = "core.wasm"
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:     "missing module",
			mutate:   func(c *Config) { c.Module = "  " },
			contains: "module path",
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Log.Level = "verbose" },
			contains: "log level",
		},
		{
			name:     "bad host kind",
			mutate:   func(c *Config) { c.Host.Kind = "browser" },
			contains: "host kind",
		},
		{
			name: "gfx without size",
			mutate: func(c *Config) {
				c.Host.Kind = HostGfx
				c.Host.Width = 0
			},
			contains: "width",
		},
		{
			name:     "bad mount",
			mutate:   func(c *Config) { c.Run.Mounts = []string{"no-separator"} },
			contains: "mount[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.contains == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate passed, want error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err, tt.contains)
			}
		})
	}
}

func TestMountMap(t *testing.T) {
	cfg := Default()
	cfg.Run.Mounts = []string{"./roms:/roms", "/tmp/save:/save"}

	m := cfg.MountMap()
	if m["./roms"] != "/roms" || m["/tmp/save"] != "/save" {
		t.Errorf("MountMap = %v", m)
	}

	cfg.Run.Mounts = nil
	if cfg.MountMap() != nil {
		t.Error("MountMap on empty mounts should be nil")
	}
}

func TestZapLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		cfg := Config{Log: LogConfig{Level: tt.level}}
		if got := cfg.ZapLevel(); got != tt.want {
			t.Errorf("ZapLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
