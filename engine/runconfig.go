package engine

import "io"

// RunConfig configures how a module instance runs: its identity, the
// WASI surface it sees, and which export starts its autonomous
// execution. Use builder methods to set up.
type RunConfig struct {
	name   string
	entry  string
	args   []string
	env    map[string]string
	mounts map[string]string
	stdout io.Writer
	stderr io.Writer
}

// NewRunConfig creates an empty run configuration.
func NewRunConfig() *RunConfig {
	return &RunConfig{
		env:    make(map[string]string),
		mounts: make(map[string]string),
	}
}

// WithName sets the instance name, also used as the guest's argv[0].
func (c *RunConfig) WithName(name string) *RunConfig {
	c.name = name
	return c
}

// WithEntry names the export that starts the module. When unset, the
// first present of _start, run, main is used.
func (c *RunConfig) WithEntry(name string) *RunConfig {
	c.entry = name
	return c
}

// WithArgs sets command-line arguments (argv[1:]).
func (c *RunConfig) WithArgs(args []string) *RunConfig {
	c.args = args
	return c
}

// WithEnv sets environment variables
func (c *RunConfig) WithEnv(env map[string]string) *RunConfig {
	c.env = env
	return c
}

// WithMounts sets host-to-guest directory mounts, keyed by host path.
func (c *RunConfig) WithMounts(mounts map[string]string) *RunConfig {
	c.mounts = mounts
	return c
}

// WithStdout routes the guest's stdout. Unset output is discarded.
func (c *RunConfig) WithStdout(w io.Writer) *RunConfig {
	c.stdout = w
	return c
}

// WithStderr routes the guest's stderr. Unset output is discarded.
func (c *RunConfig) WithStderr(w io.Writer) *RunConfig {
	c.stderr = w
	return c
}
