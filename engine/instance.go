package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"
)

// Instance is a live module. Its entry export runs on a dedicated
// goroutine; Done is closed when that run finishes, and Err reports
// how it went. Run failures stay internal to the module: they surface
// here and in the engine log, nowhere else.
type Instance struct {
	mod   api.Module
	entry string

	cancel    context.CancelFunc
	done      chan struct{}
	closing   atomic.Bool
	closeOnce sync.Once
	closeErr  error

	mu  sync.Mutex
	err error
}

func newInstance(mod api.Module, entry string) *Instance {
	return &Instance{
		mod:    mod,
		entry:  entry,
		cancel: func() {},
		done:   make(chan struct{}),
	}
}

// start launches fn on the instance's run goroutine.
func (i *Instance) start(fn api.Function) {
	runCtx, cancel := context.WithCancel(context.Background())
	i.cancel = cancel

	go func() {
		defer close(i.done)
		_, err := fn.Call(runCtx)
		err = i.runError(err)
		i.setErr(err)
		if err != nil {
			Logger().Error("module run failed",
				zap.String("entry", i.entry),
				zap.Error(err))
			return
		}
		Logger().Debug("module run finished",
			zap.String("entry", i.entry))
	}()
}

// finish settles a passive instance that has nothing to run.
func (i *Instance) finish(err error) {
	i.setErr(err)
	close(i.done)
}

// runError normalizes how a run ended. A wasi exit with code 0 and an
// interruption caused by Close are both clean.
func (i *Instance) runError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *sys.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
		return nil
	}
	if i.closing.Load() {
		return nil
	}
	return err
}

func (i *Instance) setErr(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.err = err
}

// Entry returns the export name driving this instance, empty for a
// passive module.
func (i *Instance) Entry() string {
	return i.entry
}

// Done is closed once the instance's run has finished.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Err reports how the run ended. It is meaningful after Done is
// closed; a clean finish reports nil.
func (i *Instance) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// Close interrupts a running entry, waits for it to settle or for ctx
// to expire, and releases the instance. Safe to call more than once.
func (i *Instance) Close(ctx context.Context) error {
	i.closeOnce.Do(func() {
		i.closing.Store(true)
		i.cancel()
		select {
		case <-i.done:
		case <-ctx.Done():
		}
		i.closeErr = i.mod.Close(ctx)
	})
	return i.closeErr
}
