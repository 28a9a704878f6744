package diag

import "go.uber.org/zap"

// Sink receives lifecycle events. Implementations must be safe for
// concurrent use; the boot controller reports from detached goroutines.
type Sink interface {
	Report(e Event)
}

// Func adapts a plain function to the Sink interface.
type Func func(e Event)

// Report calls f(e).
func (f Func) Report(e Event) { f(e) }

type nopSink struct{}

func (nopSink) Report(Event) {}

// Nop returns a sink that discards every event.
func Nop() Sink { return nopSink{} }

// LogSink forwards events to a zap logger as human-readable lines.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink wraps log. A nil logger is replaced with a no-op logger.
func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

// Report writes one line per event. Failures log at error level with
// the cause attached; everything else logs at info level.
func (s *LogSink) Report(e Event) {
	if e.Op == OpFailure {
		s.log.Error("initialization failed",
			zap.String("op", string(e.Op)),
			zap.Error(e.Err))
		return
	}
	s.log.Info(messageFor(e.Op), zap.String("op", string(e.Op)))
}

func messageFor(op Op) string {
	switch op {
	case OpLoadStart:
		return "loading execution module"
	case OpLoadSuccess:
		return "execution module loaded"
	case OpStarting:
		return "execution module starting"
	case OpSuccess:
		return "boot complete"
	case OpPauseIntent:
		return "host hidden, module should pause"
	case OpResumeIntent:
		return "host visible, module should resume"
	default:
		return string(op)
	}
}

type teeSink struct {
	sinks []Sink
}

// Tee fans each event out to every sink in order. Nil sinks are skipped.
func Tee(sinks ...Sink) Sink {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return teeSink{sinks: kept}
}

func (t teeSink) Report(e Event) {
	for _, s := range t.sinks {
		s.Report(e)
	}
}
