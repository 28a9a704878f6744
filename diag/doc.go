// Package diag carries the boot controller's lifecycle journal.
//
// The controller reports a small fixed vocabulary of checkpoints
// (module load, start handoff, readiness, pause and resume intents,
// failure) as Events. Where those events go is the caller's choice:
// NewLogSink routes them to a zap logger, a Ring keeps the recent tail
// for display, a Recorder captures them for assertions, and Tee fans
// one stream out to several destinations.
package diag
