// Package boot drives one-shot startup of an execution module inside
// a host environment.
//
// A Controller ties three things together: the module's blocking Init,
// a diagnostic journal recording each lifecycle checkpoint, and the
// host signals that trigger work. The host's ready signal launches
// initialization on a detached goroutine; visibility transitions
// become pause and resume intents once the module is ready; context
// menu requests are always suppressed. Failures are absorbed into the
// journal and never escape into the host loop.
package boot
