package diag

import (
	"fmt"
	"time"
)

// Op identifies a lifecycle checkpoint reported by the boot controller.
type Op string

const (
	OpLoadStart    Op = "load-start"      // module load began
	OpLoadSuccess  Op = "load-success"    // module load finished
	OpStarting     Op = "starting-notice" // entry point is being handed control
	OpSuccess      Op = "success"         // controller reached Ready
	OpPauseIntent  Op = "pause-intent"    // host became hidden, module should pause
	OpResumeIntent Op = "resume-intent"   // host became visible, module should resume
	OpFailure      Op = "failure"         // initialization failed
)

// Event is a single journal entry. Err is set only for OpFailure.
type Event struct {
	Op   Op
	Err  error
	Time time.Time
}

// NewEvent stamps op with the current time.
func NewEvent(op Op) Event {
	return Event{Op: op, Time: time.Now()}
}

// Failure wraps err as a failure entry stamped with the current time.
func Failure(err error) Event {
	return Event{Op: OpFailure, Err: err, Time: time.Now()}
}

// String renders the entry in trace form: the op name, with the error
// detail appended for failures, e.g. `failure:"network error"`.
func (e Event) String() string {
	if e.Op == OpFailure && e.Err != nil {
		return fmt.Sprintf("%s:%q", e.Op, e.Err.Error())
	}
	return string(e.Op)
}
