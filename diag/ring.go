package diag

import (
	"sync"

	"github.com/eapache/queue"
)

// DefaultRingSize bounds a Ring built with capacity <= 0.
const DefaultRingSize = 64

// Ring keeps the most recent events in arrival order, evicting the
// oldest once capacity is reached. It implements Sink and is safe for
// concurrent use, so it can be shared between the controller's
// reporting goroutines and a UI that polls Snapshot.
type Ring struct {
	mu  sync.Mutex
	q   *queue.Queue
	cap int
}

// NewRing returns a ring holding at most capacity events.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &Ring{q: queue.New(), cap: capacity}
}

// Report appends e, dropping the oldest entry when full.
func (r *Ring) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.q.Length() >= r.cap {
		r.q.Remove()
	}
	r.q.Add(e)
}

// Len reports how many events are currently held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Length()
}

// Snapshot copies the held events, oldest first.
func (r *Ring) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.q.Length())
	for i := 0; i < r.q.Length(); i++ {
		out = append(out, r.q.Get(i).(Event))
	}
	return out
}
