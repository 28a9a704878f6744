package diag

import "testing"

func TestRing_Eviction(t *testing.T) {
	r := NewRing(3)

	ops := []Op{OpLoadStart, OpLoadSuccess, OpStarting, OpSuccess, OpPauseIntent}
	for _, op := range ops {
		r.Report(NewEvent(op))
	}

	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}

	snap := r.Snapshot()
	want := []Op{OpStarting, OpSuccess, OpPauseIntent}
	for i, op := range want {
		if snap[i].Op != op {
			t.Errorf("snapshot[%d] = %v, want %v", i, snap[i].Op, op)
		}
	}
}

func TestRing_SnapshotCopies(t *testing.T) {
	r := NewRing(4)
	r.Report(NewEvent(OpLoadStart))

	snap := r.Snapshot()
	r.Report(NewEvent(OpLoadSuccess))

	if len(snap) != 1 {
		t.Errorf("snapshot grew after later Report: len = %d", len(snap))
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestNewRing_DefaultCapacity(t *testing.T) {
	r := NewRing(0)
	for i := 0; i < DefaultRingSize+10; i++ {
		r.Report(NewEvent(OpSuccess))
	}
	if r.Len() != DefaultRingSize {
		t.Errorf("Len = %d, want %d", r.Len(), DefaultRingSize)
	}
}
