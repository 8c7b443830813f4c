package explored

import "testing"

func TestTrackerAddAndContains(t *testing.T) {
	tr := New()
	p := Pair{Earlier: 1, Later: 2}

	if tr.Contains(3, p) {
		t.Fatalf("did not expect an empty tracker to contain anything")
	}
	tr.Add(3, p)
	if !tr.Contains(3, p) {
		t.Fatalf("expected the tracker to contain the pair just added")
	}
	if tr.Size() != 1 {
		t.Fatalf("expected size 1, got %d", tr.Size())
	}
}

func TestTrackerTrimDiscardsDeeperBuckets(t *testing.T) {
	tr := New()
	tr.Add(1, Pair{Earlier: 1, Later: 2})
	tr.Add(5, Pair{Earlier: 3, Later: 4})

	tr.Trim(1)

	if !tr.Contains(1, Pair{Earlier: 1, Later: 2}) {
		t.Fatalf("expected depth-1 entries to survive Trim(1)")
	}
	if tr.Contains(5, Pair{Earlier: 3, Later: 4}) {
		t.Fatalf("expected depth-5 entries to be discarded by Trim(1)")
	}
}
