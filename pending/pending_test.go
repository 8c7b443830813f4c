package pending

import (
	"testing"

	"golang.org/x/exp/slices"

	"dpor/event"
	"dpor/oracle"
)

func TestPushPopFrontFIFO(t *testing.T) {
	l := New()
	a := event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 1}
	b := event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 2}
	l.Push("x", Delivery{U: a})
	l.Push("x", Delivery{U: b})

	first, ok := l.PopFront("x")
	if !ok || first.U.ID != 1 {
		t.Fatalf("expected id 1 first, got %v ok=%v", first.U, ok)
	}
	second, ok := l.PopFront("x")
	if !ok || second.U.ID != 2 {
		t.Fatalf("expected id 2 second, got %v ok=%v", second.U, ok)
	}
}

func TestFindMatchRemovesMatchedEntry(t *testing.T) {
	l := New()
	want := event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 5}
	l.Push("x", Delivery{U: want})
	l.Push("x", Delivery{U: event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 6}})

	got, ok := l.FindMatch("x", event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 5})
	if !ok || got.U.ID != 5 {
		t.Fatalf("expected to find id 5, got %v ok=%v", got.U, ok)
	}
	remaining, ok := l.PopFront("x")
	if !ok || remaining.U.ID != 6 {
		t.Fatalf("expected id 6 to remain, got %v ok=%v", remaining.U, ok)
	}
}

func TestNextDivergentSweepsLexicographicOrder(t *testing.T) {
	l := New()
	l.Push("zebra", Delivery{U: event.Unique{Evt: event.MsgEvent{To: "zebra"}, ID: 1}})
	l.Push("alpha", Delivery{U: event.Unique{Evt: event.MsgEvent{To: "alpha"}, ID: 2}})
	l.Push(LaneScheduler, Delivery{U: event.Unique{Evt: event.WaitQuiescence{}, ID: 3}})

	lane, d, ok := l.NextDivergent()
	if !ok || lane != "alpha" || d.U.ID != 2 {
		t.Fatalf("expected alpha lane first, got lane=%q delivery=%v ok=%v", lane, d.U, ok)
	}
	lane, d, ok = l.NextDivergent()
	if !ok || lane != "zebra" || d.U.ID != 1 {
		t.Fatalf("expected zebra lane second, got lane=%q delivery=%v ok=%v", lane, d.U, ok)
	}
	if _, _, ok := l.NextDivergent(); ok {
		t.Fatalf("reserved SCHEDULER lane must never surface from NextDivergent")
	}
}

func TestResolveWildUsesDefaultStrategyAndBacktracks(t *testing.T) {
	l := New()
	l.Push("x", Delivery{U: event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 1}})
	l.Push("x", Delivery{U: event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 2}})
	l.Push("x", Delivery{U: event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 3}})

	w := &oracle.WildCard{Receiver: "x", Match: func(u event.Unique) bool { return true }}
	d, ok := l.ResolveWild("x", w)
	if !ok {
		t.Fatalf("expected a match")
	}
	if d.U.ID != 1 {
		t.Fatalf("BackTrackStrategy (default) should pick the first match, got id %d", d.U.ID)
	}
	if !slices.Contains(backtrackIDs(w), event.ID(2)) || !slices.Contains(backtrackIDs(w), event.ID(3)) {
		t.Fatalf("expected ids 2 and 3 to be recorded as backtracks, got %v", w.Backtracks)
	}
}

func backtrackIDs(w *oracle.WildCard) []event.ID {
	ids := make([]event.ID, len(w.Backtracks))
	for i, u := range w.Backtracks {
		ids[i] = u.ID
	}
	return ids
}
