package oracle

import (
	"testing"

	"dpor/event"
)

func isX(u event.Unique) bool {
	m, ok := u.Evt.(event.MsgEvent)
	return ok && m.To == "x"
}

func TestSrcDstFIFOOnlyRequiresHeadMatch(t *testing.T) {
	pending := []event.Unique{
		{Evt: event.MsgEvent{To: "y"}, ID: 1},
		{Evt: event.MsgEvent{To: "x"}, ID: 2},
	}
	if _, ok := SrcDstFIFOOnly(isX, pending, nil); ok {
		t.Fatalf("expected no match when the head entry does not satisfy the predicate")
	}

	pending[0] = event.Unique{Evt: event.MsgEvent{To: "x"}, ID: 1}
	idx, ok := SrcDstFIFOOnly(isX, pending, nil)
	if !ok || idx != 0 {
		t.Fatalf("expected a head match at index 0, got idx=%d ok=%v", idx, ok)
	}
}

func TestLastOnlyStrategyPicksLastMatch(t *testing.T) {
	pending := []event.Unique{
		{Evt: event.MsgEvent{To: "x"}, ID: 1},
		{Evt: event.MsgEvent{To: "y"}, ID: 2},
		{Evt: event.MsgEvent{To: "x"}, ID: 3},
	}
	idx, ok := LastOnlyStrategy(isX, pending, nil)
	if !ok || idx != 2 {
		t.Fatalf("expected the last matching index (2), got idx=%d ok=%v", idx, ok)
	}
}

func TestBackTrackStrategyPicksFirstAndRegistersRest(t *testing.T) {
	pending := []event.Unique{
		{Evt: event.MsgEvent{To: "x"}, ID: 1},
		{Evt: event.MsgEvent{To: "x"}, ID: 2},
		{Evt: event.MsgEvent{To: "x"}, ID: 3},
	}
	var backtracked []int
	idx, ok := BackTrackStrategy(isX, pending, func(i int, _ event.Unique) {
		backtracked = append(backtracked, i)
	})
	if !ok || idx != 0 {
		t.Fatalf("expected the first match (index 0), got idx=%d ok=%v", idx, ok)
	}
	if len(backtracked) != 2 {
		t.Fatalf("expected the two later matches to be registered as backtracks, got %v", backtracked)
	}
}

func TestFirstAndLastBacktrackRegistersOnlyTheLast(t *testing.T) {
	pending := []event.Unique{
		{Evt: event.MsgEvent{To: "x"}, ID: 1},
		{Evt: event.MsgEvent{To: "x"}, ID: 2},
		{Evt: event.MsgEvent{To: "x"}, ID: 3},
	}
	var backtracked []int
	idx, ok := FirstAndLastBacktrack(isX, pending, func(i int, _ event.Unique) {
		backtracked = append(backtracked, i)
	})
	if !ok || idx != 0 {
		t.Fatalf("expected the first match (index 0), got idx=%d ok=%v", idx, ok)
	}
	if len(backtracked) != 1 || backtracked[0] != 2 {
		t.Fatalf("expected exactly the last match (index 2) to be registered, got %v", backtracked)
	}
}

// TestBackTrackStrategyDedupesByFingerprint covers S5: pending
// [A, A', A''] where A and A' carry the same payload and A'' differs.
// Dispatching A must register a backtrack only for A'', never for A',
// since A' is content-equivalent to the entry already dispatched.
func TestBackTrackStrategyDedupesByFingerprint(t *testing.T) {
	pending := []event.Unique{
		{Evt: event.MsgEvent{To: "x", Payload: event.BytesPayload{Type: "a"}}, ID: 1},
		{Evt: event.MsgEvent{To: "x", Payload: event.BytesPayload{Type: "a"}}, ID: 2},
		{Evt: event.MsgEvent{To: "x", Payload: event.BytesPayload{Type: "b"}}, ID: 3},
	}
	var backtracked []int
	idx, ok := BackTrackStrategy(isX, pending, func(i int, _ event.Unique) {
		backtracked = append(backtracked, i)
	})
	if !ok || idx != 0 {
		t.Fatalf("expected the first match (index 0), got idx=%d ok=%v", idx, ok)
	}
	if len(backtracked) != 1 || backtracked[0] != 2 {
		t.Fatalf("expected only the fingerprint-distinct match (index 2) to be registered, got %v", backtracked)
	}
}

func TestFirstAndLastBacktrackSkipsFingerprintDuplicateOfChosen(t *testing.T) {
	pending := []event.Unique{
		{Evt: event.MsgEvent{To: "x", Payload: event.BytesPayload{Type: "a"}}, ID: 1},
		{Evt: event.MsgEvent{To: "x", Payload: event.BytesPayload{Type: "b"}}, ID: 2},
		{Evt: event.MsgEvent{To: "x", Payload: event.BytesPayload{Type: "a"}}, ID: 3},
	}
	var backtracked []int
	idx, ok := FirstAndLastBacktrack(isX, pending, func(i int, _ event.Unique) {
		backtracked = append(backtracked, i)
	})
	if !ok || idx != 0 {
		t.Fatalf("expected the first match (index 0), got idx=%d ok=%v", idx, ok)
	}
	if len(backtracked) != 1 || backtracked[0] != 1 {
		t.Fatalf("expected the last fingerprint-distinct match (index 1) to be registered, got %v", backtracked)
	}
}
