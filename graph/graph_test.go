package graph

import (
	"testing"

	"dpor/event"
)

func TestGetOrCreateMessageDedupesByPayload(t *testing.T) {
	g := New()
	alloc := event.NewAllocator()
	evt := event.MsgEvent{Sender: "a", To: "b", Payload: event.BytesPayload{Type: "ping"}}

	first := g.GetOrCreateMessage(evt, event.Root.ID, alloc)
	second := g.GetOrCreateMessage(evt, event.Root.ID, alloc)

	if first.ID != second.ID {
		t.Fatalf("expected the same node for an equal payload, got %d and %d", first.ID, second.ID)
	}
	if len(g.Siblings(event.Root.ID)) != 1 {
		t.Fatalf("expected exactly one child of root, got %d", len(g.Siblings(event.Root.ID)))
	}
}

func TestGetOrCreateMessageDistinctPayloadsAllocateSeparateNodes(t *testing.T) {
	g := New()
	alloc := event.NewAllocator()
	a := g.GetOrCreateMessage(event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "ping"}}, event.Root.ID, alloc)
	b := g.GetOrCreateMessage(event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "pong"}}, event.Root.ID, alloc)

	if a.ID == b.ID {
		t.Fatalf("expected distinct ids for distinct payloads, got %d for both", a.ID)
	}
}

func TestPrecedesFollowsParentChildChain(t *testing.T) {
	g := New()
	alloc := event.NewAllocator()
	mid := g.GetOrCreateMessage(event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "1"}}, event.Root.ID, alloc)
	leaf := g.GetOrCreateMessage(event.MsgEvent{To: "c", Payload: event.BytesPayload{Type: "2"}}, mid.ID, alloc)

	if !g.Precedes(event.Root.ID, leaf.ID) {
		t.Fatalf("expected root to precede leaf")
	}
	if !g.Precedes(mid.ID, leaf.ID) {
		t.Fatalf("expected mid to precede leaf")
	}
	if g.Precedes(leaf.ID, mid.ID) {
		t.Fatalf("did not expect leaf to precede mid")
	}
}

func TestLastSharedAncestor(t *testing.T) {
	g := New()
	alloc := event.NewAllocator()
	branchA := g.GetOrCreateMessage(event.MsgEvent{To: "a", Payload: event.BytesPayload{Type: "a"}}, event.Root.ID, alloc)
	leafA := g.GetOrCreateMessage(event.MsgEvent{To: "a2", Payload: event.BytesPayload{Type: "a2"}}, branchA.ID, alloc)
	leafB := g.GetOrCreateMessage(event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "b"}}, event.Root.ID, alloc)

	if got := g.LastSharedAncestor(leafA.ID, leafB.ID); got != event.Root.ID {
		t.Fatalf("expected root as the shared ancestor, got %d", got)
	}
	if got := g.LastSharedAncestor(leafA.ID, branchA.ID); got != branchA.ID {
		t.Fatalf("expected branchA as its own ancestor, got %d", got)
	}
}

func TestQuiescentPeriodSameWindow(t *testing.T) {
	q := NewQuiescentPeriod()
	q.Set(1, 0)
	q.Set(2, 0)
	q.Set(3, 1)

	if !q.SameWindow(1, 2) {
		t.Fatalf("expected ids 1 and 2 to share a window")
	}
	if q.SameWindow(1, 3) {
		t.Fatalf("did not expect ids 1 and 3 to share a window")
	}
	snap := q.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected snapshot of 3 entries, got %d", len(snap))
	}
}

