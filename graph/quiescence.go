package graph

import "dpor/event"

// QuiescentPeriod tags each graph node with the quiescence epoch it was
// produced in (§3). Two ids share a "liveness window" iff their tags are
// equal. Invariant 4 requires this be defined for every graph node;
// callers must Set before a node can be consulted by SameWindow.
type QuiescentPeriod struct {
	epoch map[event.ID]uint32
}

// NewQuiescentPeriod returns an empty QuiescentPeriod.
func NewQuiescentPeriod() *QuiescentPeriod {
	return &QuiescentPeriod{epoch: map[event.ID]uint32{}}
}

// Set tags id with epoch.
func (q *QuiescentPeriod) Set(id event.ID, epoch uint32) {
	q.epoch[id] = epoch
}

// Get returns id's tag, or 0 if untagged.
func (q *QuiescentPeriod) Get(id event.ID) uint32 {
	return q.epoch[id]
}

// SameWindow reports whether a and b share a quiescence epoch.
func (q *QuiescentPeriod) SameWindow(a, b event.ID) bool {
	return q.epoch[a] == q.epoch[b]
}

// Snapshot returns a copy of the id -> epoch tagging, for trace
// persistence and ShiViz-style export (SPEC_FULL §12).
func (q *QuiescentPeriod) Snapshot() map[event.ID]uint32 {
	out := make(map[event.ID]uint32, len(q.epoch))
	for k, v := range q.epoch {
		out[k] = v
	}
	return out
}
