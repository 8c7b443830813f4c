// Package pending implements PendingEvents (§3): per-lane FIFO queues of
// deliverable envelopes, one lane per actor receiver name plus the
// reserved SCHEDULER and PRIORITY lanes.
//
// Grounded on scheduler/basicScheduler.go and scheduler/queueScheduler.go,
// which hold pending events in slices and pop matching entries by id;
// Lanes generalizes that single slice into the per-receiver map §3
// requires, plus the two reserved lanes.
package pending

import (
	"sort"

	"dpor/event"
	"dpor/oracle"
	"dpor/runtime"
)

// Reserved lane names (§3).
const (
	LaneScheduler = "SCHEDULER"
	LanePriority  = "PRIORITY"
)

// Delivery is one queued entry. PRIORITY-lane entries (the driver's
// NodesUnreachable notices) carry a noise Unique with ID 0 and no Cell
// or Env.
type Delivery struct {
	U    event.Unique
	Cell runtime.Cell
	Env  runtime.Envelope
}

// Lanes is the full per-receiver queue map plus the reserved lanes.
type Lanes struct {
	queues map[string][]Delivery
}

// New returns an empty Lanes.
func New() *Lanes {
	return &Lanes{queues: map[string][]Delivery{}}
}

// Push enqueues d on lane, FIFO.
func (l *Lanes) Push(lane string, d Delivery) {
	l.queues[lane] = append(l.queues[lane], d)
}

// Empty reports whether lane currently holds no entries.
func (l *Lanes) Empty(lane string) bool {
	return len(l.queues[lane]) == 0
}

// PopFront removes and returns the head of lane.
func (l *Lanes) PopFront(lane string) (Delivery, bool) {
	q := l.queues[lane]
	if len(q) == 0 {
		return Delivery{}, false
	}
	d := q[0]
	l.queues[lane] = q[1:]
	return d, true
}

// FindMatch scans lane for an entry whose Unique Matches want, removing
// and returning it. This backs the convergent-step lookup in
// schedule_new_message (§4.1).
func (l *Lanes) FindMatch(lane string, want event.Unique) (Delivery, bool) {
	q := l.queues[lane]
	for i, d := range q {
		if d.U.Matches(want) {
			l.queues[lane] = append(append([]Delivery{}, q[:i]...), q[i+1:]...)
			return d, true
		}
	}
	return Delivery{}, false
}

// RemoveOne removes at most one entry from lane whose Unique id equals
// id, reporting whether anything was removed. Missing entries are not
// an error (notify_timer_cancel, §5).
func (l *Lanes) RemoveOne(lane string, id event.ID) bool {
	q := l.queues[lane]
	for i, d := range q {
		if d.U.ID == id {
			l.queues[lane] = append(append([]Delivery{}, q[:i]...), q[i+1:]...)
			return true
		}
	}
	return false
}

// NextDivergent pops one entry from the lowest lexicographic non-reserved
// lane that is non-empty, implementing the resolved lane-order Open
// Question (SPEC_FULL §12): lanes are swept in ascending receiver-name
// order rather than Go's randomized map iteration order. The reserved
// lanes (SCHEDULER, PRIORITY) are never swept here: the driver drains
// PRIORITY before calling this, and consults SCHEDULER only after this
// finds nothing.
func (l *Lanes) NextDivergent() (lane string, d Delivery, ok bool) {
	for _, name := range l.sortedUserLanes() {
		if d, ok := l.PopFront(name); ok {
			return name, d, true
		}
	}
	return "", Delivery{}, false
}

func (l *Lanes) sortedUserLanes() []string {
	names := make([]string, 0, len(l.queues))
	for name, q := range l.queues {
		if name == LaneScheduler || name == LanePriority {
			continue
		}
		if len(q) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveWild scans lane's pending list with w's resolver (defaulting to
// BackTrackStrategy when w.Resolve is nil), removes and returns the
// entry it chooses, and stashes on w.Backtracks the entries the resolver
// registered as backtrack points (§4.4).
func (l *Lanes) ResolveWild(lane string, w *oracle.WildCard) (Delivery, bool) {
	list := l.queues[lane]
	uniques := make([]event.Unique, len(list))
	for i, d := range list {
		uniques[i] = d.U
	}
	resolve := w.Resolve
	if resolve == nil {
		resolve = oracle.BackTrackStrategy
	}
	var backtracks []event.Unique
	idx, ok := resolve(w.Match, uniques, func(i int, u event.Unique) {
		backtracks = append(backtracks, u)
	})
	if !ok {
		return Delivery{}, false
	}
	d := list[idx]
	l.queues[lane] = append(append([]Delivery{}, list[:idx]...), list[idx+1:]...)
	w.Backtracks = backtracks
	return d, true
}

// Clear empties every lane. The graph and explored tracker are not
// affected -- they persist across interleavings (§3's lifecycle note).
func (l *Lanes) Clear() {
	l.queues = map[string][]Delivery{}
}

// Snapshot returns a shallow copy of the lane map, for test assertions
// comparing Lanes state (e.g. via golang.org/x/exp/maps.EqualFunc).
func (l *Lanes) Snapshot() map[string][]Delivery {
	out := make(map[string][]Delivery, len(l.queues))
	for k, v := range l.queues {
		out[k] = append([]Delivery{}, v...)
	}
	return out
}
