// Package backtrack implements the BackTrack priority queue (§3):
// entries ordered by descending depthIndex (explore deepest divergences
// first), ties broken by insertion order.
//
// Grounded on scheduler/prefix.go's Prefix, which keeps unexplored runs
// on a LIFO stack so the deepest/most-recent divergence is explored
// first; BackTrack generalizes that single stack into an explicit
// priority queue so "deepest first" holds across all pending entries,
// not just the most recently pushed one. container/heap is the stdlib
// choice here: no third-party priority-queue package appears anywhere
// in the retrieval pack.
package backtrack

import (
	"container/heap"

	"dpor/event"
)

// Entry is one backtrack point: at DepthIndex, deliver Later before
// Earlier by replaying CurrentTrace[0..=DepthIndex] then ReplayPrefix.
type Entry struct {
	DepthIndex      int
	Earlier, Later  event.ID
	ReplayPrefix    []event.Unique

	seq int
}

// Queue is the BackTrack priority queue.
type Queue struct {
	h    entryHeap
	next int
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Push enqueues e, stamping it with the next insertion sequence number
// so equal-DepthIndex entries stay FIFO.
func (q *Queue) Push(e Entry) {
	e.seq = q.next
	q.next++
	heap.Push(&q.h, e)
}

// Pop removes and returns the highest-priority entry. ok is false if the
// queue is empty.
func (q *Queue) Pop() (Entry, bool) {
	if q.h.Len() == 0 {
		return Entry{}, false
	}
	return heap.Pop(&q.h).(Entry), true
}

// Len reports the number of entries currently queued.
func (q *Queue) Len() int { return q.h.Len() }

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].DepthIndex != h[j].DepthIndex {
		return h[i].DepthIndex > h[j].DepthIndex
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(Entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
