// Package dpor implements the DPOR analyzer (§4.3): co-enabledness,
// analyze_dep's race-reversal table, and the BackTrack/ExploredTracker
// bookkeeping around them.
//
// Grounded on scheduler/guidedSearch.go and scheduler/prefix.go, which
// drive the "replay-then-diverge" and "explore deepest first" behaviors
// this package formalizes into an explicit race-detection pass plus a
// priority queue, rather than the teacher's ad hoc stack-of-runs.
package dpor

import (
	"dpor/backtrack"
	"dpor/event"
	"dpor/explored"
	"dpor/graph"
)

// Analyzer owns the dependency graph, quiescence tags, explored memo and
// backtrack queue that together drive race detection between runs.
type Analyzer struct {
	Graph     *graph.DependencyGraph
	Quiescent *graph.QuiescentPeriod
	Explored  *explored.Tracker
	BackTrack *backtrack.Queue
}

// New returns an Analyzer over the given graph and quiescence tags.
func New(g *graph.DependencyGraph, q *graph.QuiescentPeriod) *Analyzer {
	return &Analyzer{
		Graph:     g,
		Quiescent: q,
		Explored:  explored.New(),
		BackTrack: backtrack.New(),
	}
}

// CoEnabled implements §4.3's co-enabledness test.
func (a *Analyzer) CoEnabled(earlier, later event.Unique) bool {
	_, earlierPartition := earlier.Evt.(event.NetworkPartition)
	_, laterPartition := later.Evt.(event.NetworkPartition)
	if earlierPartition || laterPartition {
		return true
	}
	_, earlierQuiescence := earlier.Evt.(event.WaitQuiescence)
	_, laterQuiescence := later.Evt.(event.WaitQuiescence)
	if earlierQuiescence || laterQuiescence {
		return false
	}
	em, eok := earlier.Evt.(event.MsgEvent)
	lm, lok := later.Evt.(event.MsgEvent)
	if !eok || !lok {
		return false
	}
	if em.To != lm.To {
		return false
	}
	if !a.Quiescent.SameWindow(earlier.ID, later.ID) {
		return false
	}
	return !a.Graph.Precedes(earlier.ID, later.ID) && !a.Graph.Precedes(later.ID, earlier.ID)
}

// Outcome is the result of AnalyzeDep: the index to replay the
// untouched prefix up to (inclusive, -1 meaning "replay nothing"), and
// the sequence to append after it.
type Outcome struct {
	BranchIndex  int
	ReplayPrefix []event.Unique
}

// AnalyzeDep implements analyze_dep's three-row table (§4.3). trace is
// CurrentTrace; earlierIdx < laterIdx index into it.
func (a *Analyzer) AnalyzeDep(trace []event.Unique, earlierIdx, laterIdx int) Outcome {
	earlier, later := trace[earlierIdx], trace[laterIdx]
	_, earlierPartition := earlier.Evt.(event.NetworkPartition)
	_, laterPartition := later.Evt.(event.NetworkPartition)

	switch {
	case !earlierPartition && laterPartition:
		// Msg / Partition.
		return Outcome{
			BranchIndex:  earlierIdx,
			ReplayPrefix: []event.Unique{later, earlier},
		}
	case earlierPartition && !laterPartition:
		// Partition / Msg.
		prefix := append([]event.Unique{}, trace[earlierIdx+1:laterIdx+1]...)
		prefix = append(prefix, earlier)
		return Outcome{
			BranchIndex:  earlierIdx - 1,
			ReplayPrefix: prefix,
		}
	default:
		// Msg / Msg.
		branch := a.Graph.LastSharedAncestor(earlier.ID, later.ID)
		branchIdx := indexOf(trace, branch)
		prefix := make([]event.Unique, 0, laterIdx-branchIdx)
		for _, u := range trace[branchIdx+1 : laterIdx+1] {
			if u.ID == earlier.ID {
				continue
			}
			prefix = append(prefix, u)
		}
		return Outcome{BranchIndex: branchIdx, ReplayPrefix: prefix}
	}
}

func indexOf(trace []event.Unique, id event.ID) int {
	if id == event.Root.ID {
		return -1
	}
	for i, u := range trace {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// DetectRaces scans trace for every co-enabled pair, runs AnalyzeDep on
// each, and enqueues a new BackTrack entry unless the pair is already in
// the ExploredTracker at that branch (invariant 3; S6).
func (a *Analyzer) DetectRaces(trace []event.Unique) {
	for earlierIdx := 0; earlierIdx < len(trace); earlierIdx++ {
		earlier := trace[earlierIdx]
		if earlier.IsNoise() {
			continue
		}
		for laterIdx := earlierIdx + 1; laterIdx < len(trace); laterIdx++ {
			later := trace[laterIdx]
			if later.IsNoise() {
				continue
			}
			if !a.CoEnabled(earlier, later) {
				continue
			}
			outcome := a.AnalyzeDep(trace, earlierIdx, laterIdx)
			pair := explored.Pair{Earlier: earlier.ID, Later: later.ID}
			if a.Explored.Contains(outcome.BranchIndex, pair) {
				continue
			}
			a.Explored.Add(outcome.BranchIndex, pair)
			a.BackTrack.Push(backtrack.Entry{
				DepthIndex:   outcome.BranchIndex,
				Earlier:      earlier.ID,
				Later:        later.ID,
				ReplayPrefix: outcome.ReplayPrefix,
			})
		}
	}
}

// NextTrace pops the highest-priority backtrack entry still live in the
// ExploredTracker, trims entries it invalidates, and returns the trace to
// replay next, along with the entry's DepthIndex (so a caller that later
// needs to abandon this attempt can requeue the exact same entry via
// Push). ok is false once the search is done (§4.3's "next-prefix
// selection").
func (a *Analyzer) NextTrace(currentTrace []event.Unique) (next []event.Unique, earlier, later event.ID, depthIndex int, ok bool) {
	for {
		entry, popped := a.BackTrack.Pop()
		if !popped {
			return nil, 0, 0, 0, false
		}
		pair := explored.Pair{Earlier: entry.Earlier, Later: entry.Later}
		if !a.Explored.Contains(entry.DepthIndex, pair) {
			// Invalidated by an earlier Trim at a shallower depth.
			continue
		}
		a.Explored.Trim(entry.DepthIndex)
		out := make([]event.Unique, 0, entry.DepthIndex+1+len(entry.ReplayPrefix))
		if entry.DepthIndex >= 0 {
			out = append(out, currentTrace[:entry.DepthIndex+1]...)
		}
		out = append(out, entry.ReplayPrefix...)
		return out, entry.Earlier, entry.Later, entry.DepthIndex, true
	}
}
