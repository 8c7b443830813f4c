package minimizer

import (
	"sort"

	"dpor/event"
)

// clockValues returns every distinct clock value present in trace, in
// ascending order (§4.4's iteration plan, step 2).
func clockValues(trace []Annotated) []int {
	seen := map[int]bool{}
	var out []int
	for _, a := range trace {
		if a.Clock.Has && !seen[a.Clock.Value] {
			seen[a.Clock.Value] = true
			out = append(out, a.Clock.Value)
		}
	}
	sort.Ints(out)
	return out
}

// removeCluster returns trace with every delivery tagged clock removed.
func removeCluster(trace []Annotated, clock int) []Annotated {
	out := make([]Annotated, 0, len(trace))
	for _, a := range trace {
		if a.Clock.Has && a.Clock.Value == clock {
			continue
		}
		out = append(out, a)
	}
	return out
}

// clusterIDs returns the ids of every delivery tagged clock.
func clusterIDs(trace []Annotated, clock int) []event.ID {
	var ids []event.ID
	for _, a := range trace {
		if a.Clock.Has && a.Clock.Value == clock {
			ids = append(ids, a.U.ID)
		}
	}
	return ids
}

// toUniques strips the clustering metadata, returning the plain trace.
func toUniques(trace []Annotated) []event.Unique {
	out := make([]event.Unique, len(trace))
	for i, a := range trace {
		out[i] = a.U
	}
	return out
}
