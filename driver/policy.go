package driver

import "dpor/event"

// Divergence records one instance of the expected NextTrace head not
// being found among pending deliveries (§7).
type Divergence struct {
	Expected, Actual event.Unique
}

// UnconfirmedReplay records a replay run seeded (§4.3) to confirm that
// Earlier is actually delivered before Later, where that order was
// never observed on the run's dispatched trace. This is distinct from a
// Divergence: the NextTrace head can match at every step and the
// specific race-reversal pair the run exists to confirm can still never
// fire, e.g. because one side was pruned by a partition or depth bound
// first (§7).
type UnconfirmedReplay struct {
	Earlier, Later event.ID
}

// ReplayPolicy resolves spec's Open Question 1 (SPEC_FULL §12): what to
// do when a run diverges from the expected NextTrace prefix. Implementers
// choose a policy at construction time via WithReplayPolicy.
type ReplayPolicy interface {
	// OnDivergence is invoked when expected (the NextTrace head) was not
	// found on its lane and actual was delivered in its place instead.
	// Returning true tells the driver to abandon the current replay
	// attempt.
	OnDivergence(expected, actual event.Unique, stats *Stats) (abort bool)
}

// LogOnly records every divergence in Stats and lets the run continue
// with divergent scheduling. This is the default (§7: "recorded but not
// fatal -- the engine continues").
type LogOnly struct{}

func (LogOnly) OnDivergence(expected, actual event.Unique, stats *Stats) bool {
	stats.Divergences = append(stats.Divergences, Divergence{Expected: expected, Actual: actual})
	return false
}

// RetryOnDivergence treats any divergence as cause to abandon the
// current replay attempt, so the caller can requeue the backtrack entry
// that produced it and try again later.
type RetryOnDivergence struct{}

func (RetryOnDivergence) OnDivergence(expected, actual event.Unique, stats *Stats) bool {
	stats.Divergences = append(stats.Divergences, Divergence{Expected: expected, Actual: actual})
	return true
}
