package minimizer

import (
	"dpor/driver"
	"dpor/event"
)

// AbsentTracking is the third ReplayPolicy resolving the replay-
// divergence Open Question (SPEC_FULL §12): every divergence is
// recorded as usual, and the expected id is also remembered and reported
// by Dropped. Clusterizer only writes to it (Blacklist after a cluster
// is removed); it does not read Dropped, so recorded ids are not removed
// from later candidate traces.
type AbsentTracking struct {
	absent map[event.ID]bool
}

// NewAbsentTracking returns an AbsentTracking with no ids recorded yet.
func NewAbsentTracking() *AbsentTracking {
	return &AbsentTracking{absent: map[event.ID]bool{}}
}

// OnDivergence implements driver.ReplayPolicy.
func (a *AbsentTracking) OnDivergence(expected, actual event.Unique, stats *driver.Stats) bool {
	stats.Divergences = append(stats.Divergences, driver.Divergence{Expected: expected, Actual: actual})
	a.absent[expected.ID] = true
	return false
}

// Blacklist marks every id in ids as permanently dropped, mirroring
// OnDivergence's bookkeeping for ids the clusterizer itself decided to
// remove (a whole cluster confirmed absent-safe).
func (a *AbsentTracking) Blacklist(ids []event.ID) {
	for _, id := range ids {
		a.absent[id] = true
	}
}

// Dropped reports whether id has ever been recorded as absent.
func (a *AbsentTracking) Dropped(id event.ID) bool {
	return a.absent[id]
}
