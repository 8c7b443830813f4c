package minimizer

import (
	"context"
	"time"

	"dpor/event"
	"dpor/external"
	"dpor/oracle"
)

// Aggressiveness controls how exhaustively the timer sweep runs at each
// iteration of the clock-cluster loop (§4.4).
type Aggressiveness int

const (
	// None sweeps every timer exhaustively at every cluster.
	None Aggressiveness = iota
	// AllTimersFirstIteration sweeps exhaustively only on the first
	// cluster, then stops each later sweep at its first success.
	AllTimersFirstIteration
	// StopImmediately stops every timer sweep at its first success.
	StopImmediately
)

// Clusterizer implements the ClockClusterizer iteration plan (§4.4).
type Clusterizer struct {
	Aggressiveness Aggressiveness
	Strategy       oracle.AmbiguityResolver
	Absent         *AbsentTracking
	// IsTimerMarker recognizes a pending candidate's payload as
	// timer-style for BuildGuide's wildcard matching. Left nil, it falls
	// back to event.IsTimerMarker; set it to a live Driver's
	// IsTimerMarker/Engine's IsTimerMarker so minimization agrees with
	// whatever runtime.TimerFingerprinter that driver was built with.
	IsTimerMarker func(event.Payload) bool
}

// New returns a Clusterizer using strategy for ambiguity resolution
// among non-timer wildcards.
func New(aggressiveness Aggressiveness, strategy oracle.AmbiguityResolver) *Clusterizer {
	return &Clusterizer{Aggressiveness: aggressiveness, Strategy: strategy}
}

// Minimize is MinimizeContext with no external cancellation and a single
// deadline of budget for the whole run (none when budget is 0). The
// budget is not split per cluster, and a deadline is only checked
// between clusters (§5).
func (c *Clusterizer) Minimize(annotated []Annotated, externals []external.ExternalEvent, fp oracle.ViolationFingerprint, o oracle.Oracle, budget time.Duration) ([]event.Unique, Stats) {
	ctx := context.Background()
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	return c.MinimizeContext(ctx, annotated, externals, fp, o)
}

// MinimizeContext shrinks annotated while o still reproduces fp,
// following the three-step iteration plan: sweep timers with no cluster
// removed, then for each remaining clock in ascending order try removing
// its cluster and re-sweeping timers over the residual (§4.4). If ctx is
// cancelled mid-loop, the best result found so far is returned cleanly
// rather than treated as an error (§5, §7).
func (c *Clusterizer) MinimizeContext(ctx context.Context, annotated []Annotated, externals []external.ExternalEvent, fp oracle.ViolationFingerprint, o oracle.Oracle) ([]event.Unique, Stats) {
	var stats Stats
	clusters := clockValues(annotated)

	current := annotated
	current = c.timerSweep(current, externals, fp, o, &stats, c.exhaustive(0))
	stats.Iterations++

	for i, cl := range clusters {
		if ctx.Err() != nil {
			break
		}
		candidate := removeCluster(current, cl)
		if c.reproduces(candidate, externals, fp, o, &stats) {
			current = candidate
			stats.ClustersRemoved++
			current = c.timerSweep(current, externals, fp, o, &stats, c.exhaustive(i+1))
			if c.Absent != nil {
				c.Absent.Blacklist(clusterIDs(annotated, cl))
			}
		}
		stats.Iterations++
		if c.Aggressiveness == StopImmediately && stats.ClustersRemoved > 0 {
			break
		}
	}
	return toUniques(current), stats
}

func (c *Clusterizer) exhaustive(iteration int) bool {
	switch c.Aggressiveness {
	case None:
		return true
	case AllTimersFirstIteration:
		return iteration == 0
	default:
		return false
	}
}

func (c *Clusterizer) timerSweep(trace []Annotated, externals []external.ExternalEvent, fp oracle.ViolationFingerprint, o oracle.Oracle, stats *Stats, exhaustive bool) []Annotated {
	for {
		removedAny := false
		for i, a := range trace {
			if !a.Timer {
				continue
			}
			candidate := append(append([]Annotated{}, trace[:i]...), trace[i+1:]...)
			if c.reproduces(candidate, externals, fp, o, stats) {
				trace = candidate
				stats.TimersRemoved++
				removedAny = true
				if !exhaustive {
					return trace
				}
				break // indices shifted under the removal; rescan the shrunk trace
			}
		}
		if !removedAny {
			return trace
		}
	}
}

func (c *Clusterizer) reproduces(trace []Annotated, externals []external.ExternalEvent, fp oracle.ViolationFingerprint, o oracle.Oracle, stats *Stats) bool {
	guide := BuildGuide(trace, c.Strategy, c.IsTimerMarker)
	guided, ok := o.(interface{ SetGuide(oracle.Guide) })
	if ok {
		guided.SetGuide(guide)
	}
	stats.Oracle.Tests++
	_, reproduced := o.Test(externals, fp, &stats.Oracle)
	if reproduced {
		stats.Oracle.Reproduced++
	}
	return reproduced
}
