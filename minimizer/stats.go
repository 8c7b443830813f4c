package minimizer

import "dpor/oracle"

// Stats aggregates the minimizer's run, surfaced instead of logging
// (§7, SPEC_FULL §10): iteration/removal counts plus the oracle's own
// usage counters.
type Stats struct {
	Iterations      int
	ClustersRemoved int
	TimersRemoved   int
	Oracle          oracle.Stats
}
