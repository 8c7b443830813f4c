// Package minimizer implements the clock-cluster minimizer (§4.4): it
// shrinks a violating trace by removing whole clock clusters and
// individual timers while an oracle still reproduces the original
// violation fingerprint, then rewrites whatever it keeps as WildCard
// guide steps for replay.
//
// Grounded on checking/predicateChecker.go's DFS-over-state-space shape,
// generalized from "search a state space for a predicate" to "search a
// trace for a minimal subset that still satisfies an oracle".
package minimizer

import "dpor/event"

// Clock is an optional application-level logical clock value carried by
// a delivered message (§4.4). Grounded conceptually on
// daviddao-clockmail's Clock and sfurman3-chatroom's vector-clock
// package shape -- read for idiom only, neither is wired as a dependency
// (SPEC_FULL §11).
type Clock struct {
	Value int
	Has   bool
}

// Annotated pairs a Unique with the clustering metadata the minimizer
// needs: its logical clock, if any, and whether it is a timer-style
// delivery managed by the one-at-a-time iterator instead of by cluster.
type Annotated struct {
	U     event.Unique
	Clock Clock
	Timer bool
}
