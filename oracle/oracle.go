// Package oracle defines the test-oracle façade the minimizer drives
// (§6): given a scenario and a violation fingerprint, report whether the
// scenario still reproduces it and, if so, the trace that did.
//
// Grounded on checking/checker.go and checking/predicateChecker.go's
// Checker[S]/CheckerResponse pair: Checker.Check(root) -> CheckerResponse
// generalizes here to Oracle.Test(externals, fp) -> (*trace.Log, bool),
// since the minimizer only needs a boolean reproduction verdict plus the
// trace that produced it, not a generic predicate-search response.
package oracle

import (
	"dpor/external"
	"dpor/trace"
)

// ViolationFingerprint is an opaque, equality-comparable digest produced
// by the user-supplied invariant (§6). Traces are equivalent for
// minimization purposes iff they produce the same fingerprint.
type ViolationFingerprint interface {
	Equal(ViolationFingerprint) bool
}

// Stats accumulates the oracle's usage counters across a minimization
// run, surfaced instead of logging (SPEC_FULL §10).
type Stats struct {
	Tests      int
	Reproduced int
}

// Oracle runs one scenario and reports whether it reproduced fp.
type Oracle interface {
	Test(externals []external.ExternalEvent, fp ViolationFingerprint, stats *Stats) (*trace.Log, bool)
}
