package engine

import (
	"dpor/event"
	"dpor/external"
	"dpor/oracle"
	"dpor/trace"
)

// Checker computes a ViolationFingerprint from a completed run's trace.
// The minimizer treats two traces as equivalent iff their fingerprints
// are Equal (§6).
type Checker func(currentTrace []event.Unique) oracle.ViolationFingerprint

// OracleAdapter re-wraps an Engine as an oracle.Oracle (§6: "usually the
// driver above re-wrapped as a test"), the shape checking/checker.go's
// Checker[S]/CheckerResponse pair used for the teacher's generic
// predicate search.
type OracleAdapter struct {
	eng     *Engine
	checker Checker
	guide   oracle.Guide
}

// AsOracle wraps e as an oracle.Oracle, using checker to decide whether
// a run reproduced the fingerprint under test.
func (e *Engine) AsOracle(checker Checker) *OracleAdapter {
	return &OracleAdapter{eng: e, checker: checker}
}

// SetGuide implements the optional guided-oracle capability the
// minimizer looks for via a type assertion (minimizer.Clusterizer.reproduces).
func (o *OracleAdapter) SetGuide(g oracle.Guide) {
	o.guide = g
}

// Test runs externals once under o.guide (if set) and reports whether
// the resulting trace's fingerprint equals fp.
func (o *OracleAdapter) Test(externals []external.ExternalEvent, fp oracle.ViolationFingerprint, stats *oracle.Stats) (*trace.Log, bool) {
	o.eng.drv.BeginRun(nil, 0, 0, 0)
	if o.guide != nil {
		o.eng.drv.SetGuide(o.guide)
	}
	result := o.eng.Run(externals)
	got := o.checker(o.eng.drv.CurrentTrace())
	if got == nil || !got.Equal(fp) {
		return nil, false
	}
	log := trace.New(o.eng.drv.CurrentTrace(), o.eng.drv.QuiescentPeriod().Snapshot())
	_ = result // the verification run always ends via NotifyQuiescence's "interleaving finished" path
	return log, true
}
