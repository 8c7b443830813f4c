package driver

import (
	"errors"
	"fmt"
)

// Sentinel errors for the driver's non-fatal/programmer-error paths
// (§7), following the teacher's scheduler.RunEndedError/NoRunsError
// shape.
var (
	// ErrNoRuns is returned by NextRun when the search is already done
	// and no further interleaving remains.
	ErrNoRuns = errors.New("driver: no runs remain")
	// ErrUnknownExternalEvent is returned when an external.ExternalEvent
	// value does not match any known Kind -- a programmer error (§7).
	ErrUnknownExternalEvent = errors.New("driver: unknown external event type")
)

// InvariantViolation reports a broken internal invariant (§7): the
// parent event was not a MsgEvent, a pending event had an unexpected
// shape, or a path to root was missing. These are fatal; the caller
// should abort the search.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("driver: invariant violated (%s): %s", e.Invariant, e.Detail)
}
