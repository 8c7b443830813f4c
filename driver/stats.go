package driver

// Stats aggregates the recoverable conditions and counters the driver
// reports instead of logging them (§7, SPEC_FULL §10): this mirrors the
// teacher's simulationError aggregate-and-report idiom rather than
// introducing a logging dependency the teacher never carries.
type Stats struct {
	// RunsCompleted counts finished interleavings.
	RunsCompleted int
	// Divergences records every replay divergence seen, oldest first.
	Divergences []Divergence
	// Aborted counts runs abandoned early by a ReplayPolicy that
	// requested abort.
	Aborted int
	// DroppedByPartition counts messages silently discarded because
	// the sender and receiver were partitioned apart at dispatch time.
	DroppedByPartition int
	// DepthBoundDrops counts event_produced calls dropped because the
	// parent-event cursor's depth already reached the configured bound.
	DepthBoundDrops int
	// UnconfirmedReplays records every replay run whose seeded
	// (earlier, later) race-reversal pair was not actually observed, in
	// that order, on the run's dispatched trace (§4.3, §7).
	UnconfirmedReplays []UnconfirmedReplay
}
