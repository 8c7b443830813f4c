// Package runtime defines the contracts the DPOR driver expects from its
// external collaborators (§6): the instrumented actor runtime, the
// failure detector, and the checkpoint/timer-fingerprint modules. None of
// these are implemented here — per §1 they are external collaborators
// referenced only by interface, owned and driven by the instrumentation
// layer that wraps the program under test.
package runtime

import "dpor/event"

// Cell is an opaque handle to an actor, as returned by ActorRuntime's
// ActorOf and looked up through ActorMappings.
type Cell interface {
	Name() string
}

// Envelope is an opaque wrapper around one in-flight message, as produced
// by the instrumented runtime on a send and consumed by DispatchNewMessage.
type Envelope interface {
	// Sender and Receiver are the actor names this envelope moves between.
	Sender() string
	Receiver() string
	// Payload is the application message carried by the envelope.
	Payload() event.Payload
}

// ActorRuntime is the contract the driver expects from the instrumented
// actor runtime (§6). The runtime intercepts sends/receives and dispatches
// envelopes only on the driver's command.
type ActorRuntime interface {
	// ActorOf spawns a new actor and registers it under name.
	ActorOf(props any, name string) Cell
	// ActorMappings returns the live name -> Cell table.
	ActorMappings() map[string]Cell
	// Send enqueues msg for delivery to handle without going through the
	// driver's scheduling (used to seed External Send events).
	Send(handle Cell, msg any)
	// DispatchNewMessage delivers exactly one envelope on cell.
	DispatchNewMessage(cell Cell, env Envelope)
	// RestartSystem tears down and re-spawns all actors for a new
	// interleaving.
	RestartSystem()
	// AwaitEnqueue blocks until all in-flight sends have been enqueued as
	// pending envelopes.
	AwaitEnqueue()
}

// FailureDetector is referenced only by interface (§1): the driver never
// implements crash-detection semantics itself, it only lets the
// instrumentation layer subscribe to and report actor health.
type FailureDetector interface {
	// Subscribe registers a callback invoked with (actor, correct) when
	// the detector's view of an actor's status changes.
	Subscribe(callback func(actor string, correct bool))
	// Correct reports the detector's current view of the system.
	Correct() map[string]bool
}

// Checkpointer is referenced only by interface (§1): a collaborator able
// to snapshot and restore actor-local state across restarts, used by the
// instrumented runtime rather than by the driver.
type Checkpointer interface {
	Snapshot(actor string) []byte
	Restore(actor string, snapshot []byte)
}

// TimerFingerprinter is referenced only by interface (§1): it tells the
// driver whether a given payload is a timer-style marker, without the
// driver needing to know the instrumentation's timer representation.
// event.IsTimerMarker is the default used when none is supplied.
type TimerFingerprinter interface {
	IsTimerMarker(event.Payload) bool
}
