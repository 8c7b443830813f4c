// Package driver implements the scheduler state machine (§4.1): the
// single decision-maker that consumes a trace prefix, dispatches
// envelopes to the instrumented runtime, and handles network partitions
// and quiescence barriers.
//
// Grounded on scheduler/guidedSearch.go (following a provided run before
// switching to free search) and scheduler/replay.go (replaying a fixed
// id sequence), generalized into one state machine that owns both
// behaviors instead of switching between two Scheduler implementations.
package driver

import (
	"dpor/backtrack"
	"dpor/dpor"
	"dpor/event"
	"dpor/external"
	"dpor/graph"
	"dpor/oracle"
	"dpor/pending"
	"dpor/runtime"
)

// Driver is the single owned struct collecting the scheduler's mutable
// state (design note §9: "collect them into a single owned struct that
// the runtime holds exactly once").
type Driver struct {
	g        *graph.DependencyGraph
	q        *graph.QuiescentPeriod
	alloc    *event.Allocator
	lanes    *pending.Lanes
	analyzer *dpor.Analyzer

	rt     runtime.ActorRuntime
	fp     runtime.TimerFingerprinter
	policy ReplayPolicy

	partition PartitionMap
	cursor    event.ID

	currentTrace []event.Unique
	nextTrace    []event.Unique
	nextIdx      int

	awaitingQuiescence      bool
	pendingQuiescenceMarker event.Unique
	currentEpoch            uint32

	invariantQueue   []event.ID
	invariantEarlier event.ID
	invariantLater   event.ID
	entryDepthIndex  int
	aborted          bool
	maxDepth         int

	guide    oracle.Guide
	guideIdx int

	Stats Stats
}

// New returns a Driver ready for its first (externally seeded) run.
func New(rt runtime.ActorRuntime, fp runtime.TimerFingerprinter, opts ...Option) *Driver {
	d := &Driver{
		g:         graph.New(),
		q:         graph.NewQuiescentPeriod(),
		alloc:     event.NewAllocator(),
		lanes:     pending.New(),
		rt:        rt,
		fp:        fp,
		policy:    LogOnly{},
		partition: NewPartitionMap(),
		cursor:    event.Root.ID,
	}
	d.analyzer = dpor.New(d.g, d.q)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BeginRun resets per-run state and loads the trace to replay. earlier
// and later seed the replay-monitoring invariant queue (§4.3); depthIndex
// is the originating backtrack entry's DepthIndex, kept so an aborted
// replay (see ReplayPolicy, NotifyQuiescence) can requeue the exact same
// entry. Pass 0, 0, 0 for the first, externally-seeded run.
func (d *Driver) BeginRun(next []event.Unique, earlier, later event.ID, depthIndex int) {
	d.lanes.Clear()
	d.currentTrace = nil
	d.nextTrace = next
	d.nextIdx = 0
	d.cursor = event.Root.ID
	d.currentEpoch = 0
	d.awaitingQuiescence = false
	d.aborted = false
	d.partition = NewPartitionMap()
	d.guide = nil
	d.guideIdx = 0
	d.invariantEarlier = earlier
	d.invariantLater = later
	d.entryDepthIndex = depthIndex
	if earlier != 0 || later != 0 {
		d.invariantQueue = []event.ID{earlier, later}
	} else {
		d.invariantQueue = nil
	}
}

// trackInvariant confirms one more step of the replay-monitoring
// invariant BeginRun seeded (§4.3): it pops id off the front of
// invariantQueue when it matches, so that an empty queue at the end of
// the run means both Earlier and Later were actually observed, in that
// order, on this replay's dispatched trace.
func (d *Driver) trackInvariant(id event.ID) {
	if len(d.invariantQueue) > 0 && id == d.invariantQueue[0] {
		d.invariantQueue = d.invariantQueue[1:]
	}
}

// InjectExternal seeds the current run with one external event (§6).
// Start/Send translate directly into runtime calls; Partition and
// WaitQuiescence are queued on the SCHEDULER lane so schedule_new_message
// dispatches them in order alongside discovered messages.
func (d *Driver) InjectExternal(ev external.ExternalEvent) error {
	switch x := ev.(type) {
	case external.Start:
		d.rt.ActorOf(x.PropsCtor.Interface(), x.Name)
		return nil
	case external.Send:
		handle, ok := d.rt.ActorMappings()[x.Receiver]
		if !ok {
			return &InvariantViolation{Invariant: "external-send-target", Detail: x.Receiver + " has no registered actor"}
		}
		d.rt.Send(handle, x.MsgCtor.Interface())
		return nil
	case external.Partition:
		u := event.Unique{Evt: event.NetworkPartition{GroupA: x.GroupA, GroupB: x.GroupB}, ID: d.alloc.Next()}
		d.g.AddMarker(u)
		d.lanes.Push(pending.LaneScheduler, pending.Delivery{U: u})
		return nil
	case external.WaitQuiescence:
		u := event.Unique{Evt: event.WaitQuiescence{}, ID: d.alloc.Next()}
		d.g.AddMarker(u)
		d.lanes.Push(pending.LaneScheduler, pending.Delivery{U: u})
		return nil
	default:
		return ErrUnknownExternalEvent
	}
}

// EventProduced classifies a send observed by the runtime (§4.1).
// Partition-broadcast notifications never arrive here -- they are
// synthesized directly by dispatchPartition -- so every call is a normal
// message: look up or create its Unique and enqueue on the receiver's
// lane, unless the depth bound has been reached.
func (d *Driver) EventProduced(cell runtime.Cell, env runtime.Envelope) {
	if d.maxDepth > 0 && d.g.Depth(d.cursor) >= d.maxDepth {
		d.Stats.DepthBoundDrops++
		return
	}
	msg := event.MsgEvent{Sender: env.Sender(), To: env.Receiver(), Payload: env.Payload()}
	u := d.g.GetOrCreateMessage(msg, d.cursor, d.alloc)
	d.lanes.Push(msg.To, pending.Delivery{U: u, Cell: cell, Env: env})
}

// NotifyTimerScheduled enqueues a timer-style send the same way a normal
// message is enqueued (§4.1).
func (d *Driver) NotifyTimerScheduled(cell runtime.Cell, env runtime.Envelope) {
	d.EventProduced(cell, env)
}

// NotifyTimerCancelled removes at most one matching pending entry from
// receiver's lane; a missing entry is silently ignored (§5, §7).
func (d *Driver) NotifyTimerCancelled(receiver string, id event.ID) {
	d.lanes.RemoveOne(receiver, id)
}

// peekTraceHead advances past Spawn and noise entries in nextTrace and
// returns the next event the replay expects to see.
func (d *Driver) peekTraceHead() (event.Unique, bool) {
	for d.nextIdx < len(d.nextTrace) {
		u := d.nextTrace[d.nextIdx]
		if _, isSpawn := u.Evt.(event.SpawnEvent); isSpawn {
			d.nextIdx++
			continue
		}
		if u.IsNoise() {
			d.nextIdx++
			continue
		}
		return u, true
	}
	return event.Unique{}, false
}

// ScheduleNewMessage chooses the next envelope to dispatch, implementing
// §4.1's selection order, including the partition re-invocation rule:
// messages whose receiver is unreachable under the current PartitionMap
// are silently dropped and selection runs again. Once a ReplayPolicy has
// aborted the run, it reports nothing left to run until the next BeginRun.
func (d *Driver) ScheduleNewMessage() (pending.Delivery, bool) {
	if d.aborted {
		return pending.Delivery{}, false
	}
	for {
		del, ok := d.selectNext()
		if !ok {
			return pending.Delivery{}, false
		}
		if msg, isMsg := del.U.Evt.(event.MsgEvent); isMsg {
			if d.partition.Unreachable(msg.Sender, msg.To) {
				d.Stats.DroppedByPartition++
				continue
			}
		}
		return del, true
	}
}

func (d *Driver) selectNext() (pending.Delivery, bool) {
	if del, ok := d.lanes.PopFront(pending.LanePriority); ok {
		return del, true
	}
	if d.awaitingQuiescence {
		_, del, ok := d.lanes.NextDivergent()
		return del, ok
	}
	if len(d.guide) > 0 {
		return d.selectGuided()
	}
	if head, ok := d.peekTraceHead(); ok {
		var (
			found   pending.Delivery
			matched bool
		)
		switch m := head.Evt.(type) {
		case event.MsgEvent:
			found, matched = d.lanes.FindMatch(m.To, head)
		case event.NetworkPartition, event.WaitQuiescence:
			found, matched = d.lanes.FindMatch(pending.LaneScheduler, head)
		}
		if matched {
			d.nextIdx++
			return found, true
		}
		// Divergent step: pick anything pending and report the divergence.
		del, ok := d.pickDivergent()
		if !ok {
			return del, ok
		}
		if abort := d.policy.OnDivergence(head, del.U, &d.Stats); abort {
			// Abandon this replay attempt rather than dispatching the
			// divergent delivery: ScheduleNewMessage now reports nothing
			// left to run, so the caller proceeds straight to
			// NotifyQuiescence, which requeues the backtrack entry this
			// run was seeded from and hands back the same trace to
			// retry (§9 Open Question 1).
			d.Stats.Aborted++
			d.aborted = true
			return pending.Delivery{}, false
		}
		return del, true
	}
	return d.pickDivergent()
}

// selectGuided implements the minimizer's wildcard-driven replay (§4.4):
// walk the guide instead of nextTrace, resolving each WildCard step
// against its receiver's lane and falling back to a plain divergent pop
// once the guide is exhausted.
func (d *Driver) selectGuided() (pending.Delivery, bool) {
	for d.guideIdx < len(d.guide) {
		step := d.guide[d.guideIdx]
		d.guideIdx++
		if step.Exact != nil {
			if del, ok := d.lanes.FindMatch(pending.LaneScheduler, *step.Exact); ok {
				return del, true
			}
			continue
		}
		if step.Wild != nil {
			if del, ok := d.lanes.ResolveWild(step.Wild.Receiver, step.Wild); ok {
				return del, true
			}
			continue
		}
	}
	return d.pickDivergent()
}

func (d *Driver) pickDivergent() (pending.Delivery, bool) {
	if _, del, ok := d.lanes.NextDivergent(); ok {
		return del, true
	}
	return d.lanes.PopFront(pending.LaneScheduler)
}

// Dispatch delivers del, branching on its event kind: NetworkPartition
// decomposes into PRIORITY notifications (§4.1), WaitQuiescence suspends
// scheduling, and everything else is handed to the runtime.
func (d *Driver) Dispatch(del pending.Delivery) {
	switch evt := del.U.Evt.(type) {
	case event.NetworkPartition:
		d.dispatchPartition(del.U, evt)
	case event.WaitQuiescence:
		d.dispatchWaitQuiescence(del.U)
	default:
		d.rt.DispatchNewMessage(del.Cell, del.Env)
		d.currentTrace = append(d.currentTrace, del.U)
		d.q.Set(del.U.ID, d.currentEpoch)
		d.cursor = del.U.ID
		d.trackInvariant(del.U.ID)
	}
}

func (d *Driver) dispatchPartition(u event.Unique, p event.NetworkPartition) {
	d.partition.Add(p.GroupA, p.GroupB)
	d.currentTrace = append(d.currentTrace, u)
	d.q.Set(u.ID, d.currentEpoch)
	d.trackInvariant(u.ID)
	all := append(append([]string{}, p.GroupA...), p.GroupB...)
	for _, name := range all {
		notice := event.Unique{
			Evt: event.MsgEvent{To: name, Payload: event.BytesPayload{Type: "NodesUnreachable"}},
			ID:  0,
		}
		d.lanes.Push(pending.LanePriority, pending.Delivery{U: notice})
	}
}

func (d *Driver) dispatchWaitQuiescence(u event.Unique) {
	d.awaitingQuiescence = true
	d.pendingQuiescenceMarker = u
}

// RunResult is returned by NotifyQuiescence when an interleaving has
// finished: either a new trace to replay, or Done if the search has
// nothing left to explore.
type RunResult struct {
	Done       bool
	Trace      []event.Unique
	Earlier    event.ID
	Later      event.ID
	DepthIndex int
}

// NotifyQuiescence handles the runtime's idleness callback (§4.1). If
// the driver was awaiting a WaitQuiescence barrier, it commits the
// barrier and returns nil so the caller keeps calling
// ScheduleNewMessage/Dispatch in the same run. If the run was instead
// abandoned by a ReplayPolicy abort, the originating backtrack entry is
// requeued and the same trace is handed back for an immediate retry,
// skipping race detection entirely since this run's trace is only a
// partial, diverged prefix, not a completed interleaving. Otherwise the
// interleaving genuinely finished: races are detected and the next
// trace computed.
func (d *Driver) NotifyQuiescence() *RunResult {
	if d.awaitingQuiescence {
		d.currentEpoch = uint32(d.pendingQuiescenceMarker.ID)
		d.currentTrace = append(d.currentTrace, d.pendingQuiescenceMarker)
		d.g.AddMarker(d.pendingQuiescenceMarker)
		d.q.Set(d.pendingQuiescenceMarker.ID, d.currentEpoch)
		d.awaitingQuiescence = false
		return nil
	}
	if d.aborted {
		d.aborted = false
		d.analyzer.BackTrack.Push(backtrack.Entry{
			DepthIndex:   d.entryDepthIndex,
			Earlier:      d.invariantEarlier,
			Later:        d.invariantLater,
			ReplayPrefix: append([]event.Unique{}, d.nextTrace[d.entryDepthIndex+1:]...),
		})
		return &RunResult{Trace: d.nextTrace, Earlier: d.invariantEarlier, Later: d.invariantLater, DepthIndex: d.entryDepthIndex}
	}
	d.Stats.RunsCompleted++
	if len(d.invariantQueue) > 0 {
		d.Stats.UnconfirmedReplays = append(d.Stats.UnconfirmedReplays, UnconfirmedReplay{
			Earlier: d.invariantEarlier,
			Later:   d.invariantLater,
		})
	}
	d.analyzer.DetectRaces(d.currentTrace)
	next, earlier, later, depthIndex, ok := d.analyzer.NextTrace(d.currentTrace)
	if !ok {
		return &RunResult{Done: true}
	}
	return &RunResult{Trace: next, Earlier: earlier, Later: later, DepthIndex: depthIndex}
}

// NextRun advances the driver to the interleaving described by result,
// or reports ErrNoRuns once the BackTrack queue is empty and the search
// has nothing left to explore (§4.3's "next-prefix selection" loop).
func (d *Driver) NextRun(result *RunResult) error {
	if result.Done {
		return ErrNoRuns
	}
	d.BeginRun(result.Trace, result.Earlier, result.Later, result.DepthIndex)
	return nil
}

// SetGuide switches the run to guide-driven replay (used by the
// minimizer, which verifies a candidate trace by wildcard matching
// rather than exact ids). Calling it with nil reverts to ordinary
// NextTrace-driven replay.
func (d *Driver) SetGuide(g oracle.Guide) {
	d.guide = g
	d.guideIdx = 0
}

// AwaitingQuiescence reports whether a dispatched WaitQuiescence is
// still suspending scheduling (§4.1).
func (d *Driver) AwaitingQuiescence() bool {
	return d.awaitingQuiescence
}

// Aborted reports whether the current run has been abandoned by a
// ReplayPolicy that requested abort on divergence (§9 Open Question 1).
// A caller driving the cooperative run loop must stop injecting
// externals once this is true, the same way it already stops once
// AwaitingQuiescence is true, and proceed straight to NotifyQuiescence.
func (d *Driver) Aborted() bool {
	return d.aborted
}

// CurrentTrace returns the trace produced so far in the active run.
func (d *Driver) CurrentTrace() []event.Unique {
	return d.currentTrace
}

// QuiescentPeriod exposes the quiescence tagging for trace persistence.
func (d *Driver) QuiescentPeriod() *graph.QuiescentPeriod {
	return d.q
}

// IsTimerMarker reports whether p is a timer-style payload, deferring to
// the fp supplied to New and falling back to event.IsTimerMarker when
// none was given. A caller building minimizer.Annotated entries from
// CurrentTrace, or wiring up a minimizer.Clusterizer, should use this
// rather than calling event.IsTimerMarker directly, so timer
// classification always agrees with this Driver's instrumentation.
func (d *Driver) IsTimerMarker(p event.Payload) bool {
	if d.fp != nil {
		return d.fp.IsTimerMarker(p)
	}
	return event.IsTimerMarker(p)
}
