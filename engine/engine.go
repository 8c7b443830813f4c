// Package engine assembles the dependency graph, analyzer and driver
// behind one exported entry point (design note §9: "collect them into a
// single owned struct DporEngine that the runtime holds exactly once").
// It drives the cooperative run loop described in §5: externals are
// injected only once nothing else is pending, and every dispatch is
// followed by AwaitEnqueue before the next decision is made.
package engine

import (
	"dpor/driver"
	"dpor/event"
	"dpor/external"
	"dpor/runtime"
)

// Option configures an Engine at construction time, following the
// teacher's functional-options shape (config.SchedulerOption). It is an
// alias for driver.Option since every current knob lives on the driver.
type Option = driver.Option

// Engine is the DporEngine façade: the runtime holds exactly one of
// these and drives it entirely through callbacks and Explore.
type Engine struct {
	drv *driver.Driver
	rt  runtime.ActorRuntime
}

// New constructs an Engine over rt, using fp to recognize timer-marker
// payloads.
func New(rt runtime.ActorRuntime, fp runtime.TimerFingerprinter, opts ...Option) *Engine {
	return &Engine{drv: driver.New(rt, fp, opts...), rt: rt}
}

// Driver exposes the underlying Driver for callers that need its raw
// callback surface (event_produced, notify_timer_*) wired directly to
// an instrumented runtime.
func (e *Engine) Driver() *driver.Driver { return e.drv }

// IsTimerMarker delegates to the underlying Driver's IsTimerMarker, so a
// minimizer.Clusterizer driven by this Engine can be wired with
// e.IsTimerMarker to agree with the fp this Engine was constructed with.
func (e *Engine) IsTimerMarker(p event.Payload) bool { return e.drv.IsTimerMarker(p) }

// Run drives one interleaving to completion: externals are injected one
// at a time, only once nothing else is pending and the driver is not
// suspended on a WaitQuiescence barrier, so a barrier genuinely blocks
// later externals until the runtime reports idleness (§4.1, S3). Once a
// ReplayPolicy has aborted the run, external injection also stops: the
// loop drains straight to NotifyQuiescence, which requeues the
// backtrack entry instead of treating this partial trace as complete.
func (e *Engine) Run(externals []external.ExternalEvent) *driver.RunResult {
	idx := 0
	for {
		if del, ok := e.drv.ScheduleNewMessage(); ok {
			e.drv.Dispatch(del)
			e.rt.AwaitEnqueue()
			continue
		}
		if idx < len(externals) && !e.drv.AwaitingQuiescence() && !e.drv.Aborted() {
			e.drv.InjectExternal(externals[idx])
			idx++
			e.rt.AwaitEnqueue()
			continue
		}
		result := e.drv.NotifyQuiescence()
		if result == nil {
			continue // barrier committed; resume external injection
		}
		return result
	}
}

// Explore runs the full DPOR search: BeginRun, Run to completion, then
// follow NextTrace until the BackTrack queue is empty (§4.3's
// "next-prefix selection" loop, tail-called here instead of recursively).
func (e *Engine) Explore(externals []external.ExternalEvent) driver.Stats {
	e.drv.BeginRun(nil, 0, 0, 0)
	result := e.Run(externals)
	for {
		if err := e.drv.NextRun(result); err != nil {
			break
		}
		e.rt.RestartSystem()
		result = e.Run(externals)
	}
	return e.drv.Stats
}
