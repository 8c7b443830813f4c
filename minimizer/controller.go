package minimizer

import (
	"context"
	"time"

	"dpor/event"
	"dpor/external"
	"dpor/oracle"
)

// Result is what a Controller delivers once its minimization run ends,
// whether by completion or by an early Stop.
type Result struct {
	Trace []event.Unique
	Stats Stats
}

// Controller runs a Clusterizer in the background and lets the caller
// cancel it early, grounded on runner/runner.go's Runner: that type owns
// a goroutine driven by commands sent over a channel and reports back
// over another. Controller generalizes the single relevant command --
// "stop, return what you have" -- since the minimizer has no pause or
// resume notion, only an overall time budget to honor (§5).
type Controller struct {
	cancel context.CancelFunc
	done   chan Result
}

// Start launches a minimization run in its own goroutine.
func (c *Clusterizer) Start(annotated []Annotated, externals []external.ExternalEvent, fp oracle.ViolationFingerprint, o oracle.Oracle, budget time.Duration) *Controller {
	var ctx context.Context
	var cancel context.CancelFunc
	if budget > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), budget)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	ctl := &Controller{cancel: cancel, done: make(chan Result, 1)}
	go func() {
		trace, stats := c.MinimizeContext(ctx, annotated, externals, fp, o)
		ctl.done <- Result{Trace: trace, Stats: stats}
	}()
	return ctl
}

// Stop requests early termination; the run returns its best-so-far
// result rather than erroring (§5, §7).
func (c *Controller) Stop() {
	c.cancel()
}

// Wait blocks until the run finishes, by budget, by Stop, or normally.
func (c *Controller) Wait() Result {
	return <-c.done
}
