package minimizer

import (
	"testing"
	"time"

	"dpor/oracle"
)

func TestControllerWaitReturnsResult(t *testing.T) {
	current := []Annotated{annotated(1, 1, "a"), annotated(2, 2, "b")}
	o := &fakeOracle{minKeep: 0}
	c := New(None, oracle.BackTrackStrategy)

	ctl := c.Start(current, nil, nil, o, time.Second)
	result := ctl.Wait()

	if result.Stats.ClustersRemoved == 0 {
		t.Fatalf("expected at least one cluster removed within the budget")
	}
}

func TestControllerStopEndsEarly(t *testing.T) {
	current := []Annotated{annotated(1, 1, "a")}
	o := &fakeOracle{minKeep: 0}
	c := New(None, oracle.BackTrackStrategy)

	ctl := c.Start(current, nil, nil, o, 0)
	ctl.Stop()
	// Stop races with the background goroutine by design (§5: best-effort
	// early exit); Wait must still return cleanly rather than block forever.
	_ = ctl.Wait()
}
