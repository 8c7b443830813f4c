package minimizer

import (
	"testing"

	"dpor/event"
	"dpor/oracle"
)

func TestBuildGuideMarkersAreExactTimersAreWild(t *testing.T) {
	trace := []Annotated{
		{U: event.Unique{Evt: event.NetworkPartition{GroupA: []string{"a"}}, ID: 1}},
		{U: event.Unique{Evt: event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "x"}}, ID: 2}},
		{U: event.Unique{Evt: event.MsgEvent{To: "c", Payload: event.TimerMarker{Receiver: "c", TimerName: "t"}}, ID: 3}, Timer: true},
	}
	guide := BuildGuide(trace, oracle.LastOnlyStrategy, nil)

	if guide[0].Exact == nil || guide[0].Wild != nil {
		t.Fatalf("expected the NetworkPartition marker to become an Exact step")
	}
	if guide[1].Wild == nil {
		t.Fatalf("expected the plain message to become a Wild step")
	}
	if guide[2].Wild == nil || guide[2].Wild.Resolve != nil {
		t.Fatalf("expected the timer step to be Wild with a nil resolver (falls back to BackTrackStrategy)")
	}
}

func TestBuildGuideWildMatchPredicateIgnoresOtherReceivers(t *testing.T) {
	trace := []Annotated{
		{U: event.Unique{Evt: event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "x"}}, ID: 1}},
	}
	guide := BuildGuide(trace, oracle.LastOnlyStrategy, nil)
	match := guide[0].Wild.Match

	if match(event.Unique{Evt: event.MsgEvent{To: "other", Payload: event.BytesPayload{Type: "x"}}}) {
		t.Fatalf("expected the predicate to reject a different receiver")
	}
	if !match(event.Unique{Evt: event.MsgEvent{To: "b", Payload: event.BytesPayload{Type: "x"}}}) {
		t.Fatalf("expected the predicate to accept an equal payload to the same receiver")
	}
}

func TestBuildGuideTimerStepUsesSuppliedFingerprinter(t *testing.T) {
	trace := []Annotated{
		{U: event.Unique{Evt: event.MsgEvent{To: "c", Payload: event.BytesPayload{Type: "not-a-real-timer"}}, ID: 1}, Timer: true},
	}
	var calls int
	custom := func(p event.Payload) bool {
		calls++
		return true
	}
	guide := BuildGuide(trace, oracle.LastOnlyStrategy, custom)
	match := guide[0].Wild.Match

	if !match(event.Unique{Evt: event.MsgEvent{To: "c", Payload: event.BytesPayload{Type: "whatever"}}}) {
		t.Fatalf("expected the custom fingerprinter's true verdict to be honored")
	}
	if calls == 0 {
		t.Fatalf("expected the supplied isTimerMarker to be called instead of event.IsTimerMarker")
	}
}
