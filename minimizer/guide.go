package minimizer

import (
	"dpor/event"
	"dpor/oracle"
)

// BuildGuide rewrites the kept portion of an annotated trace into an
// oracle.Guide (§4.4: "rewritten as a WildCard predicate over the
// runtime-pending queue at that dispatch point"). NetworkPartition and
// WaitQuiescence markers are never wildcarded -- they are structural,
// not content-addressed -- so they become Exact steps. Timer deliveries
// match any pending message that causesClockIncrement, bypassing the
// configured resolver (§4.4's last line). isTimerMarker recognizes a
// candidate's payload as timer-style; pass nil to fall back to
// event.IsTimerMarker, the same default runtime.TimerFingerprinter
// documents. A caller driving a live Driver should pass its
// Driver.IsTimerMarker/Engine.IsTimerMarker here instead, so the guide
// agrees with whatever fp the driver was constructed with.
func BuildGuide(trace []Annotated, resolve oracle.AmbiguityResolver, isTimerMarker func(event.Payload) bool) oracle.Guide {
	if isTimerMarker == nil {
		isTimerMarker = event.IsTimerMarker
	}
	guide := make(oracle.Guide, 0, len(trace))
	for _, a := range trace {
		switch m := a.U.Evt.(type) {
		case event.MsgEvent:
			want := m.Payload
			to := m.To
			isTimer := a.Timer
			guide = append(guide, oracle.GuideStep{Wild: &oracle.WildCard{
				Receiver: to,
				Match:    matchPredicate(to, want, isTimer, isTimerMarker),
				Resolve:  resolverFor(isTimer, resolve),
			}})
		default:
			u := a.U
			guide = append(guide, oracle.GuideStep{Exact: &u})
		}
	}
	return guide
}

func matchPredicate(to string, want event.Payload, isTimer bool, isTimerMarker func(event.Payload) bool) func(event.Unique) bool {
	return func(cand event.Unique) bool {
		cm, ok := cand.Evt.(event.MsgEvent)
		if !ok || cm.To != to {
			return false
		}
		if isTimer {
			return isTimerMarker(cm.Payload)
		}
		if want == nil || cm.Payload == nil {
			return want == nil && cm.Payload == nil
		}
		return cm.Payload.Equal(want)
	}
}

// resolverFor bypasses the configured strategy for timers: they match
// any pending message that causesClockIncrement (matchPredicate already
// encodes that), so nil lets pending.Lanes.ResolveWild fall back to its
// default rather than applying the cluster's configured strategy.
func resolverFor(isTimer bool, resolve oracle.AmbiguityResolver) oracle.AmbiguityResolver {
	if isTimer {
		return nil
	}
	return resolve
}
