package oracle

import "dpor/event"

// AmbiguityResolver implements design note §9's pluggable ambiguity
// resolution capability: given a predicate, the pending list at the
// dispatch point, and a way to register a backtrack point, choose which
// pending entry to deliver.
type AmbiguityResolver func(pred func(event.Unique) bool, pendingList []event.Unique, setBacktrack func(index int, candidate event.Unique)) (int, bool)

// SrcDstFIFOOnly matches only if the head of pendingList satisfies pred;
// otherwise it gives up on this delivery (§4.4's table).
func SrcDstFIFOOnly(pred func(event.Unique) bool, pendingList []event.Unique, _ func(int, event.Unique)) (int, bool) {
	if len(pendingList) > 0 && pred(pendingList[0]) {
		return 0, true
	}
	return 0, false
}

// LastOnlyStrategy matches only the last matching pending message.
func LastOnlyStrategy(pred func(event.Unique) bool, pendingList []event.Unique, _ func(int, event.Unique)) (int, bool) {
	for i := len(pendingList) - 1; i >= 0; i-- {
		if pred(pendingList[i]) {
			return i, true
		}
	}
	return 0, false
}

// BackTrackStrategy matches the first matching message and registers a
// backtrack point for every later match, by fingerprint-uniqueness, in
// reversed order: a later match whose fingerprint equals one already
// covered -- the dispatched entry or a later match closer to the end --
// is skipped, since backtracking to it would only re-explore a state
// already reached by the entry it duplicates (§4.4).
func BackTrackStrategy(pred func(event.Unique) bool, pendingList []event.Unique, setBacktrack func(int, event.Unique)) (int, bool) {
	matches := matchIndexes(pred, pendingList)
	if len(matches) == 0 {
		return 0, false
	}
	chosen := matches[0]
	covered := []event.Unique{pendingList[chosen]}
	for i := len(matches) - 1; i >= 1; i-- {
		idx := matches[i]
		if fingerprintSeen(pendingList[idx], covered) {
			continue
		}
		covered = append(covered, pendingList[idx])
		setBacktrack(idx, pendingList[idx])
	}
	return chosen, true
}

// FirstAndLastBacktrack matches the first matching message and registers
// exactly one backtrack point: the last match whose fingerprint differs
// from the dispatched entry's (§4.4). If every later match shares the
// dispatched entry's fingerprint, no backtrack is registered at all.
func FirstAndLastBacktrack(pred func(event.Unique) bool, pendingList []event.Unique, setBacktrack func(int, event.Unique)) (int, bool) {
	matches := matchIndexes(pred, pendingList)
	if len(matches) == 0 {
		return 0, false
	}
	chosen := matches[0]
	covered := []event.Unique{pendingList[chosen]}
	for i := len(matches) - 1; i >= 1; i-- {
		idx := matches[i]
		if fingerprintSeen(pendingList[idx], covered) {
			continue
		}
		setBacktrack(idx, pendingList[idx])
		break
	}
	return chosen, true
}

func matchIndexes(pred func(event.Unique) bool, pendingList []event.Unique) []int {
	var out []int
	for i, u := range pendingList {
		if pred(u) {
			out = append(out, i)
		}
	}
	return out
}

// fingerprintSeen reports whether candidate is content-equivalent (same
// receiver and Payload.Equal) to any entry already in covered (§4.4).
// Non-message events and events with nil payloads are never considered
// equivalent to anything else, so they are always treated as distinct.
func fingerprintSeen(candidate event.Unique, covered []event.Unique) bool {
	for _, c := range covered {
		if sameFingerprint(candidate, c) {
			return true
		}
	}
	return false
}

func sameFingerprint(a, b event.Unique) bool {
	am, aok := a.Evt.(event.MsgEvent)
	bm, bok := b.Evt.(event.MsgEvent)
	if !aok || !bok {
		return false
	}
	if am.To != bm.To {
		return false
	}
	if am.Payload == nil || bm.Payload == nil {
		return false
	}
	return am.Payload.Equal(bm.Payload)
}
