package oracle

import "dpor/event"

// WildCard is a message-selector predicate used at replay to match any
// pending message satisfying a contract, rather than requiring the
// original exact id (§4.4, GLOSSARY). Resolve picks which pending entry
// is delivered when more than one matches; it defaults to
// BackTrackStrategy when left nil. Backtracks is set by
// pending.Lanes.ResolveWild to the matches the resolver registered as
// backtrack points; nothing else in this module reads it.
type WildCard struct {
	Receiver   string
	Match      func(event.Unique) bool
	Resolve    AmbiguityResolver
	Backtracks []event.Unique
}

// GuideStep is one step of a Guide: either an exact Unique (for the
// NetworkPartition/WaitQuiescence markers the minimizer never
// wildcards) or a WildCard predicate (for a kept MsgEvent).
type GuideStep struct {
	Exact *event.Unique
	Wild  *WildCard
}

// Guide replaces a literal NextTrace when the minimizer re-runs the
// driver as an Oracle: each step tells the driver which pending entry to
// treat as "the next expected delivery" without committing to its exact
// id, since ids may shift once other messages are removed from the
// trace.
type Guide []GuideStep
