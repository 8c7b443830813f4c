// Package trace implements the persisted trace representation SPEC_FULL
// §12 adds on top of spec.md §6: the ordered sequence of Uniques plus
// the quiescence tagging needed to reconstruct a ShiViz-style log
// without this module depending on a visualization library.
package trace

import "dpor/event"

// Log is a persisted trace: the event sequence plus the quiescence
// epoch each event was tagged with (§3's QuiescentPeriod, carried
// alongside the sequence so an external exporter needs nothing else).
type Log struct {
	events []event.Unique
	epochs map[event.ID]uint32
}

// New copies events and epochs into a new Log.
func New(events []event.Unique, epochs map[event.ID]uint32) *Log {
	evCopy := append([]event.Unique{}, events...)
	epCopy := make(map[event.ID]uint32, len(epochs))
	for k, v := range epochs {
		epCopy[k] = v
	}
	return &Log{events: evCopy, epochs: epCopy}
}

// Events returns the logged sequence, in delivery order.
func (l *Log) Events() []event.Unique { return l.events }

// QuiescentPeriod returns the id -> epoch tagging (§3).
func (l *Log) QuiescentPeriod() map[event.ID]uint32 { return l.epochs }

// IDs returns the id sequence alone -- two logs "replay identically iff
// their id sequences match" (§6).
func (l *Log) IDs() []event.ID {
	ids := make([]event.ID, len(l.events))
	for i, u := range l.events {
		ids[i] = u.ID
	}
	return ids
}

// Codec encodes and decodes a Log for persistence (§6). The actual
// byte-level serialization choice is left to the external CLI; this
// module supplies only GobCodec, the one approach demonstrated anywhere
// in the retrieval pack.
type Codec interface {
	Encode(l *Log) ([]byte, error)
	Decode(b []byte) (*Log, error)
}
