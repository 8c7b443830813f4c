// Package event defines the tagged event variants the DPOR engine
// schedules and the Unique identity that makes a delivery addressable
// across runs.
package event

import "fmt"

// Kind tags the variant of an Event.
type Kind int

const (
	KindRoot Kind = iota
	KindMsg
	KindNetworkPartition
	KindWaitQuiescence
	KindSpawn
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindMsg:
		return "Msg"
	case KindNetworkPartition:
		return "NetworkPartition"
	case KindWaitQuiescence:
		return "WaitQuiescence"
	case KindSpawn:
		return "Spawn"
	default:
		return "Unknown"
	}
}

// Event is the tagged variant of an action the driver schedules or
// observes. New event implementations should include a kind tag to
// prevent accidental collisions with other implementations.
type Event interface {
	Kind() Kind
	// Receiver returns the lane-determining actor name for this event.
	// Events with no receiver lane (NetworkPartition, WaitQuiescence, Root)
	// return "".
	Receiver() string
	fmt.Stringer
}

// MsgEvent is a single message delivery from Sender to Receiver.
type MsgEvent struct {
	Sender, To string
	Payload    Payload
}

func (m MsgEvent) Kind() Kind       { return KindMsg }
func (m MsgEvent) Receiver() string { return m.To }
func (m MsgEvent) String() string {
	return fmt.Sprintf("{Msg %s->%s %v}", m.Sender, m.To, m.Payload)
}

// NetworkPartition is a bidirectional partition between two groups of
// actors.
type NetworkPartition struct {
	GroupA, GroupB []string
}

func (p NetworkPartition) Kind() Kind       { return KindNetworkPartition }
func (p NetworkPartition) Receiver() string { return "" }
func (p NetworkPartition) String() string {
	return fmt.Sprintf("{NetworkPartition %v | %v}", p.GroupA, p.GroupB)
}

// WaitQuiescence is a barrier: the driver suspends scheduling until the
// runtime reports system-wide idleness.
type WaitQuiescence struct{}

func (w WaitQuiescence) Kind() Kind       { return KindWaitQuiescence }
func (w WaitQuiescence) Receiver() string { return "" }
func (w WaitQuiescence) String() string   { return "{WaitQuiescence}" }

// SpawnEvent records actor creation. It is observed only and is never
// scheduled.
type SpawnEvent struct {
	Name string
}

func (s SpawnEvent) Kind() Kind       { return KindSpawn }
func (s SpawnEvent) Receiver() string { return s.Name }
func (s SpawnEvent) String() string   { return fmt.Sprintf("{Spawn %s}", s.Name) }

type rootEvent struct{}

func (rootEvent) Kind() Kind       { return KindRoot }
func (rootEvent) Receiver() string { return "" }
func (rootEvent) String() string   { return "{Root}" }

// ID is the monotonically allocated identity of a Unique delivery.
// id == 0 marks a system/noise event to be filtered from race analysis.
type ID uint64

// Unique pairs an Event with a stable identity.
type Unique struct {
	Evt Event
	ID  ID
}

// Root is the sentinel Unique at the base of the dependency graph.
var Root = Unique{Evt: rootEvent{}, ID: 0}

func (u Unique) String() string {
	if u.Evt == nil {
		return "<nil unique>"
	}
	return fmt.Sprintf("#%d%v", u.ID, u.Evt)
}

// IsRoot reports whether u is the sentinel root event.
func (u Unique) IsRoot() bool {
	_, ok := u.Evt.(rootEvent)
	return ok
}

// IsNoise reports whether u has id == 0, i.e. is a system/noise event to
// be filtered from race analysis and co-enabledness checks.
func (u Unique) IsNoise() bool {
	return u.ID == 0 && !u.IsRoot()
}

// Matches implements the equivalence test used by schedule_new_message
// (§4.1) when looking for a pending entry equivalent to the NextTrace
// head: receiver names match AND id matches, or id == 0 where only the
// receiver needs to match.
func (u Unique) Matches(o Unique) bool {
	um, uok := u.Evt.(MsgEvent)
	om, ook := o.Evt.(MsgEvent)
	if !uok || !ook {
		return u.ID == o.ID
	}
	if um.To != om.To {
		return false
	}
	return u.ID == o.ID || u.ID == 0 || o.ID == 0
}

// Allocator hands out monotonically increasing, never-reused ids.
// Id 0 is reserved for noise events and is never handed out by Next.
type Allocator struct {
	next ID
}

// NewAllocator creates an Allocator whose first Next() call returns 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the next unallocated id.
func (a *Allocator) Next() ID {
	id := a.next
	a.next++
	return id
}
