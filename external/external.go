// Package external defines the External events accepted by a search run
// (§6): Start, Send, NetworkPartition and WaitQuiescence. This is the
// request/response vocabulary the driver consumes to build the initial
// scenario before it hands control to DPOR.
//
// The shape follows the teacher's request.Request (a target id, a method
// name and reflected parameters), generalized from node ids to actor
// names and from a single request kind to the four kinds a search run
// accepts.
package external

import "reflect"

// Kind tags the variant of an ExternalEvent.
type Kind int

const (
	KindStart Kind = iota
	KindSend
	KindPartition
	KindWaitQuiescence
)

// ExternalEvent is one instruction in the scenario driving a search.
type ExternalEvent interface {
	Kind() Kind
}

// Start spawns an actor using the given constructor function, named Name.
// PropsCtor is held as a reflect.Value so callers can stay type-safe on
// their side while the runtime contract stays generic, mirroring how
// request.Request carries reflected parameters.
type Start struct {
	Name      string
	PropsCtor reflect.Value
}

func (Start) Kind() Kind { return KindStart }

// Send injects a user message addressed to Receiver. MsgCtor is the
// reflected constructor producing the message value passed to the
// runtime's send contract.
type Send struct {
	Receiver string
	MsgCtor  reflect.Value
}

func (Send) Kind() Kind { return KindSend }

// Partition atomically separates GroupA from GroupB.
type Partition struct {
	GroupA, GroupB []string
}

func (Partition) Kind() Kind { return KindPartition }

// WaitQuiescence is a barrier: the scenario blocks until the system is
// idle before continuing.
type WaitQuiescence struct{}

func (WaitQuiescence) Kind() Kind { return KindWaitQuiescence }
