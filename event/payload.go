package event

import (
	"bytes"
	"fmt"
)

// Payload is the application-level message carried by a MsgEvent. Equal
// backs the sibling-matching search in get_or_create_message (§4.2).
type Payload interface {
	Equal(Payload) bool
	fmt.Stringer
}

// BytesPayload is a Payload backed by an opaque type tag and byte slice,
// used when the application protocol has no richer Payload of its own.
type BytesPayload struct {
	Type  string
	Bytes []byte
}

func (b BytesPayload) Equal(other Payload) bool {
	o, ok := other.(BytesPayload)
	return ok && o.Type == b.Type && bytes.Equal(o.Bytes, b.Bytes)
}

func (b BytesPayload) String() string {
	return fmt.Sprintf("%s(%dB)", b.Type, len(b.Bytes))
}

// TimerMarker wraps a scheduled timer tick. Two timer markers match by
// (Receiver, TimerName, Inner, Repeating) only, ignoring Token, the
// timer's transient scheduling handle (§4.2).
type TimerMarker struct {
	Receiver  string
	TimerName string
	Inner     Payload
	Repeating bool
	Token     string
}

func (t TimerMarker) Equal(other Payload) bool {
	o, ok := other.(TimerMarker)
	if !ok {
		return false
	}
	if t.Receiver != o.Receiver || t.TimerName != o.TimerName || t.Repeating != o.Repeating {
		return false
	}
	if t.Inner == nil || o.Inner == nil {
		return t.Inner == o.Inner
	}
	return t.Inner.Equal(o.Inner)
}

func (t TimerMarker) String() string {
	return fmt.Sprintf("Timer(%s/%s repeating=%v %v)", t.Receiver, t.TimerName, t.Repeating, t.Inner)
}

// IsTimerMarker reports whether p is a timer-marker payload. The
// clock-cluster minimizer uses this to identify deliveries that must be
// swept one at a time (§4.4) rather than by clock cluster.
func IsTimerMarker(p Payload) bool {
	_, ok := p.(TimerMarker)
	return ok
}
