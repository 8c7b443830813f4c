package trace

import (
	"testing"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"dpor/event"
)

func TestGobCodecRoundTrip(t *testing.T) {
	events := []event.Unique{
		{Evt: event.MsgEvent{Sender: "a", To: "b", Payload: event.BytesPayload{Type: "ping"}}, ID: 1},
		{Evt: event.WaitQuiescence{}, ID: 2},
	}
	epochs := map[event.ID]uint32{1: 0, 2: 0}
	log := New(events, epochs)

	var codec GobCodec
	b, err := codec.Encode(log)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := codec.Decode(b)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if !slices.Equal(log.IDs(), decoded.IDs()) {
		t.Fatalf("expected id sequences to match, got %v and %v", log.IDs(), decoded.IDs())
	}
	if !maps.EqualFunc(log.QuiescentPeriod(), decoded.QuiescentPeriod(), func(a, b uint32) bool { return a == b }) {
		t.Fatalf("expected quiescence tagging to round-trip unchanged")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	// Calling Register twice for the same type must not panic. gob.Register
	// accepts the same type under the same name again; the dedup table in
	// Register additionally skips the repeated unexported-field check.
	Register(event.BytesPayload{})
	Register(event.BytesPayload{})
}
