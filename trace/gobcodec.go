package trace

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"
	"sync"

	"dpor/event"
)

func init() {
	Register(event.MsgEvent{})
	Register(event.NetworkPartition{})
	Register(event.WaitQuiescence{})
	Register(event.SpawnEvent{})
	Register(event.BytesPayload{})
	Register(event.TimerMarker{})
}

var (
	registerMu sync.Mutex
	registered = map[reflect.Type]bool{}
)

// Register wraps gob.Register with a one-time capitalization check,
// grounded on ReshiAdavan-Sentinel/gobWrapper's Register: a gob value
// with an unexported field silently loses that field on the wire, which
// is far easier to catch here than after a failed replay. Application
// Payload implementations carried inside a MsgEvent must call Register
// before the first Encode.
func Register(value any) {
	t := reflect.TypeOf(value)
	registerMu.Lock()
	if registered[t] {
		registerMu.Unlock()
		return
	}
	registered[t] = true
	registerMu.Unlock()
	warnLowercaseFields(t)
	gob.Register(value)
}

func warnLowercaseFields(t reflect.Type) {
	if t == nil || t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			fmt.Printf("trace: field %s of %s is unexported and will not round-trip through gob\n", f.Name, t.Name())
		}
	}
}

// gobLog is the wire shape of a Log.
type gobLog struct {
	Events []event.Unique
	Epochs map[event.ID]uint32
}

// GobCodec is the default Codec, backed by encoding/gob.
type GobCodec struct{}

func (GobCodec) Encode(l *Log) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobLog{Events: l.events, Epochs: l.epochs}); err != nil {
		return nil, fmt.Errorf("trace: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (GobCodec) Decode(b []byte) (*Log, error) {
	var g gobLog
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&g); err != nil {
		return nil, fmt.Errorf("trace: decode: %w", err)
	}
	return &Log{events: g.Events, epochs: g.Epochs}, nil
}
