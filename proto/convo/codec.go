package convo

import (
	"fmt"
	"time"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CodecName is the content-subtype every ConversationService call uses.
// Payloads are protobuf wire format laid out as in convo.proto.
const CodecName = "convo-proto"

func init() {
	encoding.RegisterCodec(wireCodec{})
}

// wireMessage is implemented by every type of convo.proto.
type wireMessage interface {
	marshalWire(e *encoder)
	unmarshalField(num protowire.Number, f field) error
}

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("marshal %T: not a convo message", v)
	}
	e := &encoder{}
	m.marshalWire(e)
	if e.err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, e.err)
	}
	return e.b, nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("unmarshal %T: not a convo message", v)
	}
	if err := decode(data, m); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

func (wireCodec) Name() string {
	return CodecName
}

// encoder appends fields and keeps the first error.
type encoder struct {
	b   []byte
	err error
}

func (e *encoder) putString(num protowire.Number, s string) {
	if s == "" {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, s)
}

// putOptionalString writes s whenever it is set, even when empty.
func (e *encoder) putOptionalString(num protowire.Number, s *string) {
	if s == nil {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, *s)
}

func (e *encoder) putStrings(num protowire.Number, values []string) {
	for _, s := range values {
		e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
		e.b = protowire.AppendString(e.b, s)
	}
}

func (e *encoder) putBool(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

func (e *encoder) putInt(num protowire.Number, v int) {
	if v == 0 {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(int64(v)))
}

func (e *encoder) putTimestamp(num protowire.Number, t time.Time) {
	if t.IsZero() || e.err != nil {
		return
	}
	b, err := proto.Marshal(timestamppb.New(t))
	if err != nil {
		e.err = err
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, b)
}

func (e *encoder) putMessage(num protowire.Number, m wireMessage) {
	if e.err != nil {
		return
	}
	inner := &encoder{}
	m.marshalWire(inner)
	if inner.err != nil {
		e.err = inner.err
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, inner.b)
}

// field is one decoded value. raw is set for length-delimited fields,
// val for varints.
type field struct {
	raw []byte
	val uint64
}

func (f field) asString() string { return string(f.raw) }

func (f field) asBool() bool { return protowire.DecodeBool(f.val) }

func (f field) asInt() int { return int(int64(f.val)) }

func (f field) asTimestamp() (time.Time, error) {
	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(f.raw, &ts); err != nil {
		return time.Time{}, err
	}
	if err := ts.CheckValid(); err != nil {
		return time.Time{}, err
	}
	return ts.AsTime(), nil
}

// decode walks data and hands every known wire type to m.
// Fixed-width and group fields are skipped.
func decode(data []byte, m wireMessage) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		var f field
		switch typ {
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(data)
		case protowire.VarintType:
			f.val, n = protowire.ConsumeVarint(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if err := m.unmarshalField(num, f); err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
	}
	return nil
}
