package value

import (
	"encoding/base64"

	"github.com/nereid-labs/serde"
)

// ToValue drives v through a tree-building Serializer and returns the
// resulting Value. The builder holds no explicit stack of open containers
// beyond what the Go call stack already provides: every
// terminal step (a scalar Serialize* call, or a container's End) leaves its
// result in builder.pending, and the caller that just invoked
// v.SerializeWith(builder) reads it back immediately after the call
// returns.
func ToValue(v serde.Serializable) (Value, error) {
	b := &builder{}
	if err := v.SerializeWith(b); err != nil {
		return Value{}, err
	}
	return b.pending, nil
}

type builder struct {
	pending Value
}

func (b *builder) SerializeBool(v bool) error    { b.pending = Bool(v); return nil }
func (b *builder) SerializeI8(v int8) error      { b.pending = Int64(int64(v)); return nil }
func (b *builder) SerializeI16(v int16) error    { b.pending = Int64(int64(v)); return nil }
func (b *builder) SerializeI32(v int32) error    { b.pending = Int64(int64(v)); return nil }
func (b *builder) SerializeI64(v int64) error    { b.pending = Int64(v); return nil }
func (b *builder) SerializeU8(v uint8) error     { b.pending = Int64(int64(v)); return nil }
func (b *builder) SerializeU16(v uint16) error   { b.pending = Int64(int64(v)); return nil }
func (b *builder) SerializeU32(v uint32) error   { b.pending = Int64(int64(v)); return nil }
func (b *builder) SerializeU64(v uint64) error {
	if v <= 1<<63-1 {
		b.pending = Int64(int64(v))
	} else {
		b.pending = Float64(float64(v))
	}
	return nil
}
func (b *builder) SerializeF32(v float32) error { b.pending = Float64(float64(v)); return nil }
func (b *builder) SerializeF64(v float64) error { b.pending = Float64(v); return nil }
func (b *builder) SerializeChar(v rune) error    { b.pending = String(string(v)); return nil }
func (b *builder) SerializeStr(v string) error   { b.pending = String(v); return nil }
func (b *builder) SerializeBytes(v []byte) error {
	b.pending = String(base64.StdEncoding.EncodeToString(v))
	return nil
}
func (b *builder) SerializeUnit() error { b.pending = Null(); return nil }
func (b *builder) SerializeNone() error { b.pending = Null(); return nil }
func (b *builder) SerializeSome(v serde.Serializable) error { return v.SerializeWith(b) }

func (b *builder) SerializeUnitStruct(name string) error { b.pending = Null(); return nil }

func (b *builder) SerializeNewtypeStruct(name string, v serde.Serializable) error {
	return v.SerializeWith(b)
}

func (b *builder) SerializeUnitVariant(enumName string, variantIndex uint32, variantName string) error {
	entry := &serde.OrderedMap[string, Value]{}
	entry.Set(variantName, Array(nil))
	b.pending = Object(entry)
	return nil
}

func (b *builder) SerializeNewtypeVariant(enumName string, variantIndex uint32, variantName string, v serde.Serializable) error {
	if err := v.SerializeWith(b); err != nil {
		return err
	}
	entry := &serde.OrderedMap[string, Value]{}
	entry.Set(variantName, b.pending)
	b.pending = Object(entry)
	return nil
}

type seqBuilder struct {
	b     *builder
	items []Value
}

func (b *builder) SerializeSeq(length serde.Option[int]) (serde.SerializeSeq, error) {
	n := 0
	if length.Valid {
		n = length.Value
	}
	return &seqBuilder{b: b, items: make([]Value, 0, n)}, nil
}

func (s *seqBuilder) SerializeElement(v serde.Serializable) error {
	if err := v.SerializeWith(s.b); err != nil {
		return err
	}
	s.items = append(s.items, s.b.pending)
	return nil
}

func (s *seqBuilder) End() error {
	s.b.pending = Array(s.items)
	return nil
}

func (b *builder) SerializeTuple(length int) (serde.SerializeTuple, error) {
	return &seqBuilder{b: b, items: make([]Value, 0, length)}, nil
}

func (b *builder) SerializeTupleStruct(name string, length int) (serde.SerializeTuple, error) {
	return b.SerializeTuple(length)
}

type variantSeqBuilder struct {
	*seqBuilder
	variantName string
}

func (v *variantSeqBuilder) End() error {
	if err := v.seqBuilder.End(); err != nil {
		return err
	}
	entry := &serde.OrderedMap[string, Value]{}
	entry.Set(v.variantName, v.b.pending)
	v.b.pending = Object(entry)
	return nil
}

func (b *builder) SerializeTupleVariant(enumName string, variantIndex uint32, variantName string, length int) (serde.SerializeTuple, error) {
	return &variantSeqBuilder{seqBuilder: &seqBuilder{b: b, items: make([]Value, 0, length)}, variantName: variantName}, nil
}

type mapBuilder struct {
	b          *builder
	entries    *serde.OrderedMap[string, Value]
	pendingKey string
}

func (b *builder) SerializeMap(length serde.Option[int]) (serde.SerializeMap, error) {
	return &mapBuilder{b: b, entries: &serde.OrderedMap[string, Value]{}}, nil
}

func (m *mapBuilder) SerializeKey(k serde.Serializable) error {
	if err := k.SerializeWith(m.b); err != nil {
		return err
	}
	s, ok := m.b.pending.AsString()
	if !ok {
		return &serde.Error{Kind: serde.ErrInvalidType, Expected: "a string map key"}
	}
	m.pendingKey = s
	return nil
}

func (m *mapBuilder) SerializeValue(v serde.Serializable) error {
	if err := v.SerializeWith(m.b); err != nil {
		return err
	}
	m.entries.Set(m.pendingKey, m.b.pending)
	return nil
}

func (m *mapBuilder) End() error {
	m.b.pending = Object(m.entries)
	return nil
}

type structBuilder struct {
	b       *builder
	entries *serde.OrderedMap[string, Value]
}

func (b *builder) SerializeStruct(name string, length int) (serde.SerializeStruct, error) {
	return &structBuilder{b: b, entries: &serde.OrderedMap[string, Value]{}}, nil
}

func (s *structBuilder) SerializeField(name string, v serde.Serializable) error {
	if err := v.SerializeWith(s.b); err != nil {
		return err
	}
	s.entries.Set(name, s.b.pending)
	return nil
}

func (s *structBuilder) SkipField(name string) error { return nil }

func (s *structBuilder) End() error {
	s.b.pending = Object(s.entries)
	return nil
}

type variantStructBuilder struct {
	*structBuilder
	variantName string
}

func (v *variantStructBuilder) End() error {
	if err := v.structBuilder.End(); err != nil {
		return err
	}
	entry := &serde.OrderedMap[string, Value]{}
	entry.Set(v.variantName, v.b.pending)
	v.b.pending = Object(entry)
	return nil
}

func (b *builder) SerializeStructVariant(enumName string, variantIndex uint32, variantName string, length int) (serde.SerializeStruct, error) {
	return &variantStructBuilder{structBuilder: &structBuilder{b: b, entries: &serde.OrderedMap[string, Value]{}}, variantName: variantName}, nil
}
