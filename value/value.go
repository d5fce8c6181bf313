// Package value implements a self-describing value tree: a closed tagged
// union capable of representing any JSON-shaped document, used as both a
// serde.Serializable/Deserializer bridge and the retained form behind
// Value.Query.
package value

import (
	"encoding/base64"
	"sort"

	"github.com/nereid-labs/serde"
)

// Kind identifies which variant a Value currently holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt64:
		return "signed integer"
	case KindFloat64:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union: Null, Boolean, SignedInteger64, Float64,
// String, Array, Object. There is no dedicated Bytes variant; []byte values
// round-trip as base64-encoded strings, the same convention the JSON driver
// uses.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *serde.OrderedMap[string, Value]
}

func Null() Value               { return Value{kind: KindNull} }
func Bool(v bool) Value         { return Value{kind: KindBool, b: v} }
func Int64(v int64) Value       { return Value{kind: KindInt64, i: v} }
func Float64(v float64) Value   { return Value{kind: KindFloat64, f: v} }
func String(v string) Value     { return Value{kind: KindString, s: v} }
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// Object wraps m, normalizing its observable iteration order to ascending
// key order (by scalar code point), so serialization never depends on
// insertion order. Go's byte-wise string comparison agrees with code-point
// order for valid UTF-8, so a plain sort.Slice suffices.
func Object(m *serde.OrderedMap[string, Value]) Value {
	if m != nil && len(m.Entries) > 1 {
		sorted := make([]serde.MapEntry[string, Value], len(m.Entries))
		copy(sorted, m.Entries)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		m = &serde.OrderedMap[string, Value]{Entries: sorted}
	}
	return Value{kind: KindObject, obj: m}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindFloat64:
		return v.f, true
	case KindInt64:
		return float64(v.i), true
	default:
		return 0, false
	}
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (*serde.OrderedMap[string, Value], bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Equal reports deep structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt64:
		return v.i == other.i
	case KindFloat64:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj == nil || other.obj == nil {
			return v.obj == other.obj
		}
		if len(v.obj.Entries) != len(other.obj.Entries) {
			return false
		}
		for _, e := range v.obj.Entries {
			ov, ok := other.obj.Get(e.Key)
			if !ok || !e.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ---- Value as serde.Serializable: replay the tree through any Serializer ----

func (v Value) SerializeWith(s serde.Serializer) error {
	switch v.kind {
	case KindNull:
		return s.SerializeUnit()
	case KindBool:
		return s.SerializeBool(v.b)
	case KindInt64:
		return s.SerializeI64(v.i)
	case KindFloat64:
		return s.SerializeF64(v.f)
	case KindString:
		return s.SerializeStr(v.s)
	case KindArray:
		seq, err := s.SerializeSeq(serde.Some(len(v.arr)))
		if err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := seq.SerializeElement(item); err != nil {
				return err
			}
		}
		return seq.End()
	case KindObject:
		var n int
		if v.obj != nil {
			n = len(v.obj.Entries)
		}
		m, err := s.SerializeMap(serde.Some(n))
		if err != nil {
			return err
		}
		if v.obj != nil {
			for _, e := range v.obj.Entries {
				if err := m.SerializeKey(serde.Str(e.Key)); err != nil {
					return err
				}
				if err := m.SerializeValue(e.Value); err != nil {
					return err
				}
			}
		}
		return m.End()
	default:
		return &serde.Error{Kind: serde.ErrUnsupportedFormat}
	}
}

// ---- Value as serde.Deserializable: capture whatever DeserializeAny sees ----

func (Value) DeserializeWith(d serde.Deserializer) (any, error) {
	return d.DeserializeAny(captureVisitor{})
}

// captureVisitor builds a Value from any shape a Deserializer presents,
// the generic "decode as arbitrary document" capability every format
// driver's DeserializeAny must support.
type captureVisitor struct{ serde.BaseVisitor }

func (captureVisitor) ExpectedType() string { return "any value" }

func (captureVisitor) VisitBool(v bool) (any, error)   { return Bool(v), nil }
func (captureVisitor) VisitI64(v int64) (any, error)   { return Int64(v), nil }
func (captureVisitor) VisitU64(v uint64) (any, error) {
	if v <= 1<<63-1 {
		return Int64(int64(v)), nil
	}
	return Float64(float64(v)), nil
}
func (captureVisitor) VisitF64(v float64) (any, error)    { return Float64(v), nil }
func (captureVisitor) VisitChar(v rune) (any, error)      { return String(string(v)), nil }
func (captureVisitor) VisitStr(v string) (any, error)     { return String(v), nil }
func (captureVisitor) VisitString(v string) (any, error)  { return String(v), nil }
func (captureVisitor) VisitBytes(v []byte) (any, error) {
	return String(base64.StdEncoding.EncodeToString(v)), nil
}
func (captureVisitor) VisitUnit() (any, error)            { return Null(), nil }
func (captureVisitor) VisitNone() (any, error)             { return Null(), nil }
func (captureVisitor) VisitSome(d serde.Deserializer) (any, error) {
	return d.DeserializeAny(captureVisitor{})
}

func captureSeed(d serde.Deserializer) (any, error) {
	return d.DeserializeAny(captureVisitor{})
}

func (captureVisitor) VisitSeq(seq serde.SeqAccess) (any, error) {
	items := []Value{}
	for {
		r, ok, err := seq.NextElement(captureSeed)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, r.(Value))
	}
	return Array(items), nil
}

func (captureVisitor) VisitMap(m serde.MapAccess) (any, error) {
	out := &serde.OrderedMap[string, Value]{}
	keySeed := func(d serde.Deserializer) (any, error) { return serde.DeserializeStr(d) }
	for {
		k, ok, err := m.NextKey(keySeed)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		val, err := m.NextValue(captureSeed)
		if err != nil {
			return nil, err
		}
		out.Set(k.(string), val.(Value))
	}
	return Object(out), nil
}
