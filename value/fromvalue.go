package value

import (
	"encoding/base64"

	"github.com/nereid-labs/serde"
)

// Value also implements serde.Deserializer: any type with a Deserializable
// implementation can be driven directly from an in-memory tree instead of a
// byte stream, which is how structcodec and Value.Query's callers re-decode
// a previously captured document without re-parsing JSON.
//
// Most methods ignore the type hint they're given and dispatch on the
// Value's own kind (visitValue), the same self-describing behavior the
// json.Parser gives its DeserializeBool/DeserializeSeq/etc. The exceptions
// are DeserializeBytes (base64-decodes a String), DeserializeOption,
// DeserializeEnum and DeserializeIgnoredAny.

func (v Value) DeserializeAny(vis serde.Visitor) (any, error)    { return visitValue(v, vis) }
func (v Value) DeserializeBool(vis serde.Visitor) (any, error)   { return visitValue(v, vis) }
func (v Value) DeserializeI64(vis serde.Visitor) (any, error)    { return visitValue(v, vis) }
func (v Value) DeserializeU64(vis serde.Visitor) (any, error)    { return visitValue(v, vis) }
func (v Value) DeserializeF64(vis serde.Visitor) (any, error)    { return visitValue(v, vis) }
func (v Value) DeserializeStr(vis serde.Visitor) (any, error)    { return visitValue(v, vis) }
func (v Value) DeserializeUnit(vis serde.Visitor) (any, error)   { return visitValue(v, vis) }
func (v Value) DeserializeSeq(vis serde.Visitor) (any, error)    { return visitValue(v, vis) }
func (v Value) DeserializeTuple(length int, vis serde.Visitor) (any, error) {
	return visitValue(v, vis)
}
func (v Value) DeserializeMap(vis serde.Visitor) (any, error) { return visitValue(v, vis) }
func (v Value) DeserializeStruct(name string, fields []string, vis serde.Visitor) (any, error) {
	return visitValue(v, vis)
}

func (v Value) DeserializeBytes(vis serde.Visitor) (any, error) {
	s, ok := v.AsString()
	if !ok {
		return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: vis.ExpectedType()}
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: vis.ExpectedType()}
	}
	return vis.VisitBytes(b)
}

func (v Value) DeserializeOption(vis serde.Visitor) (any, error) {
	if v.IsNull() {
		return vis.VisitNone()
	}
	return vis.VisitSome(v)
}

func (v Value) DeserializeEnum(name string, variants []string, vis serde.Visitor) (any, error) {
	obj, ok := v.AsObject()
	if !ok || obj == nil || len(obj.Entries) != 1 {
		return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: "an enum object with one key"}
	}
	e := obj.Entries[0]
	return vis.VisitEnum(valueEnumAccess{name: e.Key, payload: e.Value})
}

func (v Value) DeserializeIgnoredAny(vis serde.Visitor) (any, error) { return nil, nil }

func (v Value) Factory() serde.ErrorFactory { return serde.SimpleErrorFactory{} }

// visitValue dispatches on val's own kind, ignoring whatever hint the
// deserializer method being implemented carries.
func visitValue(val Value, vis serde.Visitor) (any, error) {
	switch val.kind {
	case KindNull:
		return vis.VisitUnit()
	case KindBool:
		return vis.VisitBool(val.b)
	case KindInt64:
		return vis.VisitI64(val.i)
	case KindFloat64:
		return vis.VisitF64(val.f)
	case KindString:
		return vis.VisitString(val.s)
	case KindArray:
		return vis.VisitSeq(&valueSeqAccess{items: val.arr})
	case KindObject:
		var entries []serde.MapEntry[string, Value]
		if val.obj != nil {
			entries = val.obj.Entries
		}
		return vis.VisitMap(&valueMapAccess{entries: entries})
	default:
		return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: vis.ExpectedType()}
	}
}

type valueSeqAccess struct {
	items []Value
	idx   int
}

func (a *valueSeqAccess) NextElement(seed serde.Seed) (any, bool, error) {
	if a.idx >= len(a.items) {
		return nil, false, nil
	}
	item := a.items[a.idx]
	a.idx++
	r, err := seed(item)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (a *valueSeqAccess) SizeHint() (int, int, bool) { return len(a.items), len(a.items), true }

type valueMapAccess struct {
	entries  []serde.MapEntry[string, Value]
	idx      int
	curValue Value
}

func (a *valueMapAccess) NextKey(seed serde.Seed) (any, bool, error) {
	if a.idx >= len(a.entries) {
		return nil, false, nil
	}
	e := a.entries[a.idx]
	a.curValue = e.Value
	a.idx++
	r, err := seed(literalStringDeserializer{e.Key})
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (a *valueMapAccess) NextValue(seed serde.Seed) (any, error) {
	return seed(a.curValue)
}

func (a *valueMapAccess) SizeHint() (int, int, bool) { return len(a.entries), len(a.entries), true }

// literalStringDeserializer hands back an already-known string (an object
// key) through the Deserializer protocol.
type literalStringDeserializer struct{ s string }

func (d literalStringDeserializer) invalid(v serde.Visitor) (any, error) {
	return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: v.ExpectedType()}
}
func (d literalStringDeserializer) DeserializeAny(v serde.Visitor) (any, error) {
	return v.VisitString(d.s)
}
func (d literalStringDeserializer) DeserializeBool(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeI64(v serde.Visitor) (any, error)  { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeU64(v serde.Visitor) (any, error)  { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeF64(v serde.Visitor) (any, error)  { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeStr(v serde.Visitor) (any, error) {
	return v.VisitString(d.s)
}
func (d literalStringDeserializer) DeserializeBytes(v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeUnit(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeOption(v serde.Visitor) (any, error) {
	return v.VisitSome(d)
}
func (d literalStringDeserializer) DeserializeSeq(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeTuple(n int, v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeMap(v serde.Visitor) (any, error) { return d.invalid(v) }
func (d literalStringDeserializer) DeserializeStruct(name string, fields []string, v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeEnum(name string, variants []string, v serde.Visitor) (any, error) {
	return d.invalid(v)
}
func (d literalStringDeserializer) DeserializeIgnoredAny(v serde.Visitor) (any, error) {
	return nil, nil
}
func (d literalStringDeserializer) Factory() serde.ErrorFactory { return serde.SimpleErrorFactory{} }

// valueEnumAccess implements serde.EnumAccess over a single object entry.
type valueEnumAccess struct {
	name    string
	payload Value
}

func (e valueEnumAccess) Variant(v serde.Visitor) (any, serde.VariantAccess, error) {
	r, err := v.VisitString(e.name)
	if err != nil {
		return nil, nil, err
	}
	return r, valueVariantAccess{payload: e.payload}, nil
}

type valueVariantAccess struct{ payload Value }

func (va valueVariantAccess) UnitVariant() error {
	items, ok := va.payload.AsArray()
	if !ok || len(items) != 0 {
		return &serde.Error{Kind: serde.ErrInvalidType, Expected: "an empty array payload"}
	}
	return nil
}

func (va valueVariantAccess) NewtypeVariant(v serde.Visitor) (any, error) {
	return visitValue(va.payload, v)
}

func (va valueVariantAccess) TupleVariant(length int, v serde.Visitor) (any, error) {
	return visitValue(va.payload, v)
}

func (va valueVariantAccess) StructVariant(fields []string, v serde.Visitor) (any, error) {
	return visitValue(va.payload, v)
}

// FromValue drives T's Deserializable implementation from v directly,
// bypassing any byte-stream format.
func FromValue[T serde.Deserializable](v Value) (T, error) {
	var zero T
	result, err := zero.DeserializeWith(v)
	if err != nil {
		var z T
		return z, err
	}
	typed, ok := result.(T)
	if !ok {
		var z T
		return z, &serde.Error{Kind: serde.ErrInvalidType, Expected: "matching decoded type"}
	}
	return typed, nil
}
