package serde

// Option is a tiny, explicit optional used where the protocol needs to
// communicate "length unknown" without resorting to a negative sentinel
// (e.g. SerializeSeq(len Option[int])).
type Option[T any] struct {
	Value T
	Valid bool
}

// Some constructs a present Option.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None constructs an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Serializable is the capability a producer type exposes: it receives a
// Serializer and drives it through exactly the calls needed to describe
// itself. Adding a new user type never requires touching a Serializer
// implementation, and vice versa.
type Serializable interface {
	SerializeWith(s Serializer) error
}

// SerializableFunc adapts a plain function to Serializable.
type SerializableFunc func(s Serializer) error

func (f SerializableFunc) SerializeWith(s Serializer) error { return f(s) }

// Serializer is the capability a format-writer exposes: a closed set of
// primitive and aggregate acceptors.
type Serializer interface {
	SerializeBool(v bool) error
	SerializeI8(v int8) error
	SerializeI16(v int16) error
	SerializeI32(v int32) error
	SerializeI64(v int64) error
	SerializeU8(v uint8) error
	SerializeU16(v uint16) error
	SerializeU32(v uint32) error
	SerializeU64(v uint64) error
	SerializeF32(v float32) error
	SerializeF64(v float64) error
	SerializeChar(v rune) error
	SerializeStr(v string) error
	SerializeBytes(v []byte) error
	SerializeUnit() error
	SerializeNone() error
	SerializeSome(v Serializable) error

	SerializeUnitStruct(name string) error
	SerializeNewtypeStruct(name string, v Serializable) error

	SerializeUnitVariant(enumName string, variantIndex uint32, variantName string) error
	SerializeNewtypeVariant(enumName string, variantIndex uint32, variantName string, v Serializable) error

	SerializeSeq(length Option[int]) (SerializeSeq, error)
	SerializeTuple(length int) (SerializeTuple, error)
	SerializeTupleStruct(name string, length int) (SerializeTuple, error)
	SerializeTupleVariant(enumName string, variantIndex uint32, variantName string, length int) (SerializeTuple, error)

	SerializeMap(length Option[int]) (SerializeMap, error)
	SerializeStruct(name string, length int) (SerializeStruct, error)
	SerializeStructVariant(enumName string, variantIndex uint32, variantName string, length int) (SerializeStruct, error)
}

// SerializeSeq is the sub-visitor a format hands back from SerializeSeq; the
// producing value pumps it with one SerializeElement call per item and a
// final End.
type SerializeSeq interface {
	SerializeElement(v Serializable) error
	End() error
}

// SerializeTuple is the fixed-arity analogue of SerializeSeq.
type SerializeTuple interface {
	SerializeElement(v Serializable) error
	End() error
}

// SerializeMap is the sub-visitor for maps: exactly one SerializeValue must
// follow each SerializeKey.
type SerializeMap interface {
	SerializeKey(k Serializable) error
	SerializeValue(v Serializable) error
	End() error
}

// SerializeStruct is the sub-visitor for structs/struct-variants.
type SerializeStruct interface {
	SerializeField(name string, v Serializable) error
	SkipField(name string) error
	End() error
}
