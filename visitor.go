package serde

// Visitor is supplied by a consuming type's Deserializable implementation.
// The deserializer inspects the input and invokes exactly the handler that
// matches what it finds; unhandled cases fall back to an InvalidType error.
//
// Concrete visitors embed BaseVisitor and override only the handlers they
// accept; unoverridden handlers fall back to an unexpected-type error.
type Visitor interface {
	// ExpectedType describes what this visitor accepts, used in InvalidType
	// errors raised by the default handlers.
	ExpectedType() string

	VisitBool(v bool) (any, error)
	VisitI64(v int64) (any, error)
	VisitU64(v uint64) (any, error)
	VisitF64(v float64) (any, error)
	VisitChar(v rune) (any, error)
	VisitStr(v string) (any, error)    // borrowed: format may reuse its buffer after returning
	VisitString(v string) (any, error) // owned: caller keeps exclusive ownership
	VisitBytes(v []byte) (any, error)
	VisitUnit() (any, error)
	VisitNone() (any, error)
	VisitSome(d Deserializer) (any, error)
	VisitSeq(seq SeqAccess) (any, error)
	VisitMap(m MapAccess) (any, error)
	VisitEnum(e EnumAccess) (any, error)
}

// BaseVisitor implements every Visitor handler as an InvalidType error.
// Embed it in a concrete visitor and override only the handlers that type
// accepts.
type BaseVisitor struct {
	Expected string
}

func (b BaseVisitor) ExpectedType() string {
	if b.Expected == "" {
		return "a different type"
	}
	return b.Expected
}

func (b BaseVisitor) invalidType() error {
	return &Error{Kind: ErrInvalidType, Expected: b.ExpectedType()}
}

func (b BaseVisitor) VisitBool(bool) (any, error)         { return nil, b.invalidType() }
func (b BaseVisitor) VisitI64(int64) (any, error)         { return nil, b.invalidType() }
func (b BaseVisitor) VisitU64(uint64) (any, error)        { return nil, b.invalidType() }
func (b BaseVisitor) VisitF64(float64) (any, error)       { return nil, b.invalidType() }
func (b BaseVisitor) VisitChar(rune) (any, error)         { return nil, b.invalidType() }
func (b BaseVisitor) VisitStr(string) (any, error)        { return nil, b.invalidType() }
func (b BaseVisitor) VisitString(s string) (any, error)   { return b.VisitStr(s) }
func (b BaseVisitor) VisitBytes([]byte) (any, error)      { return nil, b.invalidType() }
func (b BaseVisitor) VisitUnit() (any, error)             { return nil, b.invalidType() }
func (b BaseVisitor) VisitNone() (any, error)             { return nil, b.invalidType() }
func (b BaseVisitor) VisitSome(Deserializer) (any, error) { return nil, b.invalidType() }
func (b BaseVisitor) VisitSeq(SeqAccess) (any, error)     { return nil, b.invalidType() }
func (b BaseVisitor) VisitMap(MapAccess) (any, error)     { return nil, b.invalidType() }
func (b BaseVisitor) VisitEnum(EnumAccess) (any, error)   { return nil, b.invalidType() }

// Seed decodes one value from a Deserializer scoped to a single sequence
// element or map key/value. Rather than requiring a full Visitor for every
// element type, a caller supplies a plain function.
type Seed func(Deserializer) (any, error)

// SeqAccess iterates the elements of a sequence being deserialized. NextElement
// returns (_, false, nil) at the end of the sequence.
type SeqAccess interface {
	// NextElement decodes the next element with seed, returning
	// (result, true, nil) on success, (_, false, nil) at the end.
	NextElement(seed Seed) (any, bool, error)
	SizeHint() (lower int, upper int, known bool)
}

// MapAccess iterates the key/value pairs of a map being deserialized.
// NextValue must be called exactly once after each NextKey that returned
// (_, true, nil).
type MapAccess interface {
	NextKey(seed Seed) (any, bool, error)
	NextValue(seed Seed) (any, error)
	SizeHint() (lower int, upper int, known bool)
}

// EnumAccess identifies which variant of an enum is present and hands back a
// VariantAccess to decode its payload.
type EnumAccess interface {
	// Variant decodes the variant discriminator (name or index) by driving it
	// with v, then returns a VariantAccess for the payload.
	Variant(v Visitor) (any, VariantAccess, error)
}

// VariantAccess decodes the payload of whichever enum variant EnumAccess
// identified.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant(v Visitor) (any, error)
	TupleVariant(length int, v Visitor) (any, error)
	StructVariant(fields []string, v Visitor) (any, error)
}

// Deserializable is the capability a consumer type exposes: it builds a
// Visitor describing the handlers it accepts and asks the Deserializer to
// drive it.
type Deserializable interface {
	DeserializeWith(d Deserializer) (any, error)
}

// DeserializableFunc adapts a plain function to Deserializable.
type DeserializableFunc func(d Deserializer) (any, error)

func (f DeserializableFunc) DeserializeWith(d Deserializer) (any, error) { return f(d) }

// Deserializer is the capability a format-reader exposes: it inspects the
// input and calls the Visitor handler that matches what it finds.
type Deserializer interface {
	// DeserializeAny lets a self-describing format (e.g. the value tree) pick
	// whichever handler matches its current value, ignoring any type hint.
	DeserializeAny(v Visitor) (any, error)

	DeserializeBool(v Visitor) (any, error)
	DeserializeI64(v Visitor) (any, error)
	DeserializeU64(v Visitor) (any, error)
	DeserializeF64(v Visitor) (any, error)
	DeserializeStr(v Visitor) (any, error)
	DeserializeBytes(v Visitor) (any, error)
	DeserializeUnit(v Visitor) (any, error)
	DeserializeOption(v Visitor) (any, error)
	DeserializeSeq(v Visitor) (any, error)
	DeserializeTuple(length int, v Visitor) (any, error)
	DeserializeMap(v Visitor) (any, error)
	DeserializeStruct(name string, fields []string, v Visitor) (any, error)
	DeserializeEnum(name string, variants []string, v Visitor) (any, error)
	// DeserializeIgnoredAny consumes and discards one value of whatever shape
	// is next, used to skip unknown struct fields.
	DeserializeIgnoredAny(v Visitor) (any, error)

	Factory() ErrorFactory
}
