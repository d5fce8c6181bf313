package value

import (
	"testing"

	"github.com/nereid-labs/serde"
)

// shape is a minimal two-variant enum fixture with a hand-written enum
// visitor.
type shape struct {
	isCircle bool
	radius   int64
}

func (s shape) SerializeWith(ser serde.Serializer) error {
	if s.isCircle {
		return ser.SerializeUnitVariant("shape", 0, "Circle")
	}
	return ser.SerializeNewtypeVariant("shape", 1, "Radius", serde.I64(s.radius))
}

type shapeVariantVisitor struct{ serde.BaseVisitor }

func (shapeVariantVisitor) VisitString(name string) (any, error) { return name, nil }
func (shapeVariantVisitor) VisitStr(name string) (any, error)    { return name, nil }

func (shape) DeserializeWith(d serde.Deserializer) (any, error) {
	return d.DeserializeEnum("shape", []string{"Circle", "Radius"}, shapeEnumVisitor{serde.BaseVisitor{Expected: "a shape"}})
}

type shapeEnumVisitor struct{ serde.BaseVisitor }

func (shapeEnumVisitor) VisitEnum(e serde.EnumAccess) (any, error) {
	name, va, err := e.Variant(shapeVariantVisitor{})
	if err != nil {
		return nil, err
	}
	switch name.(string) {
	case "Circle":
		if err := va.UnitVariant(); err != nil {
			return nil, err
		}
		return shape{isCircle: true}, nil
	case "Radius":
		r, err := va.NewtypeVariant(radiusVisitor{})
		if err != nil {
			return nil, err
		}
		return shape{radius: r.(int64)}, nil
	default:
		return nil, &serde.Error{Kind: serde.ErrInvalidType, Expected: "a known shape variant"}
	}
}

type radiusVisitor struct{ serde.BaseVisitor }

func (radiusVisitor) VisitI64(v int64) (any, error) { return v, nil }

func TestRoundTripUnitVariantThroughValue(t *testing.T) {
	tree, err := ToValue(shape{isCircle: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := FromValue[shape](tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.isCircle {
		t.Errorf("expected the unit variant to round-trip as Circle, got %+v", got)
	}
}

func TestRoundTripNewtypeVariantThroughValue(t *testing.T) {
	tree, err := ToValue(shape{radius: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := FromValue[shape](tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.isCircle || got.radius != 9 {
		t.Errorf("expected the newtype variant to round-trip with radius 9, got %+v", got)
	}
}

func TestDeserializeBytesRoundTrip(t *testing.T) {
	tree, err := ToValue(serde.Bytes([]byte("hello")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := tree.DeserializeBytes(bytesCaptureVisitor{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got.([]byte)) != "hello" {
		t.Errorf("expected \"hello\", got %q", got)
	}
}

type bytesCaptureVisitor struct{ serde.BaseVisitor }

func (bytesCaptureVisitor) VisitBytes(b []byte) (any, error) { return b, nil }

func TestDeserializeOptionNone(t *testing.T) {
	got, err := Null().DeserializeOption(optionCaptureVisitor{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "none" {
		t.Errorf("expected VisitNone to fire for a null value, got %v", got)
	}
}

func TestDeserializeOptionSome(t *testing.T) {
	got, err := Int64(4).DeserializeOption(optionCaptureVisitor{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "some" {
		t.Errorf("expected VisitSome to fire for a non-null value, got %v", got)
	}
}

type optionCaptureVisitor struct{ serde.BaseVisitor }

func (optionCaptureVisitor) VisitNone() (any, error)                      { return "none", nil }
func (optionCaptureVisitor) VisitSome(serde.Deserializer) (any, error)    { return "some", nil }
