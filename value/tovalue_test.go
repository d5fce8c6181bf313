package value

import (
	"testing"

	"github.com/nereid-labs/serde"
)

// point is a minimal serde.Serializable/Deserializable struct fixture used to
// exercise ToValue/FromValue's struct and seq handling.
type point struct {
	X, Y int64
}

func (p point) SerializeWith(s serde.Serializer) error {
	st, err := s.SerializeStruct("point", 2)
	if err != nil {
		return err
	}
	if err := st.SerializeField("x", serde.I64(p.X)); err != nil {
		return err
	}
	if err := st.SerializeField("y", serde.I64(p.Y)); err != nil {
		return err
	}
	return st.End()
}

type pointVisitor struct{ serde.BaseVisitor }

func (pointVisitor) VisitMap(m serde.MapAccess) (any, error) {
	var p point
	keySeed := func(d serde.Deserializer) (any, error) { return serde.DeserializeStr(d) }
	valSeed := func(d serde.Deserializer) (any, error) { return serde.DeserializeI64(d) }
	for {
		k, ok, err := m.NextKey(keySeed)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := m.NextValue(valSeed)
		if err != nil {
			return nil, err
		}
		switch k.(string) {
		case "x":
			p.X = v.(int64)
		case "y":
			p.Y = v.(int64)
		}
	}
	return p, nil
}

func (point) DeserializeWith(d serde.Deserializer) (any, error) {
	return d.DeserializeStruct("point", []string{"x", "y"}, pointVisitor{serde.BaseVisitor{Expected: "a point"}})
}

func TestToValueStruct(t *testing.T) {
	got, err := ToValue(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := &serde.OrderedMap[string, Value]{}
	m.Set("x", Int64(1))
	m.Set("y", Int64(2))
	want := Object(m)
	if !got.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestToValueSeq(t *testing.T) {
	got, err := ToValue(serde.SerializableFunc(func(s serde.Serializer) error {
		return serde.SeqSerialize(s, 3, func(i int) serde.Serializable { return serde.I64(int64(i)) })
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Array([]Value{Int64(0), Int64(1), Int64(2)})
	if !got.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestToValueUnitVariant(t *testing.T) {
	got, err := ToValue(serde.SerializableFunc(func(s serde.Serializer) error {
		return s.SerializeUnitVariant("shape", 0, "Circle")
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := &serde.OrderedMap[string, Value]{}
	m.Set("Circle", Array(nil))
	if !got.Equal(Object(m)) {
		t.Errorf("expected a unit variant to frame as {\"Circle\":[]}, got %+v", got)
	}
}

func TestToValueNewtypeVariant(t *testing.T) {
	got, err := ToValue(serde.SerializableFunc(func(s serde.Serializer) error {
		return s.SerializeNewtypeVariant("shape", 1, "Radius", serde.I64(5))
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := &serde.OrderedMap[string, Value]{}
	m.Set("Radius", Int64(5))
	if !got.Equal(Object(m)) {
		t.Errorf("expected a newtype variant to frame as {\"Radius\":5}, got %+v", got)
	}
}

func TestToValueBytesAsBase64(t *testing.T) {
	got, err := ToValue(serde.Bytes([]byte("hi")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := got.AsString(); !ok || s != "aGk=" {
		t.Errorf("expected base64 \"aGk=\", got %q", s)
	}
}

func TestRoundTripStructThroughValue(t *testing.T) {
	original := point{X: 7, Y: -3}
	tree, err := ToValue(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := FromValue[point](tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != original {
		t.Errorf("expected round trip to reproduce %+v, got %+v", original, got)
	}
}
