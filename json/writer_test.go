package json

import (
	"testing"

	"github.com/nereid-labs/serde"
	"github.com/nereid-labs/serde/value"
)

func serialize(t *testing.T, v value.Value, opts ...WriterOption) string {
	t.Helper()
	s, err := SerializeToString(v, opts...)
	if err != nil {
		t.Fatalf("unexpected error serializing: %v", err)
	}
	return s
}

func TestSerializeScalars(t *testing.T) {
	for _, test := range []struct {
		name string
		v    value.Value
		want string
	}{
		{"null", value.Null(), "null"},
		{"true", value.Bool(true), "true"},
		{"false", value.Bool(false), "false"},
		{"int", value.Int64(-17), "-17"},
		{"float integer-valued", value.Float64(3.0), "3"},
		{"float fractional", value.Float64(0.5), "0.5"},
		{"string", value.String("hi"), `"hi"`},
		{"string with escapes", value.String("a\tb\"c"), `"a\tb\"c"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := serialize(t, test.v); got != test.want {
				t.Errorf("expected %q got %q", test.want, got)
			}
		})
	}
}

func TestSerializeCompactContainers(t *testing.T) {
	arr := value.Array([]value.Value{value.Int64(1), value.Int64(2), value.Int64(3)})
	if got, want := serialize(t, arr), "[1,2,3]"; got != want {
		t.Errorf("expected %q got %q", want, got)
	}

	obj := &serde.OrderedMap[string, value.Value]{}
	obj.Set("b", value.Int64(2))
	obj.Set("a", value.Int64(1))
	if got, want := serialize(t, value.Object(obj)), `{"a":1,"b":2}`; got != want {
		t.Errorf("expected %q got %q", want, got)
	}
}

func TestSerializeEmptyContainers(t *testing.T) {
	if got, want := serialize(t, value.Array(nil)), "[]"; got != want {
		t.Errorf("expected %q got %q", want, got)
	}
	if got, want := serialize(t, value.Object(nil)), "{}"; got != want {
		t.Errorf("expected %q got %q", want, got)
	}
}

func TestSerializeIndented(t *testing.T) {
	obj := &serde.OrderedMap[string, value.Value]{}
	obj.Set("a", value.Int64(1))
	obj.Set("b", value.Array([]value.Value{value.Int64(2)}))

	got := serialize(t, value.Object(obj), WithIndent(2))
	want := "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}"
	if got != want {
		t.Errorf("expected indented output %q got %q", want, got)
	}
}

func TestSerializeNestedArray(t *testing.T) {
	nested := value.Array([]value.Value{value.Array([]value.Value{value.Int64(1), value.Int64(2)})})
	if got, want := serialize(t, nested), "[[1,2]]"; got != want {
		t.Errorf("expected %q got %q", want, got)
	}
}

func TestMapKeyMustBeString(t *testing.T) {
	w := NewWriter(discardWriter{})
	m, err := w.SerializeMap(serde.Some(1))
	if err != nil {
		t.Fatalf("unexpected error starting map: %v", err)
	}
	if err := m.SerializeKey(serde.I64(1)); err == nil {
		t.Errorf("expected an error serializing a non-string map key")
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
