package json

import (
	"fmt"
	"testing"

	"github.com/nereid-labs/serde"
	"github.com/nereid-labs/serde/value"
)

func parseValue(t *testing.T, s string) value.Value {
	t.Helper()
	r, err := DeserializeFromStr(s, value.Value{})
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", s, err)
	}
	return r.(value.Value)
}

func expectError(t *testing.T, s string, kind serde.ErrorKind, pos serde.Position) {
	t.Helper()
	_, err := DeserializeFromStr(s, value.Value{})
	if err == nil {
		t.Fatalf("expected an error parsing %q, got none", s)
	}
	serr, ok := err.(*serde.Error)
	if !ok {
		t.Fatalf("expected *serde.Error parsing %q, got %T (%v)", s, err, err)
	}
	if serr.Kind != kind {
		t.Errorf("parsing %q: expected kind %s got %s", s, kind, serr.Kind)
	}
	if serr.Pos != pos {
		t.Errorf("parsing %q: expected position %s got %s", s, pos, serr.Pos)
	}
}

func TestNumberGrammarErrors(t *testing.T) {
	for _, test := range []struct {
		input string
		pos   serde.Position
	}{
		{"00", serde.Position{Line: 1, Column: 2}},
		{"1.", serde.Position{Line: 1, Column: 3}},
		{"1e", serde.Position{Line: 1, Column: 3}},
		{"1e+", serde.Position{Line: 1, Column: 4}},
		{"-", serde.Position{Line: 1, Column: 2}},
	} {
		t.Run(test.input, func(t *testing.T) {
			expectError(t, test.input, serde.ErrInvalidNumber, test.pos)
		})
	}
}

func TestTrailingCharacters(t *testing.T) {
	expectError(t, "1a", serde.ErrTrailingCharacters, serde.Position{Line: 1, Column: 2})
}

func TestValidNumbers(t *testing.T) {
	for _, test := range []struct {
		input string
		isInt bool
		i     int64
		f     float64
	}{
		{"0", true, 0, 0},
		{"-17", true, -17, 0},
		{"3.0", false, 0, 3},
		{"1e3", false, 0, 1000},
		{"-1.5e-1", false, 0, -0.15},
	} {
		t.Run(test.input, func(t *testing.T) {
			v := parseValue(t, test.input)
			if test.isInt {
				got, ok := v.AsInt64()
				if !ok || got != test.i {
					t.Errorf("expected int64 %d got %v (ok=%v)", test.i, got, ok)
				}
			} else {
				got, ok := v.AsFloat64()
				if !ok || got != test.f {
					t.Errorf("expected float64 %v got %v (ok=%v)", test.f, got, ok)
				}
			}
		})
	}
}

func TestContainerParity(t *testing.T) {
	for _, input := range []string{"[]", "[ ]", " [ ] "} {
		t.Run(input, func(t *testing.T) {
			v := parseValue(t, input)
			items, ok := v.AsArray()
			if !ok || len(items) != 0 {
				t.Errorf("expected an empty array, got %+v (ok=%v)", items, ok)
			}
		})
	}
}

func TestListMissingComma(t *testing.T) {
	expectError(t, "[1 2]", serde.ErrExpectedListCommaOrEnd, serde.Position{Line: 1, Column: 4})
}

func TestObjectTrailingComma(t *testing.T) {
	expectError(t, `{"a":1,}`, serde.ErrKeyMustBeAString, serde.Position{Line: 1, Column: 8})
}

func TestStringEscapes(t *testing.T) {
	v := parseValue(t, `"\u12ab"`)
	s, ok := v.AsString()
	if !ok || s != "ካ" {
		t.Errorf("expected U+12AB decoded, got %q (ok=%v)", s, ok)
	}

	v = parseValue(t, `"\uD834\uDD1E"`)
	s, ok = v.AsString()
	if !ok || s != "\U0001D11E" {
		t.Errorf("expected surrogate pair to decode to U+1D11E, got %q (ok=%v)", s, ok)
	}

	v = parseValue(t, `"a\tb\nc\\d\"e"`)
	s, ok = v.AsString()
	if !ok || s != "a\tb\nc\\d\"e" {
		t.Errorf("expected short escapes decoded, got %q (ok=%v)", s, ok)
	}
}

func TestLoneSurrogateRejected(t *testing.T) {
	_, err := DeserializeFromStr(`"\uDD1E"`, value.Value{})
	if !serde.IsKind(err, serde.ErrLoneLeadingSurrogateInHexEscape) {
		t.Errorf("expected ErrLoneLeadingSurrogateInHexEscape, got %v", err)
	}
}

func TestObjectKeysAndValues(t *testing.T) {
	v := parseValue(t, `{"b":2,"a":1}`)
	obj, ok := v.AsObject()
	if !ok || obj == nil {
		t.Fatalf("expected an object")
	}
	// The Value tree re-sorts keys on construction regardless of wire order.
	if len(obj.Entries) != 2 || obj.Entries[0].Key != "a" || obj.Entries[1].Key != "b" {
		t.Errorf("expected sorted key order [a b], got %+v", obj.Entries)
	}
}

func TestRecursionLimit(t *testing.T) {
	deep := ""
	for i := 0; i < DefaultRecursionLimit+1; i++ {
		deep += "["
	}
	_, err := DeserializeFromStr(deep, value.Value{})
	if !serde.IsKind(err, serde.ErrRecursionLimit) {
		t.Errorf("expected ErrRecursionLimit, got %v", err)
	}
}

func TestWithMaxDepth(t *testing.T) {
	_, err := DeserializeFromBytes([]byte("[[1]]"), value.Value{}, WithMaxDepth(1))
	if !serde.IsKind(err, serde.ErrRecursionLimit) {
		t.Errorf("expected ErrRecursionLimit with a depth-1 limit, got %v", err)
	}
}

func TestUnterminatedObjectReportsEOFPosition(t *testing.T) {
	expectError(t, "{\n  \"foo\":\n \"bar\"", serde.ErrEOFWhileParsingObject, serde.Position{Line: 3, Column: 8})
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	_, err := Unmarshal[boolDocument]([]byte(`"not a bool"`))
	if err == nil {
		t.Fatalf("expected an error")
	}
}

// boolDocument is a minimal serde.Deserializable used only to exercise
// Unmarshal's generic entry point.
type boolDocument bool

type boolVisitor struct{ serde.BaseVisitor }

func (boolVisitor) VisitBool(v bool) (any, error) { return v, nil }

func (boolDocument) DeserializeWith(d serde.Deserializer) (any, error) {
	r, err := d.DeserializeBool(boolVisitor{serde.BaseVisitor{Expected: "a boolean"}})
	if err != nil {
		return nil, err
	}
	return boolDocument(r.(bool)), nil
}

func ExampleDeserializeFromStr() {
	v, err := DeserializeFromStr(`{"a":1}`, value.Value{})
	if err != nil {
		fmt.Println(err)
		return
	}
	s, _ := SerializeToString(v.(value.Value))
	fmt.Println(s)
	// Output: {"a":1}
}
