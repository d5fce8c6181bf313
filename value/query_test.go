package value

import (
	"testing"

	"github.com/nereid-labs/serde"
)

func TestQueryFieldSelect(t *testing.T) {
	m := &serde.OrderedMap[string, Value]{}
	m.Set("name", String("widget"))
	m.Set("count", Int64(3))
	doc := Object(m)

	got, found, err := doc.Query("name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected name to be found")
	}
	if s, ok := got.AsString(); !ok || s != "widget" {
		t.Errorf("expected name = widget, got %+v", got)
	}
}

func TestQueryNumbersComeBackAsFloat(t *testing.T) {
	m := &serde.OrderedMap[string, Value]{}
	m.Set("count", Int64(3))
	doc := Object(m)

	got, found, err := doc.Query("count")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected count to be found")
	}
	if got.Kind() != KindFloat64 {
		t.Errorf("expected an integer queried back through jmespath to surface as a float, got kind %s", got.Kind())
	}
	if f, ok := got.AsFloat64(); !ok || f != 3 {
		t.Errorf("expected 3, got %v", f)
	}
}

func TestQueryProjection(t *testing.T) {
	items := []Value{}
	for _, n := range []string{"a", "b", "c"} {
		m := &serde.OrderedMap[string, Value]{}
		m.Set("id", String(n))
		items = append(items, Object(m))
	}
	doc := Object(func() *serde.OrderedMap[string, Value] {
		m := &serde.OrderedMap[string, Value]{}
		m.Set("items", Array(items))
		return m
	}())

	got, found, err := doc.Query("items[*].id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected items[*].id to be found")
	}
	arr, ok := got.AsArray()
	if !ok || len(arr) != 3 {
		t.Fatalf("expected a 3-element array, got %+v", got)
	}
	for i, want := range []string{"a", "b", "c"} {
		if s, _ := arr[i].AsString(); s != want {
			t.Errorf("expected element %d = %q, got %q", i, want, s)
		}
	}
}

func TestQueryMissingFieldNotFound(t *testing.T) {
	doc := Object(&serde.OrderedMap[string, Value]{})
	got, found, err := doc.Query("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Errorf("expected a missing field to report not found, got %+v", got)
	}
}

func TestQueryFieldThatIsLiterallyNullIsFoundAndNull(t *testing.T) {
	m := &serde.OrderedMap[string, Value]{}
	m.Set("maybe", Null())
	doc := Object(m)

	got, found, err := doc.Query("maybe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected a field holding a literal null to be found")
	}
	if !got.IsNull() {
		t.Errorf("expected the found value to be null, got %+v", got)
	}
}
