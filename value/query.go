package value

import (
	"github.com/jmespath/go-jmespath"

	"github.com/nereid-labs/serde"
)

// Query evaluates a JMESPath expression against v and reports whether the
// expression matched anything. The bool distinguishes "no match" (false,
// Value is the zero Value) from a match whose value happens to be a literal
// JSON null (true, Value is Null()): go-jmespath reports both as a bare Go
// nil, so toNative/fromNative carry JSON null through as a distinct
// sentinel rather than nil, leaving nil to mean "not found".
//
// One case this can't disambiguate: a JMESPath raw literal, e.g.
// `` `null` ``, written directly in expr. go-jmespath parses that literal
// itself rather than routing it through v's tree, so it still surfaces as
// bare nil and reads back as "not found".
func (v Value) Query(expr string) (Value, bool, error) {
	result, err := jmespath.Search(expr, v.toNative())
	if err != nil {
		return Value{}, false, err
	}
	if result == nil {
		return Value{}, false, nil
	}
	return fromNative(result), true, nil
}

// jsonNull stands in for Value's Null variant while round-tripping through
// go-jmespath's plain interface{} shapes, so a found-and-null result isn't
// confused with go-jmespath's own nil-for-not-found.
type jsonNull struct{}

// toNative converts to the plain interface{} shapes (map[string]interface{},
// []interface{}, and scalars) that go-jmespath operates on.
func (v Value) toNative() any {
	switch v.kind {
	case KindNull:
		return jsonNull{}
	case KindBool:
		return v.b
	case KindInt64:
		return float64(v.i)
	case KindFloat64:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.toNative()
		}
		return out
	case KindObject:
		out := map[string]any{}
		if v.obj != nil {
			for _, e := range v.obj.Entries {
				out[e.Key] = e.Value.toNative()
			}
		}
		return out
	default:
		return nil
	}
}

// fromNative converts a go-jmespath query result back into a Value. Native
// Go maps carry no ordering, so an object result's original key order is not
// preserved; Object sorts its Entries by key.
func fromNative(x any) Value {
	switch t := x.(type) {
	case nil, jsonNull:
		return Null()
	case bool:
		return Bool(t)
	case float64:
		return Float64(t)
	case int:
		return Int64(int64(t))
	case string:
		return String(t)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = fromNative(e)
		}
		return Array(items)
	case map[string]any:
		m := &serde.OrderedMap[string, Value]{}
		for k, e := range t {
			m.Set(k, fromNative(e))
		}
		return Object(m)
	default:
		return Null()
	}
}
