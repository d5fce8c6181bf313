// Package testing provides round-trip and tree-equality assertions for
// tests exercising the serde protocol, built on value.Value so comparisons
// work across any format driver instead of diffing raw bytes of one format.
package testing

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/nereid-labs/serde"
	"github.com/nereid-labs/serde/value"
)

// T provides the testing interface for capturing failures with testing assert
// utilities.
type T interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Helper()
}

// ValueEqual compares two value.Value trees for structural equality and
// returns a diagnostic error if they differ.
func ValueEqual(expect, actual value.Value) error {
	if expect.Equal(actual) {
		return nil
	}
	return fmt.Errorf("value mismatch: expect %#v, actual %#v", expect, actual)
}

// AssertValueEqual compares two value.Value trees and emits a testing error,
// returning false, if they are not equal.
func AssertValueEqual(t T, expect, actual value.Value) bool {
	t.Helper()
	if err := ValueEqual(expect, actual); err != nil {
		t.Errorf("expect value equal, %v", err)
		return false
	}
	return true
}

// valueComparer lets cmp.Diff treat value.Value's private fields as opaque,
// deferring to its own Equal method instead of panicking on unexported state.
var valueComparer = cmp.Comparer(func(a, b value.Value) bool { return a.Equal(b) })

// AssertRoundTrip serializes original to a value.Value tree, then decodes
// that tree with decode (typically value.FromValue for the target type) and
// asserts the result equals original. This exercises the same
// Serializer/Deserializer protocol that drives bytes, just with a tree in
// place of a byte stream.
func AssertRoundTrip(t T, original serde.Serializable, decode func(value.Value) (any, error)) bool {
	t.Helper()
	tree, err := value.ToValue(original)
	if err != nil {
		t.Errorf("ToValue failed: %v", err)
		return false
	}
	got, err := decode(tree)
	if err != nil {
		t.Errorf("round-trip decode failed: %v", err)
		return false
	}
	if diff := cmp.Diff(original, got, valueComparer); diff != "" {
		t.Errorf("round-trip mismatch (-original +decoded):\n%s", diff)
		return false
	}
	return true
}
