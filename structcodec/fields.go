package structcodec

import (
	"reflect"
	"strings"
	"sync"
)

// field describes one exported struct field's wire behavior, parsed once per
// reflect.Type and cached: name (possibly renamed), whether it is omitted
// from the wire when zero, and the reflect.StructField it came from.
type field struct {
	reflect.StructField
	Index           int
	Name            string
	OmitEmpty       bool
	Skip            bool
	Default         bool // `serde:",default"` — missing on deserialize substitutes the zero value
	SkipSerializing bool // `serde:",skip_serializing"` — omitted unconditionally on serialize
}

// cachedFields is the per-type parsed field set: a positional list plus a
// name index, with a case-insensitive fallback lookup that is forgiving of
// casing differences between Go field names and wire names.
type cachedFields struct {
	fields  []field
	byName  map[string]int
}

func (c *cachedFields) All() []field { return c.fields }

func (c *cachedFields) ByName(name string) (field, bool) {
	if i, ok := c.byName[name]; ok {
		return c.fields[i], true
	}
	for _, f := range c.fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return field{}, false
}

var fieldCache sync.Map // reflect.Type -> *cachedFields

// fieldsFor returns the cached field set for the struct type t, parsing tags
// on first use. formatTag names the per-format rename tag consulted ahead of
// the generic "serde" tag (e.g. "serde_json").
func fieldsFor(t reflect.Type, formatTag string) *cachedFields {
	type cacheKey struct {
		t    reflect.Type
		fmtT string
	}
	key := cacheKey{t, formatTag}
	if v, ok := fieldCache.Load(key); ok {
		return v.(*cachedFields)
	}

	cf := &cachedFields{byName: map[string]int{}}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}
		name, omitEmpty, skip, isDefault, skipSerializing := parseTag(sf, formatTag)
		if skip {
			continue
		}
		f := field{StructField: sf, Index: i, Name: name, OmitEmpty: omitEmpty, Default: isDefault, SkipSerializing: skipSerializing}
		cf.byName[f.Name] = len(cf.fields)
		cf.fields = append(cf.fields, f)
	}

	actual, _ := fieldCache.LoadOrStore(key, cf)
	return actual.(*cachedFields)
}

// parseTag resolves a field's wire name and flags from its `serde` tag and,
// if present, the per-format override tag. A bare `serde:"-"` fully skips
// the field, giving it no wire representation in either direction.
//
// Recognized options, the runtime stand-ins for spec.md's derive directives:
// `omitempty` (skip on serialize when zero, accept missing on deserialize),
// `default` (accept missing on deserialize unconditionally, substituting the
// zero value — the `default` directive), and `skip_serializing` (omit
// unconditionally on serialize, regardless of value — pair with `default` or
// a nil-safe Go type for a symmetric round-trip, per spec.md §6).
func parseTag(sf reflect.StructField, formatTag string) (name string, omitEmpty, skip, isDefault, skipSerializing bool) {
	name = sf.Name
	if tag, ok := sf.Tag.Lookup("serde"); ok {
		parts := strings.Split(tag, ",")
		if parts[0] == "-" && len(parts) == 1 {
			return "", false, true, false, false
		}
		if parts[0] != "" {
			name = parts[0]
		}
		for _, opt := range parts[1:] {
			switch opt {
			case "omitempty":
				omitEmpty = true
			case "default":
				isDefault = true
			case "skip_serializing":
				skipSerializing = true
			}
		}
	}
	if formatTag != "" {
		if override, ok := sf.Tag.Lookup(formatTag); ok && override != "" {
			name = override
		}
	}
	return name, omitEmpty, false, isDefault, skipSerializing
}

// isZero reports whether v holds its type's zero value, used to decide
// whether an `omitempty` field is skipped on serialize.
func isZero(v reflect.Value) bool {
	return v.IsZero()
}
