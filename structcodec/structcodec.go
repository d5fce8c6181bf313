package structcodec

import (
	"fmt"
	"reflect"

	"github.com/nereid-labs/serde"
	"github.com/nereid-labs/serde/logging"
)

// options configures Serialize/Deserialize, the reflect-path analogue of the
// teacher's functional-options ShapeSerializerOptions style.
type options struct {
	strict    bool
	formatTag string
	logger    logging.Logger
}

// Option configures Serialize/Deserialize.
type Option func(*options)

// WithStrict makes Deserialize raise UnknownField instead of silently
// discarding keys with no matching struct field.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithFormatTag names the per-format rename tag consulted ahead of the
// generic `serde` tag, e.g. "serde_json" for `serde_json:"name"`. The zero
// value ("") only consults `serde`.
func WithFormatTag(tag string) Option {
	return func(o *options) { o.formatTag = tag }
}

// WithLogger attaches a logging.Logger that receives logging.Debug entries
// for unknown-field and missing-field decisions.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func resolveOptions(opts []Option) options {
	o := options{formatTag: "serde_json", logger: logging.Noop{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Serialize walks v (a struct or pointer to struct) with reflection and
// drives s through the serde.Serializer protocol field by field, the
// runtime substitute for a compile-time derive. Fields whose type already
// implements serde.Serializable use that implementation directly instead
// of being walked further.
func Serialize(v any, s serde.Serializer, opts ...Option) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return s.SerializeNone()
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("structcodec: Serialize requires a struct, got %s", rv.Kind())
	}
	return serializeStruct(rv, s, resolveOptions(opts))
}

// Deserialize drives d through the serde.Deserializer protocol and populates
// out, which must be a non-nil pointer to a struct.
func Deserialize(d serde.Deserializer, out any, opts ...Option) (any, error) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("structcodec: Deserialize requires a non-nil pointer, got %T", out)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("structcodec: Deserialize requires a pointer to struct, got %s", elem.Kind())
	}
	o := resolveOptions(opts)
	fields := fieldsFor(elem.Type(), o.formatTag)
	names := make([]string, len(fields.fields))
	for i, f := range fields.fields {
		names[i] = f.Name
	}
	result, err := d.DeserializeStruct(elem.Type().Name(), names, &structVisitor{rv: elem, fields: fields, opts: o, factory: d.Factory()})
	if err != nil {
		return nil, err
	}
	return result, nil
}
