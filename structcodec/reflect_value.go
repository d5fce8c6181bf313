package structcodec

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/nereid-labs/serde"
)

// reflectValue adapts an arbitrary reflect.Value to serde.Serializable,
// recursing into slices/maps/pointers/structs. A value whose static type
// already implements serde.Serializable is delegated to directly, so a
// hand-written SerializeWith anywhere in a nested structure short-circuits
// the reflect walk below it.
type reflectValue struct {
	rv   reflect.Value
	opts options
}

func (r reflectValue) SerializeWith(s serde.Serializer) error {
	return serializeValue(r.rv, s, r.opts)
}

func serializeValue(rv reflect.Value, s serde.Serializer, o options) error {
	if rv.IsValid() && rv.CanInterface() && !(rv.Kind() == reflect.Ptr && rv.IsNil()) {
		if sv, ok := rv.Interface().(serde.Serializable); ok {
			return sv.SerializeWith(s)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return serde.Bool(rv.Bool()).SerializeWith(s)
	case reflect.Int8:
		return serde.I8(int8(rv.Int())).SerializeWith(s)
	case reflect.Int16:
		return serde.I16(int16(rv.Int())).SerializeWith(s)
	case reflect.Int32:
		return serde.I32(int32(rv.Int())).SerializeWith(s)
	case reflect.Int, reflect.Int64:
		return serde.I64(rv.Int()).SerializeWith(s)
	case reflect.Uint8:
		return serde.U8(uint8(rv.Uint())).SerializeWith(s)
	case reflect.Uint16:
		return serde.U16(uint16(rv.Uint())).SerializeWith(s)
	case reflect.Uint32:
		return serde.U32(uint32(rv.Uint())).SerializeWith(s)
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return serde.U64(rv.Uint()).SerializeWith(s)
	case reflect.Float32:
		return serde.F32(float32(rv.Float())).SerializeWith(s)
	case reflect.Float64:
		return serde.F64(rv.Float()).SerializeWith(s)
	case reflect.String:
		return serde.Str(rv.String()).SerializeWith(s)
	case reflect.Slice, reflect.Array:
		return serializeSeq(rv, s, o)
	case reflect.Map:
		return serializeMap(rv, s, o)
	case reflect.Ptr:
		if rv.IsNil() {
			return s.SerializeNone()
		}
		return s.SerializeSome(reflectValue{rv: rv.Elem(), opts: o})
	case reflect.Interface:
		if rv.IsNil() {
			return s.SerializeNone()
		}
		return serializeValue(rv.Elem(), s, o)
	case reflect.Struct:
		return serializeStruct(rv, s, o)
	case reflect.Invalid:
		return s.SerializeNone()
	default:
		return fmt.Errorf("structcodec: cannot serialize kind %s", rv.Kind())
	}
}

func serializeSeq(rv reflect.Value, s serde.Serializer, o options) error {
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return serde.Bytes(rv.Bytes()).SerializeWith(s)
	}
	n := rv.Len()
	seq, err := s.SerializeSeq(serde.Some(n))
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := seq.SerializeElement(reflectValue{rv: rv.Index(i), opts: o}); err != nil {
			return err
		}
	}
	return seq.End()
}

// serializeMap writes a map[string]V sorted by key, matching value.Object's
// sorted-key re-serialization invariant for the one format this module
// ships (JSON objects have no key order of their own to preserve).
func serializeMap(rv reflect.Value, s serde.Serializer, o options) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("structcodec: map keys must be strings, got %s", rv.Type().Key())
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	m, err := s.SerializeMap(serde.Some(len(keys)))
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := m.SerializeKey(serde.Str(k.String())); err != nil {
			return err
		}
		if err := m.SerializeValue(reflectValue{rv: rv.MapIndex(k), opts: o}); err != nil {
			return err
		}
	}
	return m.End()
}

func serializeStruct(rv reflect.Value, s serde.Serializer, o options) error {
	fields := fieldsFor(rv.Type(), o.formatTag)
	w, err := s.SerializeStruct(rv.Type().Name(), len(fields.fields))
	if err != nil {
		return err
	}
	for _, f := range fields.fields {
		fv := rv.Field(f.Index)
		if f.SkipSerializing || (f.OmitEmpty && isZero(fv)) {
			if err := w.SkipField(f.Name); err != nil {
				return err
			}
			continue
		}
		if err := w.SerializeField(f.Name, reflectValue{rv: fv, opts: o}); err != nil {
			return err
		}
	}
	return w.End()
}
