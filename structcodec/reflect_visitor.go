package structcodec

import (
	"fmt"
	"reflect"

	"github.com/nereid-labs/serde"
	"github.com/nereid-labs/serde/logging"
)

// structVisitor is the Visitor a struct's DeserializeStruct call is driven
// with; it only overrides VisitMap (JSON objects, and any other
// self-describing map-shaped input) since structs are never produced from
// any other Visitor handler.
type structVisitor struct {
	serde.BaseVisitor
	rv      reflect.Value
	fields  *cachedFields
	opts    options
	factory serde.ErrorFactory
}

func (sv *structVisitor) ExpectedType() string { return "an object" }

func (sv *structVisitor) VisitMap(m serde.MapAccess) (any, error) {
	seen := make([]bool, len(sv.fields.fields))
	keySeed := func(d serde.Deserializer) (any, error) { return serde.DeserializeStr(d) }
	discardSeed := func(d serde.Deserializer) (any, error) {
		return d.DeserializeIgnoredAny(serde.BaseVisitor{})
	}

	for {
		k, ok, err := m.NextKey(keySeed)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name := k.(string)
		f, found := sv.fields.ByName(name)
		if !found {
			if _, err := m.NextValue(discardSeed); err != nil {
				return nil, err
			}
			if sv.opts.strict {
				return nil, sv.factory.UnknownField(name)
			}
			sv.opts.logger.Logf(logging.Debug, "structcodec: ignoring unknown field %q", name)
			continue
		}
		seen[indexOf(sv.fields, f)] = true
		fv := sv.rv.Field(f.Index)
		valSeed := func(d serde.Deserializer) (any, error) {
			return nil, reflectDeserialize(d, fv, sv.opts)
		}
		if _, err := m.NextValue(valSeed); err != nil {
			return nil, err
		}
	}

	for i, f := range sv.fields.fields {
		if seen[i] || f.OmitEmpty || f.Default || zeroIsValidDefault(f.Type) {
			continue
		}
		sv.opts.logger.Logf(logging.Debug, "structcodec: missing field %q", f.Name)
		return nil, sv.factory.MissingField(f.Name)
	}
	return sv.rv.Interface(), nil
}

func indexOf(cf *cachedFields, f field) int {
	for i, other := range cf.fields {
		if other.Index == f.Index {
			return i
		}
	}
	return -1
}

// zeroIsValidDefault reports whether a field's zero value is an acceptable
// stand-in when absent from the wire even without an explicit `omitempty`
// directive: the nil-safe Go kinds whose deserializer can sensibly accept
// an absent value.
func zeroIsValidDefault(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}

// reflectDeserialize decodes one value from d into rv, which must be
// addressable/settable. A field whose static type implements
// serde.Deserializable is delegated to directly.
func reflectDeserialize(d serde.Deserializer, rv reflect.Value, o options) error {
	if rv.CanAddr() {
		if dz, ok := rv.Addr().Interface().(serde.Deserializable); ok {
			result, err := dz.DeserializeWith(d)
			if err != nil {
				return err
			}
			return assign(rv, result)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		v, err := serde.DeserializeBool(d)
		if err != nil {
			return err
		}
		rv.SetBool(v)
	case reflect.Int8:
		v, err := serde.DeserializeI8(d)
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int16:
		v, err := serde.DeserializeI16(d)
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int32:
		v, err := serde.DeserializeI32(d)
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
	case reflect.Int, reflect.Int64:
		v, err := serde.DeserializeI64(d)
		if err != nil {
			return err
		}
		rv.SetInt(v)
	case reflect.Uint8:
		v, err := serde.DeserializeU8(d)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint16:
		v, err := serde.DeserializeU16(d)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint32:
		v, err := serde.DeserializeU32(d)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		v, err := serde.DeserializeU64(d)
		if err != nil {
			return err
		}
		rv.SetUint(v)
	case reflect.Float32:
		v, err := serde.DeserializeF32(d)
		if err != nil {
			return err
		}
		rv.SetFloat(float64(v))
	case reflect.Float64:
		v, err := serde.DeserializeF64(d)
		if err != nil {
			return err
		}
		rv.SetFloat(v)
	case reflect.String:
		v, err := serde.DeserializeStr(d)
		if err != nil {
			return err
		}
		rv.SetString(v)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			v, err := serde.DeserializeBytes(d)
			if err != nil {
				return err
			}
			rv.SetBytes(v)
			return nil
		}
		return reflectDeserializeSeq(d, rv, o)
	case reflect.Map:
		return reflectDeserializeMap(d, rv, o)
	case reflect.Ptr:
		return reflectDeserializeOption(d, rv, o)
	case reflect.Struct:
		r, err := Deserialize(d, rv.Addr().Interface(), optsToOptions(o)...)
		if err != nil {
			return err
		}
		return assign(rv, r)
	default:
		return fmt.Errorf("structcodec: cannot deserialize kind %s", rv.Kind())
	}
	return nil
}

// assign stores result (as produced by a Deserializable.DeserializeWith
// implementation, which returns `any`, not necessarily addressed at rv) into
// rv, dereferencing one pointer level if result is *T and rv is T.
func assign(rv reflect.Value, result any) error {
	if result == nil {
		return nil
	}
	v := reflect.ValueOf(result)
	if v.Type() == rv.Type() {
		rv.Set(v)
		return nil
	}
	if v.Kind() == reflect.Ptr && v.Type().Elem() == rv.Type() {
		rv.Set(v.Elem())
		return nil
	}
	if v.Type().AssignableTo(rv.Type()) {
		rv.Set(v)
		return nil
	}
	return fmt.Errorf("structcodec: cannot assign %s into %s", v.Type(), rv.Type())
}

// seqTargetVisitor decodes a JSON-array-shaped input into a freshly
// allocated Go slice of elemType.
type seqTargetVisitor struct {
	serde.BaseVisitor
	elemType reflect.Type
	opts     options
}

func (v seqTargetVisitor) ExpectedType() string { return "a sequence" }

func (v seqTargetVisitor) VisitSeq(seq serde.SeqAccess) (any, error) {
	out := reflect.MakeSlice(reflect.SliceOf(v.elemType), 0, 0)
	seed := func(d serde.Deserializer) (any, error) {
		elem := reflect.New(v.elemType).Elem()
		if err := reflectDeserialize(d, elem, v.opts); err != nil {
			return nil, err
		}
		return elem.Interface(), nil
	}
	for {
		r, ok, err := seq.NextElement(seed)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = reflect.Append(out, reflect.ValueOf(r))
	}
	return out.Interface(), nil
}

func reflectDeserializeSeq(d serde.Deserializer, rv reflect.Value, o options) error {
	r, err := d.DeserializeSeq(seqTargetVisitor{elemType: rv.Type().Elem(), opts: o})
	if err != nil {
		return err
	}
	rv.Set(reflect.ValueOf(r))
	return nil
}

// mapTargetVisitor decodes a JSON-object-shaped input into a freshly
// allocated Go map[string]elemType.
type mapTargetVisitor struct {
	serde.BaseVisitor
	elemType reflect.Type
	opts     options
}

func (v mapTargetVisitor) ExpectedType() string { return "a map" }

func (v mapTargetVisitor) VisitMap(m serde.MapAccess) (any, error) {
	out := reflect.MakeMap(reflect.MapOf(reflect.TypeOf(""), v.elemType))
	keySeed := func(d serde.Deserializer) (any, error) { return serde.DeserializeStr(d) }
	for {
		k, ok, err := m.NextKey(keySeed)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		elem := reflect.New(v.elemType).Elem()
		valSeed := func(d serde.Deserializer) (any, error) {
			return nil, reflectDeserialize(d, elem, v.opts)
		}
		if _, err := m.NextValue(valSeed); err != nil {
			return nil, err
		}
		out.SetMapIndex(reflect.ValueOf(k.(string)), elem)
	}
	return out.Interface(), nil
}

func reflectDeserializeMap(d serde.Deserializer, rv reflect.Value, o options) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("structcodec: map keys must be strings, got %s", rv.Type().Key())
	}
	r, err := d.DeserializeMap(mapTargetVisitor{elemType: rv.Type().Elem(), opts: o})
	if err != nil {
		return err
	}
	rv.Set(reflect.ValueOf(r))
	return nil
}

// optionTargetVisitor decodes an optional-shaped input (JSON `null` or a
// value) into a freshly allocated *elemType, left nil on none.
type optionTargetVisitor struct {
	serde.BaseVisitor
	elemType reflect.Type
	opts     options
}

func (v optionTargetVisitor) ExpectedType() string { return "an optional value" }

func (v optionTargetVisitor) VisitNone() (any, error) {
	return reflect.Zero(reflect.PtrTo(v.elemType)).Interface(), nil
}
func (v optionTargetVisitor) VisitUnit() (any, error) { return v.VisitNone() }

func (v optionTargetVisitor) VisitSome(d serde.Deserializer) (any, error) {
	ptr := reflect.New(v.elemType)
	if err := reflectDeserialize(d, ptr.Elem(), v.opts); err != nil {
		return nil, err
	}
	return ptr.Interface(), nil
}

func reflectDeserializeOption(d serde.Deserializer, rv reflect.Value, o options) error {
	r, err := d.DeserializeOption(optionTargetVisitor{elemType: rv.Type().Elem(), opts: o})
	if err != nil {
		return err
	}
	rv.Set(reflect.ValueOf(r))
	return nil
}

// optsToOptions threads a resolved options struct back through nested
// Deserialize calls without re-parsing functional options.
func optsToOptions(o options) []Option {
	return []Option{func(dst *options) { *dst = o }}
}
