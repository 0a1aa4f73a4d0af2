package wxf

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"

	"github.com/hengadev/wxf/internal/wxferr"
)

// Marshaler is implemented by types that build their own value.
type Marshaler interface {
	MarshalWolfram(b Builder) (Value, error)
}

// Variant is implemented by the cases of a tagged union. The case is
// emitted under the head enum`variant and its payload shape decides
// between the unit, newtype, tuple and struct variant forms.
type Variant interface {
	WolframVariant() (enum, variant string)
}

// FieldErrors collects the field failures of one struct.
type FieldErrors struct {
	Type   string
	Fields errsx.Map
	causes []error
}

func (e *FieldErrors) Error() string {
	return fmt.Sprintf("%s %s: %v", wxferr.Marshal, e.Type, e.Fields.AsError())
}

func (e *FieldErrors) Unwrap() []error {
	return e.causes
}

var (
	valueType    = reflect.TypeOf(Value{})
	bigIntType   = reflect.TypeOf(big.Int{})
	bigRatType   = reflect.TypeOf(big.Rat{})
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	variantType  = reflect.TypeOf((*Variant)(nil)).Elem()
)

// Marshal converts a Go value into a Value.
//
// Scalars, slices, arrays, maps and pointers follow the object mapping:
// nil pointers and interfaces become None, byte slices and arrays become
// Bytes and maps become associations. A named struct becomes
// Global`Name[Rule["field", v], ...]; a struct declaring a blank marker
// field tagged "tuple" becomes Global`Name[v1, v2, ...] instead.
// Anonymous structs become associations keyed by field name.
//
// Field tags use the key "wolfram":
//
//	type Point struct {
//		_ struct{} `wolfram:"Pt,tuple"`
//		X int
//		Y int `wolfram:",omitempty"`
//	}
//
// A field tagged "-" is skipped, as are unexported fields. Untagged
// embedded structs of exported types are flattened into the enclosing
// struct.
func Marshal(v any) (Value, error) {
	return marshalValue(reflect.ValueOf(v), "")
}

func marshalValue(rv reflect.Value, path string) (Value, error) {
	if !rv.IsValid() {
		return symbolNone, nil
	}
	t := rv.Type()

	if t == valueType {
		return rv.Interface().(Value), nil
	}
	if m, ok := asMarshaler(rv); ok {
		return m.MarshalWolfram(Builder{})
	}
	if rv.Kind() != reflect.Interface && rv.CanInterface() && t.Implements(variantType) {
		if v, ok := rv.Interface().(Variant); ok && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
			enum, variant := v.WolframVariant()
			return marshalVariant(reflect.Indirect(rv), enum, variant, path)
		}
	}

	switch t {
	case bigIntType:
		n := rv.Interface().(big.Int)
		return Integer(&n), nil
	case bigRatType:
		r := rv.Interface().(big.Rat)
		return Rational(&r), nil
	case timeType:
		return DateObject(rv.Interface().(time.Time)), nil
	case durationType:
		return Quantity(Float64(time.Duration(rv.Int()).Seconds()), "Seconds"), nil
	case uuidType:
		return String(rv.Interface().(uuid.UUID).String()), nil
	}

	return marshalKind(rv, path)
}

func marshalKind(rv reflect.Value, path string) (Value, error) {
	b := Builder{}
	switch rv.Kind() {
	case reflect.Bool:
		return b.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return b.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return b.Uint(rv.Uint()), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return b.Float(rv.Float()), nil
	case reflect.Complex64, reflect.Complex128:
		return b.Complex(rv.Complex()), nil
	case reflect.String:
		return b.String(rv.String()), nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return b.None(), nil
		}
		inner, err := marshalValue(rv.Elem(), path)
		if err != nil {
			return Value{}, err
		}
		return b.Some(inner), nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return b.Bytes(rv.Bytes()), nil
		}
		return marshalSeq(b.Seq(rv.Len()), rv, path)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			raw := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(raw), rv)
			return b.Bytes(raw), nil
		}
		return marshalSeq(b.Tuple(rv.Len()), rv, path)

	case reflect.Map:
		return marshalMap(b.Map(rv.Len()), rv, path)

	case reflect.Struct:
		return marshalStruct(rv, path)

	default:
		return Value{}, wxferr.NewUnsupportedTypeError(path, rv.Type().String(), wxferr.Marshal)
	}
}

func asMarshaler(rv reflect.Value) (Marshaler, bool) {
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if rv.CanInterface() {
		if m, ok := rv.Interface().(Marshaler); ok {
			return m, true
		}
	}
	if rv.CanAddr() && rv.Addr().CanInterface() {
		if m, ok := rv.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	return nil, false
}

func marshalSeq(seq *SeqBuilder, rv reflect.Value, path string) (Value, error) {
	for i := 0; i < rv.Len(); i++ {
		item, err := marshalValue(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return Value{}, err
		}
		seq.Append(item)
	}
	return seq.End(), nil
}

func marshalMap(m *MapBuilder, rv reflect.Value, path string) (Value, error) {
	iter := rv.MapRange()
	for iter.Next() {
		key, err := marshalValue(iter.Key(), path)
		if err != nil {
			return Value{}, err
		}
		value, err := marshalValue(iter.Value(), fmt.Sprintf("%s[%v]", path, iter.Key()))
		if err != nil {
			return Value{}, err
		}
		if err := m.Entry(key, value); err != nil {
			return Value{}, err
		}
	}
	return m.End()
}

// structField is one field selected for output after tags are applied.
type structField struct {
	name  string
	value reflect.Value
}

// structLayout describes how a struct type is emitted.
type structLayout struct {
	head   string
	tuple  bool
	fields []structField
}

func marshalStruct(rv reflect.Value, path string) (Value, error) {
	layout := collectStruct(rv)
	b := Builder{}

	if rv.Type().Name() == "" {
		m := b.Map(len(layout.fields))
		items, err := marshalFields(rv.Type().String(), layout.fields, path)
		if err != nil {
			return Value{}, err
		}
		for i, f := range layout.fields {
			if err := m.Entry(String(f.name), items[i]); err != nil {
				return Value{}, err
			}
		}
		return m.End()
	}

	items, err := marshalFields(layout.head, layout.fields, path)
	if err != nil {
		return Value{}, err
	}

	switch {
	case layout.tuple:
		seq, err := b.TupleStruct(layout.head, len(items))
		if err != nil {
			return Value{}, err
		}
		for _, item := range items {
			seq.Append(item)
		}
		return seq.End(), nil
	case len(items) == 0:
		return b.UnitStruct(layout.head)
	default:
		rec, err := b.Struct(layout.head, len(items))
		if err != nil {
			return Value{}, err
		}
		for i, f := range layout.fields {
			rec.Field(f.name, items[i])
		}
		return rec.End(), nil
	}
}

func marshalVariant(rv reflect.Value, enum, variant string, path string) (Value, error) {
	b := Builder{}
	if rv.Kind() != reflect.Struct {
		inner, err := marshalKind(rv, path)
		if err != nil {
			return Value{}, err
		}
		return b.NewtypeVariant(enum, variant, inner)
	}

	layout := collectStruct(rv)
	items, err := marshalFields(enum+"`"+variant, layout.fields, path)
	if err != nil {
		return Value{}, err
	}

	switch {
	case layout.tuple:
		seq, err := b.TupleVariant(enum, variant, len(items))
		if err != nil {
			return Value{}, err
		}
		for _, item := range items {
			seq.Append(item)
		}
		return seq.End(), nil
	case len(items) == 0:
		return b.UnitVariant(enum, variant)
	default:
		rec, err := b.StructVariant(enum, variant, len(items))
		if err != nil {
			return Value{}, err
		}
		for i, f := range layout.fields {
			rec.Field(f.name, items[i])
		}
		return rec.End(), nil
	}
}

// marshalFields converts every field, collecting failures per field
// instead of stopping at the first one.
func marshalFields(typeName string, fields []structField, path string) ([]Value, error) {
	var errs errsx.Map
	var causes []error

	items := make([]Value, len(fields))
	for i, f := range fields {
		fieldPath := f.name
		if path != "" {
			fieldPath = path + "." + f.name
		}
		item, err := marshalValue(f.value, fieldPath)
		if err != nil {
			errs.Set(f.name, err)
			causes = append(causes, err)
			continue
		}
		items[i] = item
	}

	if !errs.IsEmpty() {
		return nil, &FieldErrors{Type: typeName, Fields: errs, causes: causes}
	}
	return items, nil
}

func collectStruct(rv reflect.Value) structLayout {
	t := rv.Type()
	layout := structLayout{head: t.Name()}
	if i := strings.IndexByte(layout.head, '['); i >= 0 {
		layout.head = layout.head[:i]
	}
	collectFields(rv, &layout)
	return layout
}

func collectFields(rv reflect.Value, layout *structLayout) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("wolfram")

		if f.Name == "_" {
			name, opts := parseTag(tag)
			if name != "" {
				layout.head = name
			}
			layout.tuple = opts.has("tuple")
			continue
		}
		if tag == "-" || !f.IsExported() {
			continue
		}

		fv := rv.Field(i)
		if f.Anonymous && tag == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct && !fv.Type().Implements(variantType) {
				collectFields(fv, layout)
				continue
			}
		}

		name, opts := parseTag(tag)
		if name == "" {
			name = f.Name
		}
		if opts.has("omitempty") && fv.IsZero() {
			continue
		}
		layout.fields = append(layout.fields, structField{name: name, value: fv})
	}
}

type tagOptions string

func (o tagOptions) has(option string) bool {
	for _, opt := range strings.Split(string(o), ",") {
		if strings.TrimSpace(opt) == option {
			return true
		}
	}
	return false
}

func parseTag(tag string) (string, tagOptions) {
	name, opts, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(name), tagOptions(opts)
}
