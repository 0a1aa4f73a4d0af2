package wxf

import (
	"time"

	"github.com/hengadev/wxf/internal/wxferr"
)

// Builder maps the shapes of a generic data model onto values. It holds no
// state: aggregates are assembled by the accumulator returned from the
// matching begin call and produced by its End method.
//
//	b := wxf.Builder{}
//	rec, _ := b.Struct("Point", 2)
//	rec.Field("x", b.Int(1))
//	rec.Field("y", b.Int(2))
//	v := rec.End() // Global`Point[Rule["x",1],Rule["y",2]]
type Builder struct{}

// Bool maps a boolean to True or False.
func (Builder) Bool(v bool) Value { return Bool(v) }

// Int maps a signed integer, narrowed to the smallest width on encode.
func (Builder) Int(v int64) Value { return Int(v) }

// Uint maps an unsigned integer. Values above MaxInt64 become a big
// integer.
func (Builder) Uint(v uint64) Value { return Uint(v) }

// Float maps a float to a Decimal64.
func (Builder) Float(v float64) Value { return Float64(v) }

// Char maps a rune to a one-character string.
func (Builder) Char(r rune) Value { return String(string(r)) }

// String maps a string.
func (Builder) String(s string) Value { return String(s) }

// Bytes maps a byte slice to a ByteArray.
func (Builder) Bytes(b []byte) Value { return Bytes(b) }

// Time maps a timestamp to a DateObject.
func (Builder) Time(t time.Time) Value { return DateObject(t) }

// Complex maps a complex number to Complex[re, im].
func (Builder) Complex(c complex128) Value {
	return NewComplex(Float64(real(c)), Float64(imag(c)))
}

// None maps an absent optional value to the symbol None.
func (Builder) None() Value { return symbolNone }

// Some unwraps a present optional value.
func (Builder) Some(v Value) Value { return v }

// Unit maps the empty value to the symbol Null.
func (Builder) Unit() Value { return symbolNull }

// UnitStruct returns Global`name[].
func (Builder) UnitStruct(name string) (Value, error) {
	head, err := GlobalSymbol(name)
	if err != nil {
		return Value{}, err
	}
	return NewFunction(head), nil
}

// NewtypeStruct returns Global`name[v].
func (Builder) NewtypeStruct(name string, v Value) (Value, error) {
	head, err := GlobalSymbol(name)
	if err != nil {
		return Value{}, err
	}
	return NewFunction(head, v), nil
}

// UnitVariant returns enum`variant[].
func (Builder) UnitVariant(enum, variant string) (Value, error) {
	head, err := ContextSymbol(enum, variant)
	if err != nil {
		return Value{}, err
	}
	return NewFunction(head), nil
}

// NewtypeVariant returns enum`variant[v].
func (Builder) NewtypeVariant(enum, variant string, v Value) (Value, error) {
	head, err := ContextSymbol(enum, variant)
	if err != nil {
		return Value{}, err
	}
	return NewFunction(head, v), nil
}

// Seq starts a List of n elements. n is a capacity hint.
func (Builder) Seq(n int) *SeqBuilder {
	return &SeqBuilder{head: symbolList, items: make([]Value, 0, n)}
}

// Tuple starts a List of n elements.
func (b Builder) Tuple(n int) *SeqBuilder {
	return b.Seq(n)
}

// TupleStruct starts Global`name[f1, f2, ...].
func (Builder) TupleStruct(name string, n int) (*SeqBuilder, error) {
	head, err := GlobalSymbol(name)
	if err != nil {
		return nil, err
	}
	return &SeqBuilder{head: head, items: make([]Value, 0, n)}, nil
}

// TupleVariant starts enum`variant[f1, f2, ...].
func (Builder) TupleVariant(enum, variant string, n int) (*SeqBuilder, error) {
	head, err := ContextSymbol(enum, variant)
	if err != nil {
		return nil, err
	}
	return &SeqBuilder{head: head, items: make([]Value, 0, n)}, nil
}

// Map starts an association of n entries.
func (Builder) Map(n int) *MapBuilder {
	return &MapBuilder{entries: make([]Entry, 0, n)}
}

// Struct starts Global`name[Rule["field", v], ...].
func (Builder) Struct(name string, n int) (*RecordBuilder, error) {
	head, err := GlobalSymbol(name)
	if err != nil {
		return nil, err
	}
	return &RecordBuilder{head: head, fields: make([]Value, 0, n)}, nil
}

// StructVariant starts enum`variant[Rule["field", v], ...].
func (Builder) StructVariant(enum, variant string, n int) (*RecordBuilder, error) {
	head, err := ContextSymbol(enum, variant)
	if err != nil {
		return nil, err
	}
	return &RecordBuilder{head: head, fields: make([]Value, 0, n)}, nil
}

// SeqBuilder accumulates positional elements under a fixed head.
type SeqBuilder struct {
	head  Value
	items []Value
}

// Append adds the next element.
func (s *SeqBuilder) Append(v Value) {
	s.items = append(s.items, v)
}

// End returns head[elements...].
func (s *SeqBuilder) End() Value {
	return NewFunction(s.head, s.items...)
}

// MapBuilder accumulates association entries. A key passed to Key is
// held until the matching Value call.
type MapBuilder struct {
	entries []Entry
	key     Value
	pending bool
}

// Key buffers the key of the next entry.
func (m *MapBuilder) Key(k Value) error {
	if m.pending {
		return wxferr.NewProtocolError("map key given while a previous key has no value")
	}
	m.key, m.pending = k, true
	return nil
}

// Value completes the entry started by Key.
func (m *MapBuilder) Value(v Value) error {
	if !m.pending {
		return wxferr.NewProtocolError("map value given without a key")
	}
	m.entries = append(m.entries, Entry{Key: m.key, Rule: Rule, Value: v})
	m.key, m.pending = Value{}, false
	return nil
}

// Entry adds a complete key value pair.
func (m *MapBuilder) Entry(k, v Value) error {
	if err := m.Key(k); err != nil {
		return err
	}
	return m.Value(v)
}

// End returns the association. It fails when a key is still waiting for
// its value.
func (m *MapBuilder) End() (Value, error) {
	if m.pending {
		return Value{}, wxferr.NewProtocolError("map ended with a dangling key")
	}
	return NewAssociation(m.entries...), nil
}

// RecordBuilder accumulates named fields as Rule["name", value] arguments.
type RecordBuilder struct {
	head   Value
	fields []Value
}

// Field adds the next named field.
func (r *RecordBuilder) Field(name string, v Value) {
	r.fields = append(r.fields, NewRule(String(name), v))
}

// End returns head[Rule["name", value], ...].
func (r *RecordBuilder) End() Value {
	return NewFunction(r.head, r.fields...)
}

// DateObject returns DateObject["<RFC 3339 timestamp>"].
func DateObject(t time.Time) Value {
	return NewFunction(symbolDateObject, String(t.Format(time.RFC3339Nano)))
}

// DateObjectString returns DateObject[s] for a timestamp already in text form.
func DateObjectString(s string) Value {
	return NewFunction(symbolDateObject, String(s))
}

// Quantity returns Quantity[magnitude, "unit"].
func Quantity(magnitude Value, unit string) Value {
	return NewFunction(symbolQuantity, magnitude, String(unit))
}
