package wxf

import (
	"encoding/binary"
	"math"
	"math/big"
	"slices"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindSkip Kind = iota
	KindFunction
	KindBoolean
	KindString
	KindBytes
	KindSymbol
	KindInteger8
	KindInteger16
	KindInteger32
	KindInteger64
	KindBigInteger
	KindDecimal64
	KindBigDecimal
	KindPackedArray
	KindNumericArray
	KindAssociation
	KindRule
	KindRuleDelayed
)

func (k Kind) String() string {
	kinds := map[Kind]string{
		KindSkip:         "Skip",
		KindFunction:     "Function",
		KindBoolean:      "Boolean",
		KindString:       "String",
		KindBytes:        "Bytes",
		KindSymbol:       "Symbol",
		KindInteger8:     "Integer8",
		KindInteger16:    "Integer16",
		KindInteger32:    "Integer32",
		KindInteger64:    "Integer64",
		KindBigInteger:   "BigInteger",
		KindDecimal64:    "Decimal64",
		KindBigDecimal:   "BigDecimal",
		KindPackedArray:  "PackedArray",
		KindNumericArray: "NumericArray",
		KindAssociation:  "Association",
		KindRule:         "Rule",
		KindRuleDelayed:  "RuleDelayed",
	}

	if str, ok := kinds[k]; ok {
		return str
	}
	return "Unknown"
}

// Value is one node of a Wolfram expression tree.
//
// The zero Value is Skip, which serializes to nothing. Values are
// immutable once built: constructors copy their inputs and accessors
// return copies, so a tree can be shared between goroutines and encoded
// concurrently.
type Value struct {
	kind  Kind
	num   int64
	str   string
	raw   []byte
	dec   [8]byte
	sym   Symbol
	big   *big.Int
	fn    *function
	assoc *Association
}

type function struct {
	head Value
	args []Value
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsSkip reports whether v is the empty placeholder.
func (v Value) IsSkip() bool {
	return v.kind == KindSkip
}

// Skip returns the empty placeholder value. As a function argument it
// still counts toward the argument count but writes nothing, so
// List(Skip(), Int(1)) encodes two arguments and renders as {,1}.
func Skip() Value {
	return Value{}
}

// Bool returns a Boolean value. It encodes as the symbol True or False.
func Bool(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.num = 1
	}
	return v
}

// String returns a String value holding s.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bytes returns a Bytes value holding a copy of b.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: cloneBytes(b)}
}

// Int8 returns an Integer8 value without narrowing.
func Int8(n int8) Value { return Value{kind: KindInteger8, num: int64(n)} }

// Int16 returns an Integer16 value without narrowing.
func Int16(n int16) Value { return Value{kind: KindInteger16, num: int64(n)} }

// Int32 returns an Integer32 value without narrowing.
func Int32(n int32) Value { return Value{kind: KindInteger32, num: int64(n)} }

// Int64 returns an Integer64 value without narrowing.
func Int64(n int64) Value { return Value{kind: KindInteger64, num: n} }

// Decimal64Bits returns a Decimal64 value from the little-endian bit
// pattern of a float64. The bytes are stored and emitted as given.
func Decimal64Bits(b [8]byte) Value {
	return Value{kind: KindDecimal64, dec: b}
}

// BigDecimal returns an arbitrary precision decimal held as opaque text.
// The binary encoder does not support it.
func BigDecimal(s string) Value {
	return Value{kind: KindBigDecimal, str: s}
}

// PackedArray is reserved for packed numeric tensors. Encoding it fails
// with ErrNotImplemented.
func PackedArray(data []byte) Value {
	return Value{kind: KindPackedArray, raw: cloneBytes(data)}
}

// NumericArray is reserved for typed numeric tensors. Encoding it fails
// with ErrNotImplemented.
func NumericArray(data []byte) Value {
	return Value{kind: KindNumericArray, raw: cloneBytes(data)}
}

// RuleToken returns the bare Rule relation token.
func RuleToken() Value { return Value{kind: KindRule} }

// RuleDelayedToken returns the bare RuleDelayed relation token.
func RuleDelayedToken() Value { return Value{kind: KindRuleDelayed} }

// NewFunction returns head[args...]. The head may itself be a function,
// which gives curried forms such as f[x][y].
func NewFunction(head Value, args ...Value) Value {
	return Value{kind: KindFunction, fn: &function{head: head, args: slices.Clone(args)}}
}

// Call returns name[args...] with name resolved like NewSymbol.
func Call(name string, args ...Value) (Value, error) {
	head, err := NewSymbol(name)
	if err != nil {
		return Value{}, err
	}
	return NewFunction(head, args...), nil
}

// List returns List[items...].
func List(items ...Value) Value {
	return NewFunction(symbolList, items...)
}

// NewRule returns the function form Rule[key, value].
func NewRule(key, value Value) Value {
	return NewFunction(symbolRule, key, value)
}

// NewRuleDelayed returns the function form RuleDelayed[key, value].
func NewRuleDelayed(key, value Value) Value {
	return NewFunction(symbolRuleDelayed, key, value)
}

// AsBool returns the payload of a Boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.num != 0, true
}

// AsInt64 returns the payload of any fixed width integer variant.
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInteger8, KindInteger16, KindInteger32, KindInteger64:
		return v.num, true
	default:
		return 0, false
	}
}

// AsBigInt returns a copy of the integer payload of any integer variant.
func (v Value) AsBigInt() (*big.Int, bool) {
	if v.kind == KindBigInteger {
		return new(big.Int).Set(v.big), true
	}
	if n, ok := v.AsInt64(); ok {
		return big.NewInt(n), true
	}
	return nil, false
}

// AsString returns the payload of a String.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBytes returns a copy of the payload of a Bytes value.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return cloneBytes(v.raw), true
}

// AsSymbol returns the payload of a Symbol.
func (v Value) AsSymbol() (Symbol, bool) {
	if v.kind != KindSymbol {
		return Symbol{}, false
	}
	return v.sym, true
}

// AsDecimal64 returns the stored bit pattern of a Decimal64.
func (v Value) AsDecimal64() ([8]byte, bool) {
	if v.kind != KindDecimal64 {
		return [8]byte{}, false
	}
	return v.dec, true
}

// AsFloat64 decodes the bit pattern of a Decimal64.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindDecimal64 {
		return 0, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.dec[:])), true
}

// AsBigDecimal returns the opaque text of a BigDecimal.
func (v Value) AsBigDecimal() (string, bool) {
	if v.kind != KindBigDecimal {
		return "", false
	}
	return v.str, true
}

// Head returns the head of a Function.
func (v Value) Head() (Value, bool) {
	if v.kind != KindFunction {
		return Value{}, false
	}
	return v.fn.head, true
}

// Args returns a copy of the arguments of a Function.
func (v Value) Args() []Value {
	if v.kind != KindFunction {
		return nil
	}
	return slices.Clone(v.fn.args)
}

// AsAssociation returns the association held by v.
func (v Value) AsAssociation() (*Association, bool) {
	if v.kind != KindAssociation {
		return nil, false
	}
	return v.assoc, true
}

// HasHead reports whether v is a Function whose head is the symbol name,
// compared after qualification.
func (v Value) HasHead(name string) bool {
	if v.kind != KindFunction || v.fn.head.kind != KindSymbol {
		return false
	}
	return v.fn.head.sym.qualified(GlobalContext) == QualifyName(name)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return slices.Clone(b)
}
