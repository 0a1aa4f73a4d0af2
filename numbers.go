package wxf

import (
	"encoding/binary"
	"math"
	"math/big"
)

// Int returns n in the narrowest integer variant that holds it.
func Int(n int64) Value {
	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return Int8(int8(n))
	case n >= math.MinInt16 && n <= math.MaxInt16:
		return Int16(int16(n))
	case n >= math.MinInt32 && n <= math.MaxInt32:
		return Int32(int32(n))
	default:
		return Int64(n)
	}
}

// Uint returns n in the narrowest signed variant that holds it. Values
// above the signed 64-bit range become a BigInteger.
func Uint(n uint64) Value {
	if n <= math.MaxInt64 {
		return Int(int64(n))
	}
	return Value{kind: KindBigInteger, big: new(big.Int).SetUint64(n)}
}

// Integer returns n in the narrowest variant that holds it. A nil n is
// treated as zero.
func Integer(n *big.Int) Value {
	if n == nil {
		return Int8(0)
	}
	if n.IsInt64() {
		return Int(n.Int64())
	}
	return Value{kind: KindBigInteger, big: new(big.Int).Set(n)}
}

// Float64 returns f as a Decimal64. Infinities become Infinity and
// Neg[Infinity]; NaN becomes Null.
func Float64(f float64) Value {
	switch {
	case math.IsInf(f, 1):
		return symbolInfinity
	case math.IsInf(f, -1):
		return NewFunction(symbolNeg, symbolInfinity)
	case math.IsNaN(f):
		return symbolNull
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	return Decimal64Bits(b)
}

// Float32 widens f to float64 and applies Float64.
func Float32(f float32) Value {
	return Float64(float64(f))
}

// Rational returns Rational[num, den] with both parts narrowed.
func Rational(r *big.Rat) Value {
	return NewFunction(symbolRational, Integer(r.Num()), Integer(r.Denom()))
}

// NewComplex returns Complex[re, im].
func NewComplex(re, im Value) Value {
	return NewFunction(symbolComplex, re, im)
}
