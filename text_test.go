package wxf

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	x, err := NewSymbol("x")
	require.NoError(t, err)
	sin1 := mustCall(t, "Sin", Int(1))

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"integer", Int(0), "0"},
		{"negative integer", Int(-40000), "-40000"},
		{"big integer", Uint(math.MaxUint64), "18446744073709551615"},
		{"true", Bool(true), "True"},
		{"false", Bool(false), "False"},
		{"string", String("42"), `"42"`},
		{"escaped string", String("a\"b\\c\nd\te\rf"), `"a\"b\\c\nd\te\rf"`},
		{"control character", String("\x01"), `"\:0001"`},
		{"unicode string", String("中文"), `"中文"`},
		{"bytes", Bytes([]byte{1, 2, 3}), "ByteArray[{1,2,3}]"},
		{"empty bytes", Bytes(nil), "ByteArray[{}]"},
		{"bare symbol", x, "Global`x"},
		{"list", List(Int(0)), "{0}"},
		{"empty list", List(), "{}"},
		{"nested list", List(List(Int(1), Int(2)), String("a")), `{{1,2},"a"}`},
		{"function", sin1, "Sin[1]"},
		{"curried function", NewFunction(sin1, Int(2)), "Sin[1][2]"},
		{"association", NewAssociation(Entry{Key: Int(1), Value: Int(2)}), "<|1->2|>"},
		{"delayed association", NewAssociation(
			Entry{Key: String("b"), Rule: RuleDelayed, Value: x},
			Entry{Key: String("a"), Value: Int(1)},
		), `<|"a"->1,"b":>Global` + "`" + `x|>`},
		{"zero float", Float64(0), "0`"},
		{"float", Float64(0.3), "0.3`"},
		{"float sum", Float64(0.1 + 0.2), "0.30000000000000004`"},
		{"float32 widens", Float32(0.5), "0.5`"},
		{"infinity", Float64(math.Inf(1)), "Infinity"},
		{"negative infinity", Float64(math.Inf(-1)), "Neg[Infinity]"},
		{"nan", Float64(math.NaN()), "Null"},
		{"rational", Rational(big.NewRat(1, 2)), "Rational[1,2]"},
		{"complex", NewComplex(Int(1), Int(2)), "Complex[1,2]"},
		{"rule function", NewRule(String("k"), Int(1)), `Rule["k",1]`},
		{"big decimal", BigDecimal("1.5`20"), "1.5`20"},
		{"rule token", RuleToken(), "->"},
		{"skip", Skip(), ""},
		{"skip argument", List(Skip(), Int(1)), "{,1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestText_NotImplemented(t *testing.T) {
	_, err := Text(PackedArray([]byte{1}))
	assert.ErrorIs(t, err, ErrNotImplemented)

	assert.Contains(t, NumericArray(nil).String(), "%!v(")
}

func TestText_DefaultContext(t *testing.T) {
	enc, err := NewEncoder(WithDefaultContext("Data`"))
	require.NoError(t, err)

	x, err := NewSymbol("x")
	require.NoError(t, err)
	got, err := enc.Text(List(x))
	require.NoError(t, err)
	assert.Equal(t, "{Data`x}", got)
}

// The text and binary forms qualify every symbol identically.
func TestText_AgreesWithBinary(t *testing.T) {
	corpus := []string{"x", "Sin", "List", "True", "None", "My`ctx`y", "Foo"}
	for _, name := range corpus {
		t.Run(name, func(t *testing.T) {
			v, err := NewSymbol(name)
			require.NoError(t, err)

			text, err := Text(v)
			require.NoError(t, err)
			bin, err := Encode(v)
			require.NoError(t, err)

			assert.True(t, bytes.HasSuffix(bin, []byte(text)), "binary %q does not carry %q", bin, text)
			assert.Equal(t, byte(len(text)), bin[3])
		})
	}

	bin, err := Encode(Bool(true))
	require.NoError(t, err)
	assert.Equal(t, append([]byte{56, 58, 's', 4}, "True"...), bin)
	assert.Equal(t, "True", Bool(true).String())
}
