package wxf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Leaves(t *testing.T) {
	b := Builder{}

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"bool", b.Bool(true), "True"},
		{"int", b.Int(-300), "-300"},
		{"uint", b.Uint(255), "255"},
		{"float", b.Float(1.25), "1.25`"},
		{"char", b.Char('λ'), `"λ"`},
		{"string", b.String("s"), `"s"`},
		{"bytes", b.Bytes([]byte{7}), "ByteArray[{7}]"},
		{"none", b.None(), "None"},
		{"some", b.Some(b.Int(3)), "3"},
		{"unit", b.Unit(), "Null"},
		{"complex", b.Complex(complex(1, -2)), "Complex[1`,-2`]"},
		{"time", b.Time(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), `DateObject["2024-01-02T03:04:05Z"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}

	assert.Equal(t, KindInteger16, b.Uint(255).Kind())
}

func TestBuilder_NamedShapes(t *testing.T) {
	b := Builder{}

	unit, err := b.UnitStruct("Empty")
	require.NoError(t, err)
	assert.Equal(t, "Global`Empty[]", unit.String())

	newtype, err := b.NewtypeStruct("Meters", b.Int(5))
	require.NoError(t, err)
	assert.Equal(t, "Global`Meters[5]", newtype.String())

	tuple, err := b.TupleStruct("Pair", 2)
	require.NoError(t, err)
	tuple.Append(b.Int(1))
	tuple.Append(b.String("a"))
	assert.Equal(t, `Global`+"`"+`Pair[1,"a"]`, tuple.End().String())

	rec, err := b.Struct("Point", 2)
	require.NoError(t, err)
	rec.Field("x", b.Int(1))
	rec.Field("y", b.Int(2))
	assert.Equal(t, `Global`+"`"+`Point[Rule["x",1],Rule["y",2]]`, rec.End().String())

	_, err = b.Struct("bad name", 0)
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestBuilder_Variants(t *testing.T) {
	b := Builder{}

	unit, err := b.UnitVariant("Shape", "Empty")
	require.NoError(t, err)
	assert.Equal(t, "Shape`Empty[]", unit.String())

	newtype, err := b.NewtypeVariant("Shape", "Circle", b.Float(2))
	require.NoError(t, err)
	assert.Equal(t, "Shape`Circle[2`]", newtype.String())

	tuple, err := b.TupleVariant("Shape", "Line", 2)
	require.NoError(t, err)
	tuple.Append(b.Int(0))
	tuple.Append(b.Int(1))
	assert.Equal(t, "Shape`Line[0,1]", tuple.End().String())

	rec, err := b.StructVariant("Shape", "Rect", 1)
	require.NoError(t, err)
	rec.Field("w", b.Int(4))
	assert.Equal(t, `Shape`+"`"+`Rect[Rule["w",4]]`, rec.End().String())

	_, err = b.UnitVariant("Sha pe", "X")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestBuilder_Sequences(t *testing.T) {
	b := Builder{}

	seq := b.Seq(3)
	seq.Append(b.Int(1))
	seq.Append(b.Int(2))
	assert.Equal(t, "{1,2}", seq.End().String())

	tuple := b.Tuple(0)
	assert.Equal(t, "{}", tuple.End().String())
}

func TestMapBuilder(t *testing.T) {
	b := Builder{}

	m := b.Map(2)
	require.NoError(t, m.Key(b.String("b")))
	require.NoError(t, m.Value(b.Int(2)))
	require.NoError(t, m.Entry(b.String("a"), b.Int(1)))

	v, err := m.End()
	require.NoError(t, err)
	assert.Equal(t, `<|"a"->1,"b"->2|>`, v.String())
}

func TestMapBuilder_ProtocolErrors(t *testing.T) {
	b := Builder{}

	t.Run("value without key", func(t *testing.T) {
		m := b.Map(0)
		assert.ErrorIs(t, m.Value(b.Int(1)), ErrProtocol)
	})

	t.Run("key twice", func(t *testing.T) {
		m := b.Map(0)
		require.NoError(t, m.Key(b.Int(1)))
		assert.ErrorIs(t, m.Key(b.Int(2)), ErrProtocol)
		assert.ErrorIs(t, m.Entry(b.Int(2), b.Int(3)), ErrProtocol)
	})

	t.Run("dangling key", func(t *testing.T) {
		m := b.Map(0)
		require.NoError(t, m.Key(b.Int(1)))
		_, err := m.End()
		assert.ErrorIs(t, err, ErrProtocol)
		assert.True(t, IsEncodingError(err))
	})
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, `Quantity[1.5`+"`"+`,"Seconds"]`, Quantity(Float64(1.5), "Seconds").String())
	assert.Equal(t, `DateObject["2024-05-01"]`, DateObjectString("2024-05-01").String())
}
