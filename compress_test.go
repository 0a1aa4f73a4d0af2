package wxf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCompressed_RoundTrip(t *testing.T) {
	values := []Value{
		Int(0),
		String(strings.Repeat("wolfram ", 200)),
		List(Int(1), String("a"), Float64(0.3)),
		NewAssociation(Entry{Key: Int(1), Value: Int(2)}),
	}

	for _, v := range values {
		raw, err := Encode(v)
		require.NoError(t, err)

		compressed, err := EncodeCompressed(v)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(compressed, []byte("8C:")))

		restored, err := Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, raw, restored)
	}
}

func TestEncodeCompressed_Deterministic(t *testing.T) {
	v := List(String("x"), Int(12345))
	a, err := EncodeCompressed(v)
	require.NoError(t, err)
	b, err := EncodeCompressed(v)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeCompressed_ShrinksRepetitiveInput(t *testing.T) {
	v := String(strings.Repeat("a", 4096))
	raw, err := Encode(v)
	require.NoError(t, err)
	compressed, err := EncodeCompressed(v)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(raw)/10)
}

func TestCompress_MatchesEncodeCompressed(t *testing.T) {
	v := List(Int(1), Int(2))
	raw, err := Encode(v)
	require.NoError(t, err)

	viaFrame, err := Compress(raw)
	require.NoError(t, err)
	direct, err := EncodeCompressed(v)
	require.NoError(t, err)
	assert.Equal(t, direct, viaFrame)
}

func TestCompress_Errors(t *testing.T) {
	_, err := Compress([]byte("nope"))
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Decompress([]byte("xx"))
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Decompress([]byte("8C:not zlib"))
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = EncodeCompressed(BigDecimal("1"))
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestDecompress_RawFramePassesThrough(t *testing.T) {
	frame := []byte{56, 58, 67, 1}
	got, err := Decompress(frame)
	require.NoError(t, err)
	assert.Equal(t, frame, got)

	got[2] = 0
	assert.Equal(t, byte(67), frame[2])
}
