// Package wire holds the primitive byte layouts of the exchange format:
// unsigned LEB128 lengths and little-endian fixed-width integers.
package wire

import "encoding/binary"

// Frame headers
const (
	Header           = "8:"
	CompressedHeader = "8C:"
)

// Expression tags
const (
	TagInteger8    byte = 'C'
	TagInteger16   byte = 'j'
	TagInteger32   byte = 'i'
	TagInteger64   byte = 'L'
	TagBigInteger  byte = 'I'
	TagReal64      byte = 'r'
	TagBigReal     byte = 'R'
	TagString      byte = 'S'
	TagBinary      byte = 'B'
	TagSymbol      byte = 's'
	TagFunction    byte = 'f'
	TagAssociation byte = 'A'
	TagRule        byte = '-'
	TagRuleDelayed byte = ':'
)

// AppendVarint appends n as an unsigned LEB128 varint.
func AppendVarint(dst []byte, n uint64) []byte {
	return binary.AppendUvarint(dst, n)
}

// ReadVarint decodes an unsigned LEB128 varint from the start of src and
// reports the number of bytes consumed. n is 0 when src is truncated or
// the value overflows 64 bits.
func ReadVarint(src []byte) (v uint64, n int) {
	v, n = binary.Uvarint(src)
	if n <= 0 {
		return 0, 0
	}
	return v, n
}

// AppendLength appends a length prefix followed by payload.
func AppendLength(dst []byte, tag byte, payload []byte) []byte {
	dst = append(dst, tag)
	dst = AppendVarint(dst, uint64(len(payload)))
	return append(dst, payload...)
}

// AppendLengthString is AppendLength for string payloads.
func AppendLengthString(dst []byte, tag byte, payload string) []byte {
	dst = append(dst, tag)
	dst = AppendVarint(dst, uint64(len(payload)))
	return append(dst, payload...)
}

func AppendInt8(dst []byte, v int8) []byte {
	return append(dst, TagInteger8, byte(v))
}

func AppendInt16(dst []byte, v int16) []byte {
	dst = append(dst, TagInteger16)
	return binary.LittleEndian.AppendUint16(dst, uint16(v))
}

func AppendInt32(dst []byte, v int32) []byte {
	dst = append(dst, TagInteger32)
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func AppendInt64(dst []byte, v int64) []byte {
	dst = append(dst, TagInteger64)
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}
