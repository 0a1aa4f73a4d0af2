package wxf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/hengadev/wxf/internal/wire"
	"github.com/hengadev/wxf/internal/wxferr"
)

// EncodeCompressed returns the "8C:" frame of v.
func EncodeCompressed(v Value) ([]byte, error) {
	return defaultEncoder.Compressed(v)
}

// Compressed returns the "8C:" frame of v: the frame body deflated into a
// zlib stream at the highest compression level.
func (e *Encoder) Compressed(v Value) ([]byte, error) {
	body, err := e.AppendBinary(nil, v)
	if err != nil {
		return nil, err
	}
	return compressBody(body)
}

// Compress turns a materialized "8:" frame into its "8C:" form.
func Compress(frame []byte) ([]byte, error) {
	if !bytes.HasPrefix(frame, []byte(wire.Header)) {
		return nil, fmt.Errorf("%w: frame does not start with %q", wxferr.ErrSyntax, wire.Header)
	}
	return compressBody(frame[len(wire.Header):])
}

// Decompress restores the "8:" frame of a compressed frame. Uncompressed
// frames are returned as a copy.
func Decompress(frame []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(frame, []byte(wire.CompressedHeader)):
		r, err := zlib.NewReader(bytes.NewReader(frame[len(wire.CompressedHeader):]))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", wxferr.ErrSyntax, err)
		}
		defer r.Close()

		out := bytes.NewBufferString(wire.Header)
		if _, err := io.Copy(out, r); err != nil {
			return nil, fmt.Errorf("%w: %w", wxferr.ErrSyntax, err)
		}
		return out.Bytes(), nil
	case bytes.HasPrefix(frame, []byte(wire.Header)):
		return bytes.Clone(frame), nil
	default:
		return nil, fmt.Errorf("%w: unknown frame header", wxferr.ErrSyntax)
	}
}

func compressBody(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(wire.CompressedHeader)

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", wxferr.Compress, err)
	}
	if _, err := zw.Write(body); err != nil {
		return nil, fmt.Errorf("%s failed: %w", wxferr.Compress, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%s failed: %w", wxferr.Compress, err)
	}
	return buf.Bytes(), nil
}
