package document

import (
	"bytes"
	"errors"
	"io"
	"math/big"
	"strconv"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/hengadev/wxf/internal/wxferr"
)

// ParseJSON5 decodes a single JSON5 value. Comments, unquoted keys,
// single-quoted strings and trailing commas are accepted.
//
// Integral numbers become int64, or *big.Int when they overflow it. Every
// other number becomes a float64.
func ParseJSON5(data []byte) (any, error) {
	dec := json5.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, wxferr.NewSyntaxError("json5", err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, wxferr.NewSyntaxError("json5", errors.New("trailing data after top-level value"))
	}
	return normalizeJSON5(doc)
}

func normalizeJSON5(v any) (any, error) {
	switch v := v.(type) {
	case json5.Number:
		return json5Number(string(v))
	case []any:
		for i, item := range v {
			n, err := normalizeJSON5(item)
			if err != nil {
				return nil, err
			}
			v[i] = n
		}
		return v, nil
	case map[string]any:
		for k, item := range v {
			n, err := normalizeJSON5(item)
			if err != nil {
				return nil, err
			}
			v[k] = n
		}
		return v, nil
	default:
		return v, nil
	}
}

// json5Number accepts the JSON5 number forms, hexadecimal integers and
// Infinity/NaN included.
func json5Number(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i, nil
	}
	if b, ok := new(big.Int).SetString(s, 0); ok {
		return b, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, wxferr.NewSyntaxError("json5", err)
	}
	return f, nil
}
