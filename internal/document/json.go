package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/hengadev/wxf/internal/wxferr"
)

// ParseJSON decodes a single JSON value. Numbers are kept as json.Number so
// integers wider than a float64 mantissa survive.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, wxferr.NewSyntaxError("json", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, wxferr.NewSyntaxError("json", errors.New("trailing data after top-level value"))
	}
	return doc, nil
}
