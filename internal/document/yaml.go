package document

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hengadev/wxf/internal/wxferr"
)

// ParseYAML decodes a YAML stream. An empty stream yields nil, a single
// document is returned as is, and several documents are returned as a
// []any in stream order.
func ParseYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wxferr.NewSyntaxError("yaml", err)
		}
		docs = append(docs, doc)
	}

	switch len(docs) {
	case 0:
		return nil, nil
	case 1:
		return docs[0], nil
	default:
		return docs, nil
	}
}
