// Package document parses the input syntaxes accepted by the converter into
// generic document trees.
//
// A document tree is built from nil, bool, string, []byte, json.Number,
// Go integers and floats, time.Time, wxf.Value, []any and map[string]any.
// It is the shape wxf.FromDocument consumes.
package document

import (
	"fmt"
	"os"

	"github.com/hengadev/wxf/internal/format"
	"github.com/hengadev/wxf/internal/wxferr"
)

// Parse decodes data written in the given syntax.
//
// SQLite databases cannot be parsed from memory; use ReadFile for them.
func Parse(input format.Input, data []byte) (any, error) {
	switch input {
	case format.JSON:
		return ParseJSON(data)
	case format.JSON5:
		return ParseJSON5(data)
	case format.YAML:
		return ParseYAML(data)
	case format.TOML:
		return ParseTOML(data)
	case format.SQLite:
		return nil, wxferr.NewNotImplementedError("in-memory sqlite", wxferr.Parse)
	default:
		return nil, wxferr.NewConfigurationError("input format", fmt.Sprintf("'%s' is not supported", input))
	}
}

// ReadFile reads and parses the document stored at path.
func ReadFile(input format.Input, path string) (any, error) {
	if input == format.SQLite {
		return ReadSQLite(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wxferr.NewIOError(wxferr.Read, path, err)
	}
	return Parse(input, data)
}
