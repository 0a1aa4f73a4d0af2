package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Input represents a document syntax accepted by the converter
type Input string

const (
	JSON   Input = "json"
	JSON5  Input = "json5"
	YAML   Input = "yaml"
	TOML   Input = "toml"
	SQLite Input = "sqlite"
)

// IsValid checks if the input format is supported
func (i Input) IsValid() bool {
	switch i {
	case JSON, JSON5, YAML, TOML, SQLite:
		return true
	default:
		return false
	}
}

func (i Input) String() string {
	return string(i)
}

// ParseInput parses a format name. Common aliases such as "yml" are accepted.
func ParseInput(s string) (Input, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "yml":
		name = string(YAML)
	case "db", "sqlite3":
		name = string(SQLite)
	}

	input := Input(name)
	if !input.IsValid() {
		return "", fmt.Errorf("invalid input format '%s': must be one of [%s, %s, %s, %s, %s]",
			s, JSON, JSON5, YAML, TOML, SQLite)
	}
	return input, nil
}

// DetectInput infers the input format from the extension of path
func DetectInput(path string) (Input, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot detect format of '%s': no file extension", path)
	}
	return ParseInput(ext)
}

// AllInputs returns all supported input formats
func AllInputs() []Input {
	return []Input{JSON, JSON5, YAML, TOML, SQLite}
}
