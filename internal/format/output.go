package format

import (
	"fmt"
	"strings"
)

// Output represents one artifact kind produced by a conversion
type Output string

const (
	// Text is the Wolfram Language input form, written to "<input>.m"
	Text Output = "text"
	// Binary is the raw "8:" frame, written to "<input>.wxf"
	Binary Output = "binary"
	// Compressed is the zlib "8C:" frame, written to "<input>.mx"
	Compressed Output = "compressed"
)

// IsValid checks if the output kind is supported
func (o Output) IsValid() bool {
	switch o {
	case Text, Binary, Compressed:
		return true
	default:
		return false
	}
}

// Extension returns the file extension, with its leading dot, for the output kind
func (o Output) Extension() string {
	switch o {
	case Text:
		return ".m"
	case Binary:
		return ".wxf"
	case Compressed:
		return ".mx"
	default:
		return ""
	}
}

// ContentType returns the MIME type used when the artifact is uploaded
func (o Output) ContentType() string {
	switch o {
	case Text:
		return "text/plain; charset=utf-8"
	default:
		return "application/vnd.wolfram.wxf"
	}
}

func (o Output) String() string {
	return string(o)
}

// ParseOutput parses a string into an Output and validates it
func ParseOutput(s string) (Output, error) {
	output := Output(strings.ToLower(strings.TrimSpace(s)))

	if !output.IsValid() {
		return "", fmt.Errorf("invalid output '%s': must be one of [%s, %s, %s]",
			s, Text, Binary, Compressed)
	}

	return output, nil
}

// ParseOutputs parses a comma separated list such as "text,binary".
// Duplicates are dropped and the order of first appearance is kept.
func ParseOutputs(s string) ([]Output, error) {
	var outputs []Output
	seen := make(map[Output]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		output, err := ParseOutput(part)
		if err != nil {
			return nil, err
		}
		if !seen[output] {
			seen[output] = true
			outputs = append(outputs, output)
		}
	}
	return outputs, nil
}

// AllOutputs returns all supported output kinds
func AllOutputs() []Output {
	return []Output{Text, Binary, Compressed}
}
