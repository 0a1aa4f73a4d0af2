package wxferr

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// Construction errors
	ErrInvalidSymbol = errors.New("invalid symbol")

	// Encoding errors
	ErrNotImplemented  = errors.New("not implemented")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrProtocol        = errors.New("mapping protocol violation")

	// Input errors
	ErrSyntax           = errors.New("syntax error")
	ErrIO               = errors.New("i/o error")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidConfiguration = errors.New("invalid configuration")
)

func NewInvalidSymbolError(name string, reason string) error {
	return fmt.Errorf("%w: %q %s", ErrInvalidSymbol, name, reason)
}

func NewNotImplementedError(kind string, op Op) error {
	return fmt.Errorf("%w: %s is not supported for %s", ErrNotImplemented, kind, op)
}

func NewUnsupportedTypeError(path string, typeName string, op Op) error {
	if path == "" {
		return fmt.Errorf("%w: %s cannot be used for %s", ErrUnsupportedType, typeName, op)
	}
	return fmt.Errorf("%w: '%s' has type %s which cannot be used for %s",
		ErrUnsupportedType, path, typeName, op)
}

func NewProtocolError(details string) error {
	return fmt.Errorf("%w: %s", ErrProtocol, details)
}

func NewSyntaxError(format string, err error) error {
	return fmt.Errorf("%w: invalid %s document: %w", ErrSyntax, format, err)
}

func NewConfigurationError(field string, details string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfiguration, field, details)
}

// NewIOError classifies err as not found, permission denied or a generic
// I/O failure. The underlying error stays reachable through errors.Is.
func NewIOError(op Op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s %s: %w", ErrNotFound, op, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s %s: %w", ErrPermissionDenied, op, path, err)
	default:
		return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
	}
}
