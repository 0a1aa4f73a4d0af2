package wxf

import (
	"errors"

	"github.com/hengadev/wxf/internal/wxferr"
)

// Op names the stage of a conversion in which an error occurred.
type Op = wxferr.Op

var (
	// Construction errors
	ErrInvalidSymbol = wxferr.ErrInvalidSymbol

	// Encoding errors
	ErrNotImplemented  = wxferr.ErrNotImplemented
	ErrUnsupportedType = wxferr.ErrUnsupportedType
	ErrProtocol        = wxferr.ErrProtocol

	// Input errors
	ErrSyntax           = wxferr.ErrSyntax
	ErrIO               = wxferr.ErrIO
	ErrNotFound         = wxferr.ErrNotFound
	ErrPermissionDenied = wxferr.ErrPermissionDenied

	ErrInvalidConfiguration = wxferr.ErrInvalidConfiguration
)

// NewIOError classifies a file system failure on path.
func NewIOError(op Op, path string, err error) error {
	return wxferr.NewIOError(op, path, err)
}

// IsEncodingError returns true if a value tree could not be built or encoded.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrInvalidSymbol) ||
		errors.Is(err, ErrNotImplemented) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrProtocol)
}

// IsSyntaxError returns true if an input document or frame was malformed.
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// IsIOError returns true if the error comes from reading or writing a file.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPermissionDenied)
}

// IsConfigurationError returns true if the error represents a configuration problem.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
