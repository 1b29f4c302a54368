package blob

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformedBlob is wrapped by every decode failure.
var ErrMalformedBlob = errors.New("malformed sync blob")

var (
	ErrEmptyBlob        = fmt.Errorf("%w: empty input", ErrMalformedBlob)
	ErrFieldOrder       = errors.New("field out of order or repeated")
	ErrUnknownField     = errors.New("unknown field")
	ErrMissingField     = errors.New("required field missing")
	ErrWireType         = errors.New("unexpected wire type")
	ErrInvalidBool      = errors.New("boolean is neither 0 nor 1")
	ErrInvalidUUID      = errors.New("identifier is not 16 bytes")
	ErrInvalidScopeName = errors.New("scope name is not valid UTF-8")
)

func fieldError(num protowire.Number, err error) error {
	return fmt.Errorf("%w: field %d: %w", ErrMalformedBlob, num, err)
}
