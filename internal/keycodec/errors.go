package keycodec

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported key type")
	ErrMalformedKey    = errors.New("malformed entity key")

	// ErrValueOutOfRange is returned by Format for values that have no
	// literal Parse accepts, such as datetimes outside years 0000-9999.
	ErrValueOutOfRange = errors.New("key value out of literal range")
)

// KeyError describes why a key string could not be decoded. It always wraps
// ErrMalformedKey so callers can classify it as a client fault.
type KeyError struct {
	Key    string
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedKey, e.Key, e.Reason)
}

func (e *KeyError) Unwrap() error {
	return ErrMalformedKey
}

func keyError(key, format string, args ...any) error {
	return &KeyError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
