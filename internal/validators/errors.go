package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoEntities         = errors.New("entities list cannot be empty")
	ErrTooManyEntities    = errors.New("too many entities in one request")
	ErrEmptyPayload       = errors.New("payload is required for non-tombstone entities")
	ErrDuplicateKey       = errors.New("entity key appears more than once")
	ErrInvalidPolicy      = errors.New("invalid resolution policy")
	ErrInvalidScopeName   = errors.New("invalid scope name")
	ErrConflictingSources = errors.New("both sync blob and client knowledge given")
)
