package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnknownScope        = errors.New("unknown sync scope")
	ErrPolicyNotSupported  = errors.New("resolution policy not supported")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrInternalServerError = errors.New("internal server error")
	ErrServerTimeout       = errors.New("server timed out")
	ErrUnavailable         = errors.New("server unavailable")

	// ErrRepeatedBatch means the server handed out a batch twice within one
	// transfer.
	ErrRepeatedBatch = errors.New("batch delivered twice")
	// ErrTooManyBatches stops a transfer that never reports its last batch.
	ErrTooManyBatches = errors.New("transfer exceeds batch limit")
)
