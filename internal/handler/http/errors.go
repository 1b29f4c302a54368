package http

import "errors"

var (
	ErrMissingScope     = errors.New("missing sync scope in path")
	ErrConflictingBlobs = errors.New("sync blob in header and body differ")
)
