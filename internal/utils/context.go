// Package utils provides general-purpose helper utilities used across the
// sync server and its client adapter: context keys, JSON response writing,
// the resty client wrapper, diagnostics tokens and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// VerboseErrorsCtxKey marks a request whose caller may see internal error
// details.
var VerboseErrorsCtxKey = contextKey("verboseErrors")

// WithVerboseErrors returns a copy of ctx that allows verbose error details.
func WithVerboseErrors(ctx context.Context) context.Context {
	return context.WithValue(ctx, VerboseErrorsCtxKey, true)
}

// VerboseErrorsFromContext reports whether verbose error details were
// granted for the request carried by ctx.
func VerboseErrorsFromContext(ctx context.Context) bool {
	verbose, ok := ctx.Value(VerboseErrorsCtxKey).(bool)
	return ok && verbose
}
