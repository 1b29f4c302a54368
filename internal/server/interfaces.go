package server

import "context"

// Server is the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests until ctx is canceled, then shuts down
	// gracefully. It returns the first error that is not part of a normal
	// shutdown.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting new requests and waits for in-flight ones
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
