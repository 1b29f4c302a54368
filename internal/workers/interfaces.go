// Package workers runs the background jobs of the sync server. Today that
// is the namespace janitor, which removes transfers clients abandoned
// before fetching their last batch.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is canceled or the job
// fails.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
