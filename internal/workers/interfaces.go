// Package workers runs long-lived background workers side by side.
//
// A Workers group shares one context between its members: the first worker
// to return cancels the rest, so a failed listener also stops the scheduled
// sync job and vice versa.
package workers

import "context"

// Worker is a long-lived background task. Run blocks until ctx is done or
// the worker gives up on its own.
//
// Example implementation:
//
//	type ticker struct{}
//
//	func (w *ticker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context)

func (f WorkerFunc) Run(ctx context.Context) {
	f(ctx)
}
