// Package workers runs the background jobs of the vault server.
//
// Every job implements [Worker]. [Workers] starts all of them and returns
// once all have stopped after their context was cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
