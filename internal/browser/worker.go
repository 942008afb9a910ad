// internal/browser/worker.go
package browser

import "context"

// WorkerID identifies a logical test worker. Sessions are keyed by it.
type WorkerID string

// DefaultWorker is used when a context carries no worker identity.
const DefaultWorker WorkerID = "main"

type workerKey struct{}

// WithWorker returns a context bound to the given worker.
func WithWorker(ctx context.Context, id WorkerID) context.Context {
	return context.WithValue(ctx, workerKey{}, id)
}

// WorkerFrom returns the worker bound to ctx, falling back to DefaultWorker.
func WorkerFrom(ctx context.Context) WorkerID {
	if id, ok := ctx.Value(workerKey{}).(WorkerID); ok && id != "" {
		return id
	}
	return DefaultWorker
}
