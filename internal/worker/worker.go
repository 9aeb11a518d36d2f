package worker

import (
	"context"
)

// Worker - a long running stream consumer managed by WorkerManager
type Worker interface {
	// Start blocks until the worker is stopped or ctx is done
	Start(ctx context.Context) error

	// Stop signals the worker to finish; safe to call more than once
	Stop() error

	Name() string
}
