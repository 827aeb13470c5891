package app

import "context"

// Application is the lifecycle contract the command line drives.
type Application interface {
	// RunWorkflow runs one workflow to completion.
	RunWorkflow(ctx context.Context, name string) error
	// Serve runs the status API and the sync job until ctx is done.
	Serve(ctx context.Context) error
	Close() error
}
