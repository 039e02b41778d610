package interfaces

import "context"

// Runnable is a long-living routine that exits when ctx is cancelled or on unrecoverable error
type Runnable interface {
	Run(ctx context.Context) error
}
