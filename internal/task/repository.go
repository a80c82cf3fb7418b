package task

import "context"

// Repository persists the complete task list. Save always rewrites
// everything; there are no incremental writes.
//
// Load returns a cerr.NotFound error when nothing has been saved yet and a
// cerr.DataLoss error when the stored data cannot be decoded.
type Repository interface {
	Load(ctx context.Context) ([]*Task, error)
	Save(ctx context.Context, tasks []*Task) error
}
