package interfaces

import "context"

// SchedulerInterface drives periodic snapshots of the scan history and the
// known-fakes registry.
type SchedulerInterface interface {
	Init() error
	Stop()
	Restore(ctx context.Context) error
	Persist(ctx context.Context) error
}
