package checkin

import (
	"context"
	"time"
)

// ListFilter narrows historical reads. Zero values mean "no bound".
type ListFilter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID string
}

// RemoteStore is the primary attendance store reached over the network.
// Insert returns ErrDuplicateCheckIn on a uniqueness violation,
// ErrSchemaMismatch when the column-stripping loop is exhausted, and wraps
// transient transport failures in ErrBackendUnavailable.
type RemoteStore interface {
	Insert(ctx context.Context, record CheckIn) (CheckIn, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]CheckIn, error)
	List(ctx context.Context, filter ListFilter) ([]CheckIn, error)
}

// FallbackQueue is the local durable store used when the remote store is
// unreachable. Append-mostly; entries are merged with remote rows on read.
type FallbackQueue interface {
	Append(ctx context.Context, record CheckIn) (CheckIn, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]CheckIn, error)
	List(ctx context.Context) ([]CheckIn, error)
}
