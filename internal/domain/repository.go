package domain

import (
	"context"
	"time"
)

// UsageEventRepository is the durable, append-only store of consumption
// events. Implementations must guarantee read-your-writes per account: a
// CountSince issued after a successful Record for the same account includes
// that event.
type UsageEventRepository interface {
	// Record appends one consumption event. It returns only after the
	// event is durable; storage faults wrap ErrStorageUnavailable.
	Record(ctx context.Context, accountID string, kind EventKind, at time.Time) error
	// CountSince returns the number of events for the account and kind
	// with occurred_at >= since.
	CountSince(ctx context.Context, accountID string, kind EventKind, since time.Time) (int, error)
}

// AccountRepository reads externally provisioned accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	// EnsureByID upserts a minimal account row for a verified subject,
	// defaulting the tier on first sight, and returns the current state.
	EnsureByID(ctx context.Context, id string) (*Account, error)
}
