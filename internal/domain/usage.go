package domain

import "time"

// EventKind discriminates consumption event types.
type EventKind string

// EventSearch is the only billable event kind today.
const EventSearch EventKind = "search"

// ConsumptionEvent is one unit of billable usage attributed to an account
// at a point in time. Events are append-only: they are never mutated or
// deleted outside of administrative purges.
type ConsumptionEvent struct {
	ID         string
	AccountID  string
	Kind       EventKind
	OccurredAt time.Time
}

// UsageSnapshot is a derived, side-effect-free view of an account's quota
// state. It is recomputed from the event log on every query and never
// persisted.
type UsageSnapshot struct {
	Current     int
	Limit       int
	Remaining   int
	Window      WindowKind
	WindowStart time.Time
	ResetAt     time.Time
	Tier        TierID
}
