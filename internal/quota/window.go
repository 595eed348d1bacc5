// Package quota implements the usage metering core: window math, the
// snapshot evaluator, and the admission gate that guards billable searches.
package quota

import (
	"time"

	"server/internal/domain"
)

// Window is the half-open interval [Start, End) over which consumption is
// counted. An event occurring exactly at Start belongs to this window; one
// at End belongs to the next.
type Window struct {
	Start time.Time
	End   time.Time
}

// windowFor computes the active window of the given kind at the reference
// instant. Weekly windows start at the most recent occurrence of weekStart
// truncated to midnight and last exactly seven days. Monthly windows span
// the current calendar month, so their absolute duration varies with the
// month length.
func windowFor(kind domain.WindowKind, weekStart time.Weekday, now time.Time) Window {
	switch kind {
	case domain.WindowMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: start.AddDate(0, 1, 0)}
	default:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		back := (int(now.Weekday()) - int(weekStart) + 7) % 7
		start := midnight.AddDate(0, 0, -back)
		return Window{Start: start, End: start.Add(7 * 24 * time.Hour)}
	}
}
