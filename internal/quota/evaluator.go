package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Evaluator computes usage snapshots from the plan catalog and the
// consumption event log. It holds no per-account state: every snapshot is
// recomputed from the store at query time, so it can be shared freely
// across requests.
type Evaluator struct {
	catalog   *domain.Catalog
	events    domain.UsageEventRepository
	weekStart time.Weekday
	now       func() time.Time
	log       zerolog.Logger
}

// NewEvaluator constructs an evaluator. weekStart sets the day weekly
// windows open on.
func NewEvaluator(catalog *domain.Catalog, events domain.UsageEventRepository, weekStart time.Weekday, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		catalog:   catalog,
		events:    events,
		weekStart: weekStart,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the evaluator's clock. Intended for tests that replay
// event sequences at fixed instants.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	e.now = now
	return e
}

// Evaluate returns the account's current usage snapshot. An unknown tier id
// falls back to the default tier and is never surfaced to the caller; a
// counter store failure is.
func (e *Evaluator) Evaluate(ctx context.Context, account *domain.Account) (domain.UsageSnapshot, error) {
	tier, err := e.catalog.Tier(account.Tier)
	if err != nil {
		e.log.Warn().
			Str("account_id", account.ID).
			Str("tier", string(account.Tier)).
			Msg("unknown plan tier, falling back to default")
		tier = e.catalog.TierOrDefault(account.Tier)
	}

	win := windowFor(tier.Window, e.weekStart, e.now())
	current, err := e.events.CountSince(ctx, account.ID, domain.EventSearch, win.Start)
	if err != nil {
		return domain.UsageSnapshot{}, fmt.Errorf("count usage since %s: %w", win.Start.Format(time.RFC3339), err)
	}

	remaining := tier.Limit - current
	if remaining < 0 {
		remaining = 0
	}
	return domain.UsageSnapshot{
		Current:     current,
		Limit:       tier.Limit,
		Remaining:   remaining,
		Window:      tier.Window,
		WindowStart: win.Start,
		ResetAt:     win.End,
		Tier:        tier.ID,
	}, nil
}
