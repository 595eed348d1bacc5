package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/metrics"
)

// Operation is a protected action guarded by the gate. It runs under the
// caller's context and must honor cancellation; a timed-out operation is an
// operation failure and consumes no quota.
type Operation func(ctx context.Context) error

// QuotaExceededError is returned when an admission is denied. It carries
// the snapshot that produced the denial so callers can report used/limit
// and the reset instant.
type QuotaExceededError struct {
	Snapshot domain.UsageSnapshot
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %d/%d (%s, resets %s)",
		e.Snapshot.Current, e.Snapshot.Limit, e.Snapshot.Window, e.Snapshot.ResetAt.Format(time.RFC3339))
}

func (e *QuotaExceededError) Unwrap() error { return domain.ErrQuotaExceeded }

// Gate admits protected operations against an account's remaining quota.
//
// The check and the record are deliberately not atomic. Two concurrent
// admissions for the same account with one slot left can both pass,
// overshooting the limit by at most the number of in-flight requests.
// Availability is favored over strict enforcement; no per-account lock is
// taken.
type Gate struct {
	evaluator *Evaluator
	events    domain.UsageEventRepository
	failOpen  bool
	now       func() time.Time
	log       zerolog.Logger
}

// NewGate constructs an admission gate. When failOpen is true a counter
// store failure during the admission check admits the request instead of
// denying it; either way the choice is visible in logs and metrics.
func NewGate(evaluator *Evaluator, events domain.UsageEventRepository, failOpen bool, log zerolog.Logger) *Gate {
	return &Gate{
		evaluator: evaluator,
		events:    events,
		failOpen:  failOpen,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the gate's clock used to stamp consumption events.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Admit runs op if the account has remaining quota and records one
// consumption event after op succeeds. A denied admission never invokes op
// and never changes the count; a failed op is free; a record failure after
// a successful op is logged and swallowed so a user is never penalized for
// an accounting fault.
func (g *Gate) Admit(ctx context.Context, account *domain.Account, op Operation) error {
	snapshot, err := g.evaluator.Evaluate(ctx, account)
	switch {
	case err != nil && !g.failOpen:
		metrics.AdmissionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return fmt.Errorf("evaluate quota: %w", err)
	case err != nil:
		g.log.Warn().Err(err).
			Str("account_id", account.ID).
			Msg("counter store unreadable, admitting fail-open")
		metrics.FailOpenAdmissions.Inc()
	case snapshot.Remaining <= 0:
		metrics.AdmissionsTotal.WithLabelValues(metrics.OutcomeDenied).Inc()
		return &QuotaExceededError{Snapshot: snapshot}
	}

	if err := op(ctx); err != nil {
		return err
	}
	metrics.AdmissionsTotal.WithLabelValues(metrics.OutcomeAdmitted).Inc()

	if err := g.events.Record(ctx, account.ID, domain.EventSearch, g.now()); err != nil {
		g.log.Error().Err(err).
			Str("account_id", account.ID).
			Msg("failed to record consumption event")
		metrics.UsageRecordFailures.Inc()
	}
	return nil
}
