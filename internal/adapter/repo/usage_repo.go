package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// UsageEventRepositoryPG implements domain.UsageEventRepository backed by
// PostgreSQL. Rows are append-only; counting relies on the
// (account_id, kind, occurred_at) index.
type UsageEventRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUsageEventRepository creates a new UsageEventRepositoryPG.
func NewUsageEventRepository(pool *pgxpool.Pool) *UsageEventRepositoryPG {
	return &UsageEventRepositoryPG{pool: pool}
}

// Record appends one consumption event. The insert is durable before this
// returns; any storage fault is reported as ErrStorageUnavailable so the
// gate can apply its accounting-failure policy.
func (r *UsageEventRepositoryPG) Record(ctx context.Context, accountID string, kind domain.EventKind, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO usage_events (id, account_id, kind, occurred_at)
VALUES ($1, $2, $3, $4);
`, uuid.NewString(), accountID, string(kind), at)
	if err != nil {
		return fmt.Errorf("%w: insert usage event: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// CountSince returns the number of events for the account and kind with
// occurred_at on or after the given instant.
func (r *UsageEventRepositoryPG) CountSince(ctx context.Context, accountID string, kind domain.EventKind, since time.Time) (int, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM usage_events
WHERE account_id = $1
  AND kind = $2
  AND occurred_at >= $3;
`, accountID, string(kind), since)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count usage events: %v", domain.ErrStorageUnavailable, err)
	}
	return count, nil
}

var _ domain.UsageEventRepository = (*UsageEventRepositoryPG)(nil)
