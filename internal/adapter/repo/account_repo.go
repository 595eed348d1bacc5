package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// AccountRepositoryPG implements domain.AccountRepository backed by
// PostgreSQL.
type AccountRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepositoryPG.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepositoryPG {
	return &AccountRepositoryPG{pool: pool}
}

// GetByID fetches an account by its externally issued identifier.
func (r *AccountRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, tier_id, created_at, updated_at
FROM accounts
WHERE id = $1;
`, id)
	return scanAccount(row)
}

// EnsureByID inserts a minimal account row for a verified subject on first
// sight, defaulting the tier, and returns the current state. The tier is
// never overwritten here: plan changes happen out of band.
func (r *AccountRepositoryPG) EnsureByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO accounts (id, tier_id)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE
SET updated_at = NOW()
RETURNING id, tier_id, created_at, updated_at;
`, id, string(domain.DefaultTierID))
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var tier string
	if err := row.Scan(&a.ID, &tier, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scan account: %v", domain.ErrStorageUnavailable, err)
	}
	a.Tier = domain.TierID(tier)
	return &a, nil
}

var _ domain.AccountRepository = (*AccountRepositoryPG)(nil)
