package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// accountplan moves an account to a different plan tier. Billing is handled
// upstream; this is the operator-side escape hatch for support cases.
func main() {
	var (
		idFlag   string
		tierFlag string
	)

	flag.StringVar(&idFlag, "id", "", "account ID to update")
	flag.StringVar(&tierFlag, "tier", string(domain.TierPro), "tier to assign (starter, pro, agency)")
	flag.Parse()

	accountID := strings.TrimSpace(idFlag)
	tier := domain.TierID(strings.TrimSpace(strings.ToLower(tierFlag)))

	if accountID == "" {
		exitWithError(errors.New("-id is required"))
	}
	if _, err := domain.DefaultCatalog().Tier(tier); err != nil {
		exitWithError(fmt.Errorf("unsupported tier %q", tier))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "accountplan").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
	var (
		currentID   string
		currentTier string
		createdAt   time.Time
		updatedAt   time.Time
	)
	row := runner.QueryRow(lookupCtx, sqlinline.QSelectAccountByID, accountID)
	scanErr := row.Scan(&currentID, &currentTier, &createdAt, &updatedAt)
	cancelLookup()
	if scanErr != nil {
		exitWithError(fmt.Errorf("failed to load account: %w", scanErr))
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()
	row = runner.QueryRow(updateCtx, sqlinline.QUpdateAccountTier, currentID, string(tier))

	var (
		updatedID   string
		updatedTier string
		updatedTime time.Time
	)
	if err := row.Scan(&updatedID, &updatedTier, &updatedTime); err != nil {
		exitWithError(fmt.Errorf("failed to update account tier: %w", err))
	}

	fmt.Printf("Account %s moved from %s to %s\n", updatedID, currentTier, updatedTier)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
