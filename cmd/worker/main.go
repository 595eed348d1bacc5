package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"server/internal/infra"
	"server/internal/sqlinline"
)

const (
	purgeInterval = 6 * time.Hour

	// Usage events feed quota counts over weekly and monthly windows.
	// Retention must stay longer than the longest window plus clock skew,
	// so anything shorter is rejected.
	minEventRetentionDays = 35

	defaultEventRetentionDays  = 90
	defaultSearchRetentionDays = 180
)

func main() {
	var (
		eventDaysFlag  int
		searchDaysFlag int
		onceFlag       bool
	)

	flag.IntVar(&eventDaysFlag, "event-days", defaultEventRetentionDays, "usage event retention in days")
	flag.IntVar(&searchDaysFlag, "search-days", defaultSearchRetentionDays, "saved search retention in days")
	flag.BoolVar(&onceFlag, "once", false, "run one purge cycle and exit")
	flag.Parse()

	if eventDaysFlag < minEventRetentionDays {
		exitWithError(fmt.Errorf("event retention %d days is below the %d day minimum", eventDaysFlag, minEventRetentionDays))
	}
	if searchDaysFlag <= 0 {
		exitWithError(errors.New("-search-days must be positive"))
	}

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	logger := infra.NewLogger(os.Getenv("APP_ENV")).With().Str("cmd", "worker").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := pgxpool.New(ctx, dbURL)
	cancel()
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	purge := func() {
		purgeCtx, cancelPurge := context.WithTimeout(context.Background(), time.Minute)
		defer cancelPurge()

		now := time.Now().UTC()
		eventCutoff := now.AddDate(0, 0, -eventDaysFlag)
		searchCutoff := now.AddDate(0, 0, -searchDaysFlag)

		if tag, err := runner.Exec(purgeCtx, sqlinline.QDeleteUsageEventsBefore, eventCutoff); err != nil {
			logger.Error().Err(err).Msg("failed to purge usage events")
		} else if tag.RowsAffected() > 0 {
			logger.Info().Int64("rows", tag.RowsAffected()).Time("cutoff", eventCutoff).Msg("purged usage events")
		}

		if tag, err := runner.Exec(purgeCtx, sqlinline.QDeleteSearchesBefore, searchCutoff); err != nil {
			logger.Error().Err(err).Msg("failed to purge searches")
		} else if tag.RowsAffected() > 0 {
			logger.Info().Int64("rows", tag.RowsAffected()).Time("cutoff", searchCutoff).Msg("purged searches")
		}
	}

	purge()
	if onceFlag {
		return
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	logger.Info().Dur("interval", purgeInterval).Msg("retention worker started")
	for {
		select {
		case <-ticker.C:
			purge()
		case <-stop:
			logger.Info().Msg("retention worker stopped")
			return
		}
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
