package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/quota"
)

// testNow is a Wednesday so a Monday week start puts the window boundary
// two days back.
var testNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

type stubEvents struct {
	mu        sync.Mutex
	times     map[string][]time.Time
	countErr  error
	recordErr error
}

func newStubEvents() *stubEvents {
	return &stubEvents{times: make(map[string][]time.Time)}
}

func (s *stubEvents) seed(accountID string, n int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.times[accountID] = append(s.times[accountID], at)
	}
}

func (s *stubEvents) recorded(accountID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.times[accountID])
}

func (s *stubEvents) Record(_ context.Context, accountID string, _ domain.EventKind, at time.Time) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times[accountID] = append(s.times[accountID], at)
	return nil
}

func (s *stubEvents) CountSince(_ context.Context, accountID string, _ domain.EventKind, since time.Time) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, at := range s.times[accountID] {
		if !at.Before(since) {
			count++
		}
	}
	return count, nil
}

type stubAccounts struct {
	tier domain.TierID
	err  error
}

func (s *stubAccounts) account(id string) *domain.Account {
	tier := s.tier
	if tier == "" {
		tier = domain.DefaultTierID
	}
	return &domain.Account{ID: id, Tier: tier, CreatedAt: testNow, UpdatedAt: testNow}
}

func (s *stubAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account(id), nil
}

func (s *stubAccounts) EnsureByID(_ context.Context, id string) (*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account(id), nil
}

func newTestApp(events *stubEvents, accounts *stubAccounts) *App {
	log := zerolog.Nop()
	catalog := domain.DefaultCatalog()
	clock := func() time.Time { return testNow }
	evaluator := quota.NewEvaluator(catalog, events, time.Monday, log).WithClock(clock)
	gate := quota.NewGate(evaluator, events, false, log).WithClock(clock)
	return &App{
		Log:       log,
		Config:    &infra.Config{SearchTimeout: 5 * time.Second, SearchMaxResults: 20},
		Accounts:  accounts,
		Catalog:   catalog,
		Evaluator: evaluator,
		Gate:      gate,
	}
}

func withAccount(r *http.Request, accountID string) *http.Request {
	return r.WithContext(middleware.ContextWithAccountID(r.Context(), accountID))
}
