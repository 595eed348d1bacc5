package quota

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// memoryEvents is an in-memory, mutex-guarded event log used to replay
// consumption sequences without a database or a live clock.
type memoryEvents struct {
	mu         sync.Mutex
	events     []domain.ConsumptionEvent
	recordErr  error
	countErr   error
	recordedAt []time.Time
}

func (m *memoryEvents) Record(ctx context.Context, accountID string, kind domain.EventKind, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.events = append(m.events, domain.ConsumptionEvent{
		AccountID:  accountID,
		Kind:       kind,
		OccurredAt: at,
	})
	m.recordedAt = append(m.recordedAt, at)
	return nil
}

func (m *memoryEvents) CountSince(ctx context.Context, accountID string, kind domain.EventKind, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for _, ev := range m.events {
		if ev.AccountID == accountID && ev.Kind == kind && !ev.OccurredAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memoryEvents) seed(accountID string, kind domain.EventKind, at time.Time, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.events = append(m.events, domain.ConsumptionEvent{
			AccountID:  accountID,
			Kind:       kind,
			OccurredAt: at,
		})
	}
}

func (m *memoryEvents) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
