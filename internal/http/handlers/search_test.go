package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/places"
	"server/internal/sqlinline"
)

func TestSearch_RequiresAccount(t *testing.T) {
	app := newTestApp(newStubEvents(), &stubAccounts{})
	app.Places = &places.MockProvider{}

	req := httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"restaurant"}`))
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 401 {
		t.Fatalf("unexpected status code: got %d, want 401", rr.Code)
	}
}

func TestSearch_RejectsEmptyQuery(t *testing.T) {
	app := newTestApp(newStubEvents(), &stubAccounts{})
	app.Places = &places.MockProvider{}

	req := withAccount(httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"   "}`)), "acct-1")
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
	}
}

func TestSearch_AdmitsAndRecordsOneEvent(t *testing.T) {
	events := newStubEvents()
	app := newTestApp(events, &stubAccounts{})
	app.Places = &places.MockProvider{}

	req := withAccount(httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"restaurant","location":"Lyon"}`)), "acct-1")
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var payload searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Places) == 0 {
		t.Fatal("expected places in response")
	}
	if payload.Query != "restaurant" || payload.Location != "Lyon" {
		t.Fatalf("echoed request mismatch: %q %q", payload.Query, payload.Location)
	}
	if got := events.recorded("acct-1"); got != 1 {
		t.Fatalf("expected exactly one recorded event, got %d", got)
	}
}

func TestSearch_DeniedReturnsQuotaPayload(t *testing.T) {
	events := newStubEvents()
	events.seed("acct-1", 100, testNow.Add(-time.Hour))
	app := newTestApp(events, &stubAccounts{})
	app.Places = &places.MockProvider{}

	req := withAccount(httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"restaurant"}`)), "acct-1")
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 429 {
		t.Fatalf("unexpected status code: got %d, want 429", rr.Code)
	}
	var payload quotaDeniedResponse
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Used != 100 || payload.Limit != 100 {
		t.Fatalf("unexpected counters: used=%d limit=%d", payload.Used, payload.Limit)
	}
	if payload.LimitType != "weekly" || payload.PlanType != "starter" {
		t.Fatalf("unexpected plan fields: %q %q", payload.LimitType, payload.PlanType)
	}
	if payload.Error == "" || payload.ResetDate == "" {
		t.Fatalf("expected message and reset date, got %+v", payload)
	}
	if got := events.recorded("acct-1"); got != 100 {
		t.Fatalf("denied search must not record an event, got %d", got)
	}
}

func TestSearch_NoResultsIsFree(t *testing.T) {
	events := newStubEvents()
	app := newTestApp(events, &stubAccounts{})
	app.Places = &places.MockProvider{Err: places.ErrNoResults}

	req := withAccount(httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"xyzzy"}`)), "acct-1")
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 404 {
		t.Fatalf("unexpected status code: got %d, want 404", rr.Code)
	}
	if got := events.recorded("acct-1"); got != 0 {
		t.Fatalf("a failed search must be free, got %d events", got)
	}
}

func TestSearch_CounterStoreDownFailsClosed(t *testing.T) {
	events := newStubEvents()
	events.countErr = fmt.Errorf("connection refused")
	app := newTestApp(events, &stubAccounts{})
	app.Places = &places.MockProvider{}

	req := withAccount(httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"restaurant"}`)), "acct-1")
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 503 {
		t.Fatalf("unexpected status code: got %d, want 503", rr.Code)
	}
}

func TestSearch_PersistFailureStillSucceeds(t *testing.T) {
	events := newStubEvents()
	app := newTestApp(events, &stubAccounts{})
	app.Places = &places.MockProvider{}
	app.SQL = &failingSQL{}

	req := withAccount(httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{"query":"restaurant"}`)), "acct-1")
	rr := httptest.NewRecorder()

	app.Search(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	if got := events.recorded("acct-1"); got != 1 {
		t.Fatalf("expected one recorded event, got %d", got)
	}
}

func TestSearchHistory_ReturnsRows(t *testing.T) {
	app := newTestApp(newStubEvents(), &stubAccounts{})
	app.SQL = &searchHistorySQL{rows: []searchRow{{
		id:           "search-1",
		query:        "restaurant",
		location:     "Paris",
		resultsCount: 12,
		createdAt:    testNow,
	}}}

	req := withAccount(httptest.NewRequest("GET", "/v1/search/history", nil), "acct-1")
	rr := httptest.NewRecorder()

	app.SearchHistory(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("expected 1 search, got %d", len(payload.Items))
	}
	if payload.Items[0]["query"] != "restaurant" {
		t.Fatalf("unexpected query: %#v", payload.Items[0]["query"])
	}
}

type failingSQL struct{}

func (f *failingSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, fmt.Errorf("insert failed")
}

func (f *failingSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return NewSimpleRow(nil)
}

func (f *failingSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("query failed")
}

type searchRow struct {
	id           string
	query        string
	location     string
	resultsCount int
	createdAt    time.Time
}

type searchHistorySQL struct {
	rows []searchRow
}

func (s *searchHistorySQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *searchHistorySQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return NewSimpleRow(nil)
}

func (s *searchHistorySQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if query != sqlinline.QSelectRecentSearches {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("unexpected args count: %d", len(args))
	}
	return &searchRowsIterator{rows: s.rows}, nil
}

type searchRowsIterator struct {
	TestRowsBase
	rows []searchRow
	idx  int
}

func (s *searchRowsIterator) Next() bool {
	if s.idx >= len(s.rows) {
		return false
	}
	s.idx++
	return true
}

func (s *searchRowsIterator) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.rows) {
		return pgx.ErrNoRows
	}
	row := s.rows[s.idx-1]
	if len(dest) != 5 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	if v, ok := dest[0].(*string); ok {
		*v = row.id
	}
	if v, ok := dest[1].(*string); ok {
		*v = row.query
	}
	if v, ok := dest[2].(*string); ok {
		*v = row.location
	}
	if v, ok := dest[3].(*int); ok {
		*v = row.resultsCount
	}
	if v, ok := dest[4].(*time.Time); ok {
		*v = row.createdAt
	}
	return nil
}

func (s *searchRowsIterator) Err() error { return nil }

func (s *searchRowsIterator) Close() {}
