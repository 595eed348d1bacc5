package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/places"
	"server/internal/quota"
	"server/internal/sqlinline"
)

type searchRequest struct {
	Query      string `json:"query"`
	Location   string `json:"location"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	ID        string         `json:"id"`
	Query     string         `json:"query"`
	Location  string         `json:"location"`
	Places    []places.Place `json:"places"`
	CreatedAt time.Time      `json:"created_at"`
}

type quotaDeniedResponse struct {
	Error     string `json:"error"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	LimitType string `json:"limit_type"`
	PlanType  string `json:"plan_type"`
	ResetDate string `json:"reset_date"`
}

// Search is the check-and-search boundary operation: it resolves the
// authenticated account, passes the places search through the admission
// gate, and persists the successful result for later export.
func (a *App) Search(w http.ResponseWriter, r *http.Request) {
	accountID := a.currentAccountID(r)
	if accountID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing account context")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	req.Location = strings.TrimSpace(req.Location)
	if req.Query == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "search query is required")
		return
	}
	if req.MaxResults <= 0 || req.MaxResults > a.Config.SearchMaxResults {
		req.MaxResults = a.Config.SearchMaxResults
	}
	if req.Location == "" {
		// Best-effort location hint from the resolved client country.
		if middleware.CountryFromContext(r.Context()) == "FR" {
			req.Location = "Paris"
		}
	}

	account, err := a.Accounts.EnsureByID(r.Context(), accountID)
	if err != nil {
		a.Log.Error().Err(err).Str("account_id", accountID).Msg("failed to resolve account")
		a.error(w, http.StatusServiceUnavailable, "unavailable", "account lookup failed")
		return
	}

	var found []places.Place
	op := func(ctx context.Context) error {
		opCtx, cancel := context.WithTimeout(ctx, a.Config.SearchTimeout)
		defer cancel()
		result, err := a.Places.Search(opCtx, req.Query, req.Location, req.MaxResults)
		if err != nil {
			return err
		}
		found = result
		return nil
	}

	locale := middleware.LocaleFromContext(r.Context())
	if err := a.Gate.Admit(r.Context(), account, op); err != nil {
		a.writeSearchError(w, err, locale)
		return
	}

	// Persist the search for history and export. A storage error here is
	// logged and swallowed: the user already has their results.
	id := uuid.NewString()
	now := time.Now().UTC()
	payload, _ := json.Marshal(found)
	if a.SQL != nil {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertSearch,
			id, account.ID, req.Query, req.Location, len(found), payload); err != nil {
			a.Log.Error().Err(err).Str("account_id", account.ID).Msg("failed to save search")
		}
	}

	a.json(w, http.StatusOK, searchResponse{
		ID:        id,
		Query:     req.Query,
		Location:  req.Location,
		Places:    found,
		CreatedAt: now,
	})
}

func (a *App) writeSearchError(w http.ResponseWriter, err error, locale string) {
	var exceeded *quota.QuotaExceededError
	switch {
	case errors.As(err, &exceeded):
		snap := exceeded.Snapshot
		a.json(w, http.StatusTooManyRequests, quotaDeniedResponse{
			Error:     quotaDeniedMessage(locale, string(snap.Window), snap.Limit, string(snap.Tier)),
			Used:      snap.Current,
			Limit:     snap.Limit,
			LimitType: string(snap.Window),
			PlanType:  string(snap.Tier),
			ResetDate: snap.ResetAt.Format(time.RFC3339),
		})
	case errors.Is(err, places.ErrNoResults):
		a.error(w, http.StatusNotFound, "not_found", noResultsMessage(locale))
	case errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusGatewayTimeout, "timeout", "search timed out")
	case errors.Is(err, domain.ErrStorageUnavailable):
		// The gate failed closed: the counter store was unreadable.
		a.error(w, http.StatusServiceUnavailable, "unavailable", "usage data unavailable")
	default:
		a.Log.Error().Err(err).Msg("search failed")
		a.error(w, http.StatusBadGateway, "provider_failure", "failed to search places")
	}
}

// SearchHistory lists the account's recent searches for client-side export.
func (a *App) SearchHistory(w http.ResponseWriter, r *http.Request) {
	accountID := a.currentAccountID(r)
	if accountID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing account context")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSelectRecentSearches, accountID, 50)
	if err != nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "failed to load searches")
		return
	}
	defer rows.Close()

	items := make([]map[string]any, 0)
	for rows.Next() {
		var id, query, location string
		var resultsCount int
		var createdAt time.Time
		if err := rows.Scan(&id, &query, &location, &resultsCount, &createdAt); err != nil {
			continue
		}
		items = append(items, map[string]any{
			"id":            id,
			"query":         query,
			"location":      location,
			"results_count": resultsCount,
			"created_at":    createdAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
