package handlers

import (
	"net/http"
	"time"

	"server/internal/domain"
)

type usageResponse struct {
	Current      int                                   `json:"current"`
	Limit        int                                   `json:"limit"`
	Remaining    int                                   `json:"remaining"`
	LimitType    string                                `json:"limit_type"`
	PlanType     string                                `json:"plan_type"`
	IsFreePlan   bool                                  `json:"is_free_plan"`
	ResetDate    string                                `json:"reset_date"`
	PlanFeatures map[domain.TierID]domain.PlanFeatures `json:"plan_features"`
}

// Usage is the read-only reporting endpoint. It recomputes the snapshot on
// every call and never records anything, so clients may poll it freely.
func (a *App) Usage(w http.ResponseWriter, r *http.Request) {
	accountID := a.currentAccountID(r)
	if accountID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing account context")
		return
	}

	account, err := a.Accounts.EnsureByID(r.Context(), accountID)
	if err != nil {
		a.Log.Error().Err(err).Str("account_id", accountID).Msg("failed to resolve account")
		a.error(w, http.StatusServiceUnavailable, "unavailable", "account lookup failed")
		return
	}

	snapshot, err := a.Evaluator.Evaluate(r.Context(), account)
	if err != nil {
		// Reporting propagates store failures: a stale dashboard beats a
		// wrong one.
		a.Log.Error().Err(err).Str("account_id", accountID).Msg("failed to evaluate usage")
		a.error(w, http.StatusServiceUnavailable, "unavailable", "usage data unavailable")
		return
	}

	features := make(map[domain.TierID]domain.PlanFeatures)
	for _, tier := range a.Catalog.Tiers() {
		features[tier.ID] = tier.Features
	}

	a.json(w, http.StatusOK, usageResponse{
		Current:      snapshot.Current,
		Limit:        snapshot.Limit,
		Remaining:    snapshot.Remaining,
		LimitType:    string(snapshot.Window),
		PlanType:     string(snapshot.Tier),
		IsFreePlan:   account.IsFree(),
		ResetDate:    snapshot.ResetAt.Format(time.RFC3339),
		PlanFeatures: features,
	})
}
