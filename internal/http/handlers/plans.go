package handlers

import (
	"net/http"

	"server/internal/domain"
)

type planEntry struct {
	ID       domain.TierID       `json:"id"`
	Window   string              `json:"limit_type"`
	Limit    int                 `json:"limit"`
	Features domain.PlanFeatures `json:"features"`
}

// Plans lists the catalog in display order. Public, no auth required.
func (a *App) Plans(w http.ResponseWriter, r *http.Request) {
	tiers := a.Catalog.Tiers()
	entries := make([]planEntry, 0, len(tiers))
	for _, tier := range tiers {
		entries = append(entries, planEntry{
			ID:       tier.ID,
			Window:   string(tier.Window),
			Limit:    tier.Limit,
			Features: tier.Features,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"plans": entries})
}
