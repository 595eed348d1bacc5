package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/places"
	"server/internal/quota"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Log       zerolog.Logger
	Config    *infra.Config
	SQL       infra.SQLExecutor
	Accounts  domain.AccountRepository
	Catalog   *domain.Catalog
	Evaluator *quota.Evaluator
	Gate      *quota.Gate
	Places    places.Provider
}

func NewApp(log zerolog.Logger, cfg *infra.Config, sql infra.SQLExecutor,
	accounts domain.AccountRepository, catalog *domain.Catalog,
	evaluator *quota.Evaluator, gate *quota.Gate, provider places.Provider) *App {
	return &App{
		Log:       log,
		Config:    cfg,
		SQL:       sql,
		Accounts:  accounts,
		Catalog:   catalog,
		Evaluator: evaluator,
		Gate:      gate,
		Places:    provider,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": message, "code": errCode})
}

func (a *App) currentAccountID(r *http.Request) string {
	return middleware.AccountIDFromContext(r.Context())
}
