// Package places is the opaque search collaborator: it turns a category
// query plus a location into a list of places. The quota core treats every
// call as a single billable operation regardless of how it is fulfilled.
package places

import (
	"context"
	"errors"
)

// ErrNoResults indicates a search that completed but matched nothing. It is
// an operation failure: the caller reports it distinctly and no consumption
// event is recorded for it.
var ErrNoResults = errors.New("no places found")

// Place is one search result row.
type Place struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Rating   string `json:"rating,omitempty"`
	Address  string `json:"address"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Hours    string `json:"hours,omitempty"`
}

// Provider performs a places search. Implementations must honor context
// cancellation so the caller can bound the operation independently of the
// admission gate.
type Provider interface {
	Search(ctx context.Context, query, location string, maxResults int) ([]Place, error)
}
