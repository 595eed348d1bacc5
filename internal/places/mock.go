package places

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.French)

// MockProvider returns deterministic sample data. Used in tests and as a
// stand-in when no Overpass endpoint is reachable.
type MockProvider struct {
	// Err, when set, is returned by every Search call.
	Err error
}

// Search fabricates maxResults places for the query around the location.
func (m *MockProvider) Search(ctx context.Context, query, location string, maxResults int) ([]Place, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = 20
	}
	city := strings.TrimSpace(location)
	if city == "" {
		city = "Paris"
	}
	category := strings.TrimSpace(query)
	if category == "" {
		return nil, ErrNoResults
	}

	out := make([]Place, 0, maxResults)
	for i := 0; i < maxResults && i < 5; i++ {
		out = append(out, Place{
			Name:     fmt.Sprintf("%s %s %d", titleCaser.String(category), city, i+1),
			Category: category,
			Rating:   "4.0",
			Address:  fmt.Sprintf("%d Rue de la République, %s", 10+i, city),
			Phone:    "01 23 45 67 89",
			Hours:    "Lun-Sam: 9h-19h",
		})
	}
	return out, nil
}

var _ Provider = (*MockProvider)(nil)
