package domain

// WindowKind selects the reset cadence that governs a plan tier.
type WindowKind string

const (
	WindowWeekly  WindowKind = "weekly"
	WindowMonthly WindowKind = "monthly"
)

// TierID identifies a subscription tier.
type TierID string

const (
	TierStarter TierID = "starter"
	TierPro     TierID = "pro"
	TierAgency  TierID = "agency"
)

// DefaultTierID is applied when an account carries no tier or an unknown one.
const DefaultTierID = TierStarter

// PlanTier holds the quota parameters of a single subscription tier. Tiers
// are immutable: they are registered once in a Catalog and only looked up.
type PlanTier struct {
	ID       TierID
	Window   WindowKind
	Limit    int
	Features PlanFeatures
}

// PlanFeatures is descriptive plan metadata shown to clients. It plays no
// part in quota computation.
type PlanFeatures struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Period   string   `json:"period,omitempty"`
	Searches string   `json:"searches"`
	Features []string `json:"features"`
}

// Catalog is an immutable registry of plan tiers. It is safe for concurrent
// use because it is never mutated after construction.
type Catalog struct {
	tiers map[TierID]PlanTier
	order []TierID
}

// NewCatalog builds a catalog from the given tiers, preserving their order
// for listings.
func NewCatalog(tiers ...PlanTier) *Catalog {
	c := &Catalog{tiers: make(map[TierID]PlanTier, len(tiers))}
	for _, t := range tiers {
		if _, ok := c.tiers[t.ID]; ok {
			continue
		}
		c.tiers[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	return c
}

// DefaultCatalog returns the production tier registry.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		PlanTier{
			ID:     TierStarter,
			Window: WindowWeekly,
			Limit:  100,
			Features: PlanFeatures{
				Name:     "Starter",
				Price:    "Gratuit",
				Searches: "100 recherches/semaine",
				Features: []string{
					"100 recherches par semaine",
					"Export CSV & JSON",
					"Support communauté",
					"Données de base",
				},
			},
		},
		PlanTier{
			ID:     TierPro,
			Window: WindowMonthly,
			Limit:  1000,
			Features: PlanFeatures{
				Name:     "Pro",
				Price:    "29€",
				Period:   "/mois",
				Searches: "1,000 recherches/mois",
				Features: []string{
					"1,000 recherches par mois",
					"Export CSV & JSON",
					"Support prioritaire",
					"Données enrichies",
					"API access",
				},
			},
		},
		PlanTier{
			ID:     TierAgency,
			Window: WindowMonthly,
			Limit:  5000,
			Features: PlanFeatures{
				Name:     "Agency",
				Price:    "99€",
				Period:   "/mois",
				Searches: "5,000 recherches/mois",
				Features: []string{
					"5,000 recherches par mois",
					"Export CSV & JSON",
					"Support dédié",
					"Données complètes",
					"API illimitée",
					"White-label",
				},
			},
		},
	)
}

// Tier looks up a tier by id. It returns ErrUnknownTier when the id is not
// registered; callers on the quota path must fall back to the default tier
// instead of surfacing the error.
func (c *Catalog) Tier(id TierID) (PlanTier, error) {
	t, ok := c.tiers[id]
	if !ok {
		return PlanTier{}, ErrUnknownTier
	}
	return t, nil
}

// TierOrDefault resolves a tier, falling back to the default tier for
// unknown ids.
func (c *Catalog) TierOrDefault(id TierID) PlanTier {
	if t, ok := c.tiers[id]; ok {
		return t
	}
	return c.tiers[DefaultTierID]
}

// Tiers returns all registered tiers in registration order.
func (c *Catalog) Tiers() []PlanTier {
	out := make([]PlanTier, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tiers[id])
	}
	return out
}
