package domain

import "time"

// Account is an externally provisioned identity. The service never creates
// or deletes accounts on its own authority; it upserts a minimal row the
// first time a verified subject appears and afterwards only reads the tier.
type Account struct {
	ID        string
	Tier      TierID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFree reports whether the account is on the free tier.
func (a Account) IsFree() bool {
	return a.Tier == TierStarter || a.Tier == ""
}
