package plan

import (
	"context"
	"sort"
)

// Tier maps a minimum payment amount to the product quota it buys.
type Tier struct {
	MinAmount    float64 `json:"minAmount"`
	GrantedLimit int     `json:"grantedLimit"`
}

// Catalog is the ordered set of payment tiers. Tiers are kept sorted by
// MinAmount descending so LimitFor can take the first match.
type Catalog struct {
	Tiers []Tier `json:"tiers"`
}

// Loader defines the interface for loading a tier catalog.
type Loader interface {
	// Load reads a catalog definition and returns the parsed Catalog.
	Load(ctx context.Context, path string) (*Catalog, error)
}

// DefaultCatalog returns the built-in tier table used when no catalog file
// is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Tiers: []Tier{
			{MinAmount: 50, GrantedLimit: 1500},
			{MinAmount: 20, GrantedLimit: 450},
			{MinAmount: 10, GrantedLimit: 200},
		},
	}
}

// normalize sorts tiers by MinAmount descending.
func (c *Catalog) normalize() {
	sort.Slice(c.Tiers, func(i, j int) bool {
		return c.Tiers[i].MinAmount > c.Tiers[j].MinAmount
	})
}

// LimitFor returns the product quota granted for a paid amount. Amounts
// below every tier grant zero.
func (c *Catalog) LimitFor(amount float64) int {
	for _, t := range c.Tiers {
		if amount >= t.MinAmount {
			return t.GrantedLimit
		}
	}
	return 0
}
