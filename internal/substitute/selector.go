// Package substitute picks healthier replacements for a product.
package substitute

import (
	"cmp"
	"slices"

	"nutellove/internal/model"
)

// Select returns the substitutes for chosen found among candidates.
//
// Candidates are expected to share chosen's category. The result holds only
// products whose grade is equal to or better than chosen's, best grade first,
// keeping the input order among equal grades. The chosen product is left out
// (by ID or by name) and names are deduplicated on exact equality, the first
// occurrence winning. A positive limit caps the result length.
//
// A product already graded "a" has nothing to improve on, so it gets no
// substitutes. Candidates with an unknown grade are ignored.
func Select(chosen model.Product, candidates []model.Product, limit int) []model.Product {
	result := []model.Product{}

	ceiling, ok := chosen.NutriGrade.Ordinal()
	if !ok || ceiling == 0 {
		return result
	}

	type ranked struct {
		product model.Product
		rank    int
	}

	pool := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		rank, ok := c.NutriGrade.Ordinal()
		if !ok || rank > ceiling {
			continue
		}
		if c.ID == chosen.ID || c.Name == chosen.Name {
			continue
		}
		pool = append(pool, ranked{product: c, rank: rank})
	}

	slices.SortStableFunc(pool, func(a, b ranked) int {
		return cmp.Compare(a.rank, b.rank)
	})

	seen := make(map[string]struct{}, len(pool))
	for _, r := range pool {
		if _, dup := seen[r.product.Name]; dup {
			continue
		}
		seen[r.product.Name] = struct{}{}
		result = append(result, r.product)

		if limit > 0 && len(result) == limit {
			break
		}
	}

	return result
}
