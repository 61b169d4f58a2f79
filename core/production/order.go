package production

import (
	"cmp"
	"slices"

	"github.com/kilianp07/prodplan/core/model"
)

// MeritOrder returns a copy of units sorted by ascending marginal cost. Among
// equally priced units the larger capacity comes first. The sort is stable so
// identical keys keep their input order.
func MeritOrder(units []model.Unit) []model.Unit {
	ranked := slices.Clone(units)
	slices.SortStableFunc(ranked, func(a, b model.Unit) int {
		if c := cmp.Compare(a.MarginalCost, b.MarginalCost); c != 0 {
			return c
		}
		return cmp.Compare(b.Capacity, a.Capacity)
	})
	return ranked
}
