package production

import (
	"math"

	"github.com/kilianp07/prodplan/core/model"
)

// Assemble pairs units with their outputs and rounds each output to one
// decimal. Entries keep the merit order of units.
func Assemble(allocs []model.Allocation) []model.PlanEntry {
	plan := make([]model.PlanEntry, len(allocs))
	for i, a := range allocs {
		plan[i] = model.PlanEntry{Name: a.Name, P: round1(a.Output)}
	}
	return plan
}

func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
