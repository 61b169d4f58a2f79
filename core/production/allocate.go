package production

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/prodplan/core/model"
)

// Tolerance is the largest gap in MW between the allocated total and the
// requested load that the repair step leaves untouched.
const Tolerance = 0.1

// Allocate distributes load over units, which must already be in merit
// order. The returned slice is parallel to units.
func Allocate(units []model.Unit, load float64) []float64 {
	out := make([]float64, len(units))
	out, remaining := allocateRenewables(units, out, load)
	out, _ = allocateConventional(units, out, remaining)
	return repair(units, out, load)
}

// allocateRenewables loads wind turbines up to their adjusted capacity.
func allocateRenewables(units []model.Unit, prior []float64, remaining float64) ([]float64, float64) {
	out := slices.Clone(prior)
	for i, u := range units {
		if !model.IsRenewable(u.Kind) || remaining <= 0 {
			continue
		}
		p := math.Min(u.Capacity, remaining)
		out[i] = p
		remaining -= p
	}
	return out, remaining
}

// allocateConventional loads fuel-burning units in merit order. An idle unit
// whose pmin exceeds the remaining load is skipped rather than committed,
// even if a more expensive unit then has to serve the load.
func allocateConventional(units []model.Unit, prior []float64, remaining float64) ([]float64, float64) {
	out := slices.Clone(prior)
	for i, u := range units {
		if model.IsRenewable(u.Kind) {
			continue
		}
		if remaining <= 0 {
			break
		}
		prev := out[i]
		floor := 0.0
		if prev == 0 {
			floor = u.Pmin
		}
		if prev == 0 && remaining < floor {
			continue
		}
		possible := math.Min(u.Capacity, remaining+prev)
		p := math.Min(math.Max(floor, prev), possible)
		if extra := remaining - (p - prev); extra > 0 {
			p = math.Min(p+extra, possible)
		}
		out[i] = p
		remaining -= p - prev
	}
	return out, remaining
}

// repair moves the residual gap onto the last unit in merit order able to
// absorb it within [Pmin, Capacity]. When no unit can, the allocation is
// returned unchanged.
func repair(units []model.Unit, prior []float64, load float64) []float64 {
	out := slices.Clone(prior)
	diff := load - floats.Sum(out)
	if math.Abs(diff) <= Tolerance {
		return out
	}
	for i := len(units) - 1; i >= 0; i-- {
		p := out[i] + diff
		if p >= units[i].Pmin && p <= units[i].Capacity {
			out[i] = p
			break
		}
	}
	return out
}
