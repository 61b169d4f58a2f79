// Package production computes production plans for a fleet of power plants.
// Plants are costed against the current fuel prices, ranked in merit order
// and loaded greedily: wind first, then conventional units from cheapest to
// most expensive, followed by a single repair step closing any residual gap.
// The allocation is a heuristic; it does not backtrack when a cheap unit is
// skipped because its minimum output exceeds the remaining load.
package production
