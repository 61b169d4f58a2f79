package model

// Allocation is the output assigned to one unit by the allocation engine.
type Allocation struct {
	Name   string
	Output float64
}

// PlanEntry is the externally visible output of one plant, in MW rounded to
// one decimal.
type PlanEntry struct {
	Name string  `json:"name"`
	P    float64 `json:"p"`
}
