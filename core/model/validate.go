package model

import "fmt"

// Validate checks the request constraints the planner relies on. Plant types
// are not checked here: an unknown type is reported by the planner.
func (r Request) Validate() error {
	if r.Load < 0 {
		return fmt.Errorf("%w: load must be non-negative, got %v", ErrInvalidRequest, r.Load)
	}
	if err := r.Fuels.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(r.Powerplants))
	for _, p := range r.Powerplants {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate plant name %s", ErrInvalidUnitSpec, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// Validate checks that all prices are non-negative and wind is a percentage.
func (f Fuels) Validate() error {
	switch {
	case f.Gas < 0:
		return fmt.Errorf("%w: gas price must be non-negative", ErrInvalidPriceContext)
	case f.Kerosine < 0:
		return fmt.Errorf("%w: kerosine price must be non-negative", ErrInvalidPriceContext)
	case f.CO2 < 0:
		return fmt.Errorf("%w: co2 price must be non-negative", ErrInvalidPriceContext)
	case f.Wind < 0 || f.Wind > 100:
		return fmt.Errorf("%w: wind must be within [0,100]", ErrInvalidPriceContext)
	}
	return nil
}

// Validate checks the bounds of a plant specification.
func (p PlantSpec) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUnitSpec)
	}
	if p.Efficiency <= 0 {
		return fmt.Errorf("%w: %s: efficiency must be positive", ErrInvalidUnitSpec, p.Name)
	}
	if p.Pmin < 0 || p.Pmax < 0 {
		return fmt.Errorf("%w: %s: pmin and pmax must be non-negative", ErrInvalidUnitSpec, p.Name)
	}
	if p.Pmin > p.Pmax {
		return fmt.Errorf("%w: %s: pmin must be less than or equal to pmax", ErrInvalidUnitSpec, p.Name)
	}
	return nil
}
