package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest reports a request that is missing fields or carries
	// an out of range load.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidPriceContext reports a malformed fuels section.
	ErrInvalidPriceContext = errors.New("invalid price context")
	// ErrInvalidUnitSpec reports a malformed plant specification.
	ErrInvalidUnitSpec = errors.New("invalid unit spec")
	// ErrInfeasibleLoad reports that the fleet cannot meet the requested load
	// within tolerance.
	ErrInfeasibleLoad = errors.New("infeasible load")
)

// UnknownUnitKindError is returned when a plant type is outside the closed
// set of kinds. It aborts the whole computation.
type UnknownUnitKindError struct {
	Plant string
	Kind  string
}

func (e *UnknownUnitKindError) Error() string {
	if e.Plant == "" {
		return fmt.Sprintf("unknown plant type %q", e.Kind)
	}
	return fmt.Sprintf("plant %s: unknown plant type %q", e.Plant, e.Kind)
}

// InfeasibleLoadError carries the requested and allocated totals of a plan
// that could not be closed within tolerance.
type InfeasibleLoadError struct {
	Target    float64
	Allocated float64
}

func (e *InfeasibleLoadError) Error() string {
	return fmt.Sprintf("infeasible load: requested %.1f MW, allocated %.1f MW", e.Target, e.Allocated)
}

// Unwrap allows errors.Is(err, ErrInfeasibleLoad).
func (e *InfeasibleLoadError) Unwrap() error { return ErrInfeasibleLoad }
