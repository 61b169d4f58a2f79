package model

import "encoding/json"

// Kind identifies the technology of a generating unit. The set of kinds is
// closed: only GasFired, TurboJet and WindTurbine implement it.
type Kind interface {
	// String returns the wire name of the kind.
	String() string
	isKind()
}

// GasFired is a combustion unit burning gas. It is liable for CO2 emissions.
type GasFired struct{}

// TurboJet is a combustion unit burning kerosine. No CO2 cost is modeled.
type TurboJet struct{}

// WindTurbine is a renewable unit whose output is bounded by wind availability.
type WindTurbine struct{}

func (GasFired) String() string    { return "gasfired" }
func (TurboJet) String() string    { return "turbojet" }
func (WindTurbine) String() string { return "windturbine" }

func (GasFired) isKind()    {}
func (TurboJet) isKind()    {}
func (WindTurbine) isKind() {}

// ParseKind maps a wire name to its Kind. Unknown names yield an
// *UnknownUnitKindError with an empty plant name; callers fill it in.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "gasfired":
		return GasFired{}, nil
	case "turbojet":
		return TurboJet{}, nil
	case "windturbine":
		return WindTurbine{}, nil
	default:
		return nil, &UnknownUnitKindError{Kind: s}
	}
}

// IsRenewable reports whether k has no fuel cost.
func IsRenewable(k Kind) bool {
	_, ok := k.(WindTurbine)
	return ok
}

// PlantSpec describes a generating unit as submitted by a client.
type PlantSpec struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Efficiency float64 `json:"efficiency"`
	Pmin       float64 `json:"pmin"`
	Pmax       float64 `json:"pmax"`
}

// Fuels is the price context of one allocation. Wind is a percentage of
// nameplate capacity in [0,100].
type Fuels struct {
	Gas      float64 `json:"gas(euro/MWh)"`
	Kerosine float64 `json:"kerosine(euro/MWh)"`
	CO2      float64 `json:"co2(euro/ton)"`
	Wind     float64 `json:"wind(%)"`
}

// Request is a production plan request.
type Request struct {
	Load        float64     `json:"load"`
	Fuels       Fuels       `json:"fuels"`
	Powerplants []PlantSpec `json:"powerplants"`
}

// Unit is a plant with its cost and adjusted capacity computed for the
// current price context. Units are not modified once built.
type Unit struct {
	Name       string
	Kind       Kind
	Efficiency float64
	Pmin       float64
	Pmax       float64

	// MarginalCost is the cost in euro/MWh of producing with this unit.
	MarginalCost float64
	// Capacity is the ceiling on output for this cycle. It equals Pmax
	// except for wind turbines, where availability reduces it.
	Capacity float64
}

// MarshalJSON encodes the kind by its wire name.
func (u Unit) MarshalJSON() ([]byte, error) {
	type unit struct {
		Name         string  `json:"name"`
		Type         string  `json:"type"`
		Efficiency   float64 `json:"efficiency"`
		Pmin         float64 `json:"pmin"`
		Pmax         float64 `json:"pmax"`
		MarginalCost float64 `json:"marginal_cost"`
		Capacity     float64 `json:"capacity"`
	}
	kind := ""
	if u.Kind != nil {
		kind = u.Kind.String()
	}
	return json.Marshal(unit{
		Name:         u.Name,
		Type:         kind,
		Efficiency:   u.Efficiency,
		Pmin:         u.Pmin,
		Pmax:         u.Pmax,
		MarginalCost: u.MarginalCost,
		Capacity:     u.Capacity,
	})
}
