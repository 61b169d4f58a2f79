package production

import (
	"github.com/kilianp07/prodplan/core/model"
)

// EmissionFactor is the CO2 emitted per MWh of gas-fired production, in
// ton/MWh.
const EmissionFactor = 0.3

// Cost builds a Unit from its specification, computing the marginal cost and
// the adjusted capacity under the given prices.
func Cost(spec model.PlantSpec, fuels model.Fuels) (model.Unit, error) {
	kind, err := model.ParseKind(spec.Type)
	if err != nil {
		return model.Unit{}, &model.UnknownUnitKindError{Plant: spec.Name, Kind: spec.Type}
	}
	u := model.Unit{
		Name:       spec.Name,
		Kind:       kind,
		Efficiency: spec.Efficiency,
		Pmin:       spec.Pmin,
		Pmax:       spec.Pmax,
	}
	u.MarginalCost, u.Capacity, err = marginalCost(u, fuels)
	if err != nil {
		return model.Unit{}, err
	}
	return u, nil
}

func marginalCost(u model.Unit, f model.Fuels) (cost, capacity float64, err error) {
	switch u.Kind.(type) {
	case model.WindTurbine:
		return 0, u.Pmax * f.Wind / 100, nil
	case model.GasFired:
		fuel := f.Gas / u.Efficiency
		co2 := EmissionFactor * f.CO2 / u.Efficiency
		return fuel + co2, u.Pmax, nil
	case model.TurboJet:
		return f.Kerosine / u.Efficiency, u.Pmax, nil
	default:
		kind := "<nil>"
		if u.Kind != nil {
			kind = u.Kind.String()
		}
		return 0, 0, &model.UnknownUnitKindError{Plant: u.Name, Kind: kind}
	}
}

// CostAll costs every plant, failing on the first unknown plant type.
func CostAll(specs []model.PlantSpec, fuels model.Fuels) ([]model.Unit, error) {
	units := make([]model.Unit, 0, len(specs))
	for _, s := range specs {
		u, err := Cost(s, fuels)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
