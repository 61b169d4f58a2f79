package production

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prodplan/core/model"
)

func TestCost_GasFired(t *testing.T) {
	u, err := Cost(model.PlantSpec{Name: "g", Type: "gasfired", Efficiency: 0.5, Pmin: 10, Pmax: 100},
		model.Fuels{Gas: 10, CO2: 30})
	require.NoError(t, err)
	// 10/0.5 + 0.3*30/0.5 = 20 + 18
	assert.InDelta(t, 38.0, u.MarginalCost, 1e-9)
	assert.Equal(t, 100.0, u.Capacity)
	assert.Equal(t, model.GasFired{}, u.Kind)
}

func TestCost_TurboJetIgnoresCO2(t *testing.T) {
	u, err := Cost(model.PlantSpec{Name: "tj", Type: "turbojet", Efficiency: 0.3, Pmax: 16},
		model.Fuels{Kerosine: 50.8, CO2: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 50.8/0.3, u.MarginalCost, 1e-9)
	assert.Equal(t, 16.0, u.Capacity)
}

func TestCost_WindTurbine(t *testing.T) {
	u, err := Cost(model.PlantSpec{Name: "w", Type: "windturbine", Efficiency: 1, Pmax: 100},
		model.Fuels{Gas: 13.4, Wind: 50})
	require.NoError(t, err)
	assert.Equal(t, 0.0, u.MarginalCost)
	assert.InDelta(t, 50.0, u.Capacity, 1e-9)
}

func TestCost_WindCalm(t *testing.T) {
	u, err := Cost(model.PlantSpec{Name: "w", Type: "windturbine", Efficiency: 1, Pmax: 100}, model.Fuels{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, u.Capacity)
}

func TestCost_UnknownKind(t *testing.T) {
	_, err := Cost(model.PlantSpec{Name: "n1", Type: "nuclear", Efficiency: 0.3, Pmax: 1000}, model.Fuels{})
	var uk *model.UnknownUnitKindError
	require.True(t, errors.As(err, &uk))
	assert.Equal(t, "n1", uk.Plant)
	assert.Equal(t, "nuclear", uk.Kind)
}

func TestMarginalCost_NilKind(t *testing.T) {
	_, _, err := marginalCost(model.Unit{Name: "x"}, model.Fuels{})
	var uk *model.UnknownUnitKindError
	require.True(t, errors.As(err, &uk))
	assert.Equal(t, "x", uk.Plant)
}

func TestCostAll_FailsFast(t *testing.T) {
	specs := []model.PlantSpec{
		{Name: "g", Type: "gasfired", Efficiency: 0.5, Pmax: 100},
		{Name: "bad", Type: "coal", Efficiency: 0.4, Pmax: 100},
		{Name: "w", Type: "windturbine", Efficiency: 1, Pmax: 100},
	}
	units, err := CostAll(specs, model.Fuels{})
	require.Error(t, err)
	assert.Nil(t, units)
	assert.Contains(t, err.Error(), "bad")
}
