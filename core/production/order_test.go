package production

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/prodplan/core/model"
)

func names(units []model.Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name
	}
	return out
}

func TestMeritOrder(t *testing.T) {
	units := []model.Unit{
		{Name: "expensive", MarginalCost: 80, Capacity: 100},
		{Name: "small-cheap", MarginalCost: 10, Capacity: 50},
		{Name: "wind", MarginalCost: 0, Capacity: 30},
		{Name: "big-cheap", MarginalCost: 10, Capacity: 200},
	}
	assert.Equal(t, []string{"wind", "big-cheap", "small-cheap", "expensive"}, names(MeritOrder(units)))
	assert.Equal(t, "expensive", units[0].Name, "input slice was reordered")
}

func TestMeritOrder_StableOnIdenticalKeys(t *testing.T) {
	units := []model.Unit{
		{Name: "a", MarginalCost: 36.6, Capacity: 460},
		{Name: "b", MarginalCost: 36.6, Capacity: 460},
		{Name: "c", MarginalCost: 36.6, Capacity: 460},
	}
	for n := 0; n < 10; n++ {
		assert.Equal(t, []string{"a", "b", "c"}, names(MeritOrder(units)))
	}
}

func TestMeritOrder_Empty(t *testing.T) {
	assert.Empty(t, MeritOrder(nil))
}
