package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type fuelsWire struct {
	Gas      *float64 `json:"gas(euro/MWh)"`
	Kerosine *float64 `json:"kerosine(euro/MWh)"`
	CO2      *float64 `json:"co2(euro/ton)"`
	Wind     *float64 `json:"wind(%)"`
}

type plantWire struct {
	Name       *string  `json:"name"`
	Type       *string  `json:"type"`
	Efficiency *float64 `json:"efficiency"`
	Pmin       *float64 `json:"pmin"`
	Pmax       *float64 `json:"pmax"`
}

type requestWire struct {
	Load        *float64     `json:"load"`
	Fuels       *fuelsWire   `json:"fuels"`
	Powerplants *[]plantWire `json:"powerplants"`
}

func missing(field string) error {
	return fmt.Errorf("%w: missing field %s", ErrInvalidRequest, field)
}

// DecodeRequest reads exactly one JSON request document from r. Every field
// of the payload is required: an absent or null key is reported as
// ErrInvalidRequest instead of defaulting to zero. Data after the document
// is rejected.
func DecodeRequest(r io.Reader) (Request, error) {
	dec := json.NewDecoder(r)
	var w requestWire
	if err := dec.Decode(&w); err != nil {
		return Request{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Request{}, fmt.Errorf("%w: unexpected data after request body", ErrInvalidRequest)
	}
	return w.request()
}

func (w requestWire) request() (Request, error) {
	if w.Load == nil {
		return Request{}, missing("load")
	}
	if w.Fuels == nil {
		return Request{}, missing("fuels")
	}
	if w.Powerplants == nil {
		return Request{}, missing("powerplants")
	}
	fuels, err := w.Fuels.fuels()
	if err != nil {
		return Request{}, err
	}
	plants := make([]PlantSpec, 0, len(*w.Powerplants))
	for i, p := range *w.Powerplants {
		spec, err := p.spec(i)
		if err != nil {
			return Request{}, err
		}
		plants = append(plants, spec)
	}
	return Request{Load: *w.Load, Fuels: fuels, Powerplants: plants}, nil
}

func (f fuelsWire) fuels() (Fuels, error) {
	switch {
	case f.Gas == nil:
		return Fuels{}, missing("fuels.gas(euro/MWh)")
	case f.Kerosine == nil:
		return Fuels{}, missing("fuels.kerosine(euro/MWh)")
	case f.CO2 == nil:
		return Fuels{}, missing("fuels.co2(euro/ton)")
	case f.Wind == nil:
		return Fuels{}, missing("fuels.wind(%)")
	}
	return Fuels{Gas: *f.Gas, Kerosine: *f.Kerosine, CO2: *f.CO2, Wind: *f.Wind}, nil
}

func (p plantWire) spec(i int) (PlantSpec, error) {
	field := func(name string) error { return missing(fmt.Sprintf("powerplants[%d].%s", i, name)) }
	switch {
	case p.Name == nil:
		return PlantSpec{}, field("name")
	case p.Type == nil:
		return PlantSpec{}, field("type")
	case p.Efficiency == nil:
		return PlantSpec{}, field("efficiency")
	case p.Pmin == nil:
		return PlantSpec{}, field("pmin")
	case p.Pmax == nil:
		return PlantSpec{}, field("pmax")
	}
	return PlantSpec{
		Name:       *p.Name,
		Type:       *p.Type,
		Efficiency: *p.Efficiency,
		Pmin:       *p.Pmin,
		Pmax:       *p.Pmax,
	}, nil
}
