package metrics

import (
	"fmt"

	"github.com/kilianp07/prodplan/core/factory"
)

var planSinks = factory.NewRegistry[MetricsSink]()

// RegisterPlanSink makes a plan sink implementation available under name
// for the metrics.sinks configuration list.
func RegisterPlanSink(name string, f factory.Factory[MetricsSink]) error {
	return planSinks.Register(name, f)
}

// PlanSinkTypes lists the sink types that can be configured.
func PlanSinkTypes() []string { return planSinks.Types() }

// NewPlanSink builds the sink fed by the plan event collector. No entry
// yields a NopSink and several entries are combined in a MultiSink. A type
// may appear once: two prometheus entries would share collectors and count
// every plan twice.
func NewPlanSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	built := make([]MetricsSink, 0, len(cfgs))
	seen := make(map[string]bool, len(cfgs))
	for i, c := range cfgs {
		if seen[c.Type] {
			closeSinks(built)
			return nil, fmt.Errorf("metrics sink %d: type %q configured twice", i, c.Type)
		}
		seen[c.Type] = true
		s, err := planSinks.Create(c)
		if err != nil {
			closeSinks(built)
			return nil, fmt.Errorf("metrics sink %d: %w", i, err)
		}
		built = append(built, s)
	}
	switch len(built) {
	case 0:
		return NopSink{}, nil
	case 1:
		return built[0], nil
	}
	return NewMultiSink(built...), nil
}

func closeSinks(sinks []MetricsSink) {
	for _, s := range sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
